/*
Package protocol implements the checksummed UART frame exchanged with the BLE coprocessor.

Layout (both directions):

	[MAGIC][COMMAND][LENGTH][PAYLOAD x LENGTH][CHECKSUM]

	CHECKSUM = 0xAA ^ MAGIC ^ COMMAND ^ LENGTH ^ PAYLOAD[0] ^ ... ^ PAYLOAD[LENGTH-1]

Frames sent to the coprocessor carry MagicCommand; frames received from it carry MagicAwaiting.
Parser assembles inbound frames from the raw byte stream one byte at a time.
*/
package protocol
