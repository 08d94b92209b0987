package protocol

const (
	// Sizes of individual components
	HeaderSize   = 3 // magic + command + length
	ChecksumSize = 1

	// MaxPayloadSize bounds LENGTH; the coprocessor never sends or accepts more.
	MaxPayloadSize = 16

	// MaxFrameSize is the largest frame on the wire.
	MaxFrameSize = HeaderSize + MaxPayloadSize + ChecksumSize

	// ChecksumSeed is folded into every checksum.
	ChecksumSeed = 0xAA
)

// Magic bytes.
const (
	MagicCommand  byte = 0xA5 // host -> coprocessor
	MagicAwaiting byte = 0x5A // coprocessor -> host
)

// Commands sent to the coprocessor.
const (
	CmdAlert          byte = 0x10 // payload: alert characteristic (1 byte)
	CmdBattery        byte = 0x11 // payload: battery characteristic (1 byte)
	CmdError          byte = 0x12 // payload: error characteristic (1 byte)
	CmdStartBroadcast byte = 0x20
	CmdStopBroadcast  byte = 0x21
	CmdSleep          byte = 0x30
)

// Events and acknowledgements received from the coprocessor.
const (
	EvtReadyAfterSleep byte = 0x80
	EvtReadyAfterBoot  byte = 0x81
	EvtAck             byte = 0x82 // payload: acknowledged command
	EvtNak             byte = 0x83 // payload: rejected command
	EvtPeerRead        byte = 0x84
	EvtBroadcastEnded  byte = 0x85
)

// Characteristic values.
const (
	AlertCleared byte = 0x00
	AlertActive  byte = 0x01
)

// Timeouts owned by the steps (milliseconds).
const (
	AckTimeout      = 5000
	WakeTimeout     = 5000
	BroadcastWindow = 45000
	SettleDelay     = 200
)

var commandNames = map[byte]string{
	CmdAlert:           "alert",
	CmdBattery:         "battery",
	CmdError:           "error",
	CmdStartBroadcast:  "start_broadcast",
	CmdStopBroadcast:   "stop_broadcast",
	CmdSleep:           "sleep",
	EvtReadyAfterSleep: "ready_after_sleep",
	EvtReadyAfterBoot:  "ready_after_boot",
	EvtAck:             "ack",
	EvtNak:             "nak",
	EvtPeerRead:        "peer_read",
	EvtBroadcastEnded:  "broadcast_ended",
}

// CommandName returns the symbolic name of a command or event byte, or "" when unknown.
func CommandName(cmd byte) string {
	return commandNames[cmd]
}

// CommandByName is the inverse of CommandName.
func CommandByName(name string) (byte, bool) {
	for b, n := range commandNames {
		if n == name {
			return b, true
		}
	}
	return 0, false
}
