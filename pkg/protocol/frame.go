package protocol

import (
	"fmt"
)

// Frame is a decoded frame. Payload aliases no caller-owned memory.
type Frame struct {
	Magic   byte
	Command byte
	Payload []byte
}

// Checksum folds the seed, the header bytes and every payload byte with XOR.
func Checksum(magic, cmd byte, payload []byte) byte {
	sum := byte(ChecksumSeed) ^ magic ^ cmd ^ byte(len(payload))
	for _, b := range payload {
		sum ^= b
	}
	return sum
}

// Encode serialises a frame. Payloads longer than MaxPayloadSize are rejected, not truncated,
// since a clipped characteristic value would be silently wrong on the peer.
func Encode(magic, cmd byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(payload), MaxPayloadSize)
	}

	data := make([]byte, HeaderSize+len(payload)+ChecksumSize)
	data[0] = magic
	data[1] = cmd
	data[2] = byte(len(payload))
	copy(data[HeaderSize:], payload)
	data[len(data)-1] = Checksum(magic, cmd, payload)
	return data, nil
}

// EncodeCommand encodes a host -> coprocessor frame.
func EncodeCommand(cmd byte, payload ...byte) ([]byte, error) {
	return Encode(MagicCommand, cmd, payload)
}

// EncodeEvent encodes a coprocessor -> host frame. Used by simulators and tests.
func EncodeEvent(cmd byte, payload ...byte) ([]byte, error) {
	return Encode(MagicAwaiting, cmd, payload)
}

// Decode parses exactly one complete frame.
func Decode(data []byte) (Frame, error) {
	if len(data) < HeaderSize+ChecksumSize {
		return Frame{}, ErrShortFrame
	}
	n := int(data[2])
	if n > MaxPayloadSize {
		return Frame{}, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, n, MaxPayloadSize)
	}
	if len(data) != HeaderSize+n+ChecksumSize {
		return Frame{}, ErrLengthMismatch
	}

	payload := make([]byte, n)
	copy(payload, data[HeaderSize:HeaderSize+n])

	if got, want := data[len(data)-1], Checksum(data[0], data[1], payload); got != want {
		return Frame{}, fmt.Errorf("%w: got 0x%02X, want 0x%02X", ErrBadChecksum, got, want)
	}

	return Frame{Magic: data[0], Command: data[1], Payload: payload}, nil
}

// Bytes re-encodes the frame.
func (f Frame) Bytes() ([]byte, error) {
	return Encode(f.Magic, f.Command, f.Payload)
}

// Is reports whether f is an inbound frame carrying cmd.
func (f Frame) Is(cmd byte) bool {
	return f.Magic == MagicAwaiting && f.Command == cmd
}

// Acknowledges reports whether f is an ACK for cmd.
func (f Frame) Acknowledges(cmd byte) bool {
	return f.Is(EvtAck) && len(f.Payload) > 0 && f.Payload[0] == cmd
}

// Rejects reports whether f is a NAK for cmd.
func (f Frame) Rejects(cmd byte) bool {
	return f.Is(EvtNak) && len(f.Payload) > 0 && f.Payload[0] == cmd
}

func (f Frame) String() string {
	name := CommandName(f.Command)
	if name == "" {
		name = fmt.Sprintf("0x%02X", f.Command)
	}
	return fmt.Sprintf("%s[% X]", name, f.Payload)
}
