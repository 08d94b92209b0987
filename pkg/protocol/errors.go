package protocol

import "errors"

var (
	ErrPayloadTooLarge = errors.New("payload exceeds maximum size")
	ErrShortFrame      = errors.New("frame too short")
	ErrLengthMismatch  = errors.New("frame length does not match length byte")
	ErrBadChecksum     = errors.New("checksum mismatch")
	ErrBadMagic        = errors.New("unexpected magic byte")
)
