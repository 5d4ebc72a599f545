package wire

import "errors"

// Decode failures. All of them are fatal to the frame being decoded.
var (
	ErrUnexpectedEndOfStream = errors.New("unexpected end of stream")
	ErrMalformedVarInt       = errors.New("malformed varint")
	ErrMalformedVarLong      = errors.New("malformed varlong")
	ErrInvalidEncoding       = errors.New("invalid utf-8 encoding")
	ErrUnknownPacketId       = errors.New("unknown packet id")
	ErrInvariantViolation    = errors.New("invariant violation")
)
