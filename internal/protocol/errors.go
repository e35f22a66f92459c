package protocol

import "errors"

// Sentinel errors for the wire layer. Higher layers wrap these with
// fmt.Errorf("...: %w", err) to attach context; callers test with
// errors.Is against the sentinel, not the wrapped message.
var (
	ErrVarIntTooLong  = errors.New("varint exceeds 5 bytes")
	ErrVarLongTooLong = errors.New("varlong exceeds 10 bytes")
	ErrPacketTooLarge = errors.New("packet size exceeds maximum allowed")
	ErrInvalidPacket  = errors.New("invalid packet structure")
	ErrCompression    = errors.New("decompressed length mismatch")
	ErrUnknownTag     = errors.New("unknown binary tree tag type")
	ErrChunkDecode    = errors.New("chunk payload could not be decoded by any strategy")
	ErrPalette        = errors.New("malformed paletted container")
)
