package protocol

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// MaxPacketSize bounds a single frame, uncompressed or post-inflate.
const MaxPacketSize = 2 * 1024 * 1024

// Packet is a decoded (packetID, payload) pair: the payload excludes the
// varint packet id that preceded it on the wire.
type Packet struct {
	ID      int32
	Payload []byte
}

// ReadPacket reads one frame from r and decodes it per §4.2: threshold < 0
// means compression is off and the frame is [id, payload] directly;
// threshold >= 0 means the frame is [uncompressedLen, deflate(id‖payload)]
// with uncompressedLen == 0 signaling "not actually compressed".
func ReadPacket(r io.Reader, threshold int) (*Packet, error) {
	frameLen, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if frameLen <= 0 {
		return nil, ErrInvalidPacket
	}
	if frameLen > MaxPacketSize {
		return nil, ErrPacketTooLarge
	}

	frame := make([]byte, frameLen)
	if _, err := io.ReadFull(r, frame); err != nil {
		return nil, err
	}

	var body io.Reader = bytes.NewReader(frame)
	if threshold >= 0 {
		uncompressedLen, err := ReadVarInt(body)
		if err != nil {
			return nil, err
		}
		if uncompressedLen != 0 {
			zr, err := zlib.NewReader(body)
			if err != nil {
				return nil, err
			}
			defer zr.Close()
			if uncompressedLen > MaxPacketSize {
				return nil, ErrPacketTooLarge
			}
			decompressed := make([]byte, uncompressedLen)
			if _, err := io.ReadFull(zr, decompressed); err != nil {
				return nil, err
			}
			body = bytes.NewReader(decompressed)
		}
	}

	id, err := ReadVarInt(body)
	if err != nil {
		return nil, err
	}
	payload, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	return &Packet{ID: id, Payload: payload}, nil
}

// WritePacket encodes p per §4.2's outbound rule: below threshold the
// envelope carries uncompressedLen=0 and raw bytes; with compression off
// (threshold < 0) the frame is [id, payload] with no length field.
func WritePacket(w io.Writer, p *Packet, threshold int) error {
	var idPayload bytes.Buffer
	if err := WriteVarInt(&idPayload, p.ID); err != nil {
		return err
	}
	idPayload.Write(p.Payload)
	uncompressedLen := idPayload.Len()

	var frame bytes.Buffer
	if threshold >= 0 {
		if uncompressedLen >= threshold {
			if err := WriteVarInt(&frame, int32(uncompressedLen)); err != nil {
				return err
			}
			zw := zlib.NewWriter(&frame)
			if _, err := zw.Write(idPayload.Bytes()); err != nil {
				return err
			}
			if err := zw.Close(); err != nil {
				return err
			}
		} else {
			if err := WriteVarInt(&frame, 0); err != nil {
				return err
			}
			frame.Write(idPayload.Bytes())
		}
	} else {
		frame.Write(idPayload.Bytes())
	}

	if err := WriteVarInt(w, int32(frame.Len())); err != nil {
		return err
	}
	_, err := w.Write(frame.Bytes())
	return err
}
