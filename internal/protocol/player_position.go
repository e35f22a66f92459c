package protocol

import (
	"bytes"
	"io"
)

const (
	RelX        = 0x001
	RelY        = 0x002
	RelZ        = 0x004
	RelYaw      = 0x008
	RelPitch    = 0x010
	RelVelX     = 0x020
	RelVelY     = 0x040
	RelVelZ     = 0x080
	RelRotDelta = 0x100
)

// PlayerPosition is the server's synchronize-player-position packet: an
// absolute/relative position plus a teleport id the client must echo back.
type PlayerPosition struct {
	TeleportID         int32
	X, Y, Z            float64
	Dx, Dy, Dz         float64
	Yaw, Pitch         float32
	Flags              int32
}

func ParsePlayerPosition(r io.Reader) (*PlayerPosition, error) {
	teleportID, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	x, err := ReadDouble(r)
	if err != nil {
		return nil, err
	}
	y, err := ReadDouble(r)
	if err != nil {
		return nil, err
	}
	z, err := ReadDouble(r)
	if err != nil {
		return nil, err
	}
	dx, err := ReadDouble(r)
	if err != nil {
		return nil, err
	}
	dy, err := ReadDouble(r)
	if err != nil {
		return nil, err
	}
	dz, err := ReadDouble(r)
	if err != nil {
		return nil, err
	}
	yaw, err := ReadFloat(r)
	if err != nil {
		return nil, err
	}
	pitch, err := ReadFloat(r)
	if err != nil {
		return nil, err
	}
	flags, err := ReadInt32(r)
	if err != nil {
		return nil, err
	}
	return &PlayerPosition{
		TeleportID: teleportID,
		X:          x,
		Y:          y,
		Z:          z,
		Dx:         dx,
		Dy:         dy,
		Dz:         dz,
		Yaw:        yaw,
		Pitch:      pitch,
		Flags:      flags,
	}, nil
}

func CreateTeleportConfirmPacket(teleportID int32) (*Packet, error) {
	var buf bytes.Buffer
	if err := WriteVarInt(&buf, teleportID); err != nil {
		return nil, err
	}
	return &Packet{ID: C2SConfirmTeleport, Payload: buf.Bytes()}, nil
}
