package protocol

import "io"

// SpawnEntity is the fields of a spawn-entity packet this client tracks:
// identity, kind, and initial position. Parsing stops after the position;
// velocity, pitch, yaw, and the object-data payload are not read.
type SpawnEntity struct {
	EntityID   int32
	ObjectUUID UUID
	Type       int32
	X, Y, Z    float64
}

func ParseSpawnEntity(r io.Reader) (*SpawnEntity, error) {
	entityID, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	objectUUID, err := ReadUUID(r)
	if err != nil {
		return nil, err
	}
	entityType, err := ReadVarInt(r)
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
	return &SpawnEntity{EntityID: entityID, ObjectUUID: objectUUID, Type: entityType, X: x, Y: y, Z: z}, nil
}

// EntityDestroy is the remove-entities packet payload.
type EntityDestroy struct {
	EntityIDs []int32
}

func ParseEntityDestroy(r io.Reader) (*EntityDestroy, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, ErrInvalidPacket
	}
	ids := make([]int32, count)
	for i := range ids {
		id, err := ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return &EntityDestroy{EntityIDs: ids}, nil
}

// RelEntityMove carries a fixed-point relative move; the actual offset in
// blocks is delta/4096.0.
type RelEntityMove struct {
	EntityID       int32
	DX, DY, DZ     int16
	OnGround       bool
}

func ParseRelEntityMove(r io.Reader) (*RelEntityMove, error) {
	entityID, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	dx, err := ReadInt16(r)
	if err != nil {
		return nil, err
	}
	dy, err := ReadInt16(r)
	if err != nil {
		return nil, err
	}
	dz, err := ReadInt16(r)
	if err != nil {
		return nil, err
	}
	onGround, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	return &RelEntityMove{EntityID: entityID, DX: dx, DY: dy, DZ: dz, OnGround: onGround}, nil
}

func (m *RelEntityMove) DeltaX() float64 { return float64(m.DX) / 4096.0 }
func (m *RelEntityMove) DeltaY() float64 { return float64(m.DY) / 4096.0 }
func (m *RelEntityMove) DeltaZ() float64 { return float64(m.DZ) / 4096.0 }

// EntityMoveLook carries a fixed-point relative move plus a new facing.
type EntityMoveLook struct {
	EntityID   int32
	DX, DY, DZ int16
	Yaw, Pitch int8
	OnGround   bool
}

func ParseEntityMoveLook(r io.Reader) (*EntityMoveLook, error) {
	entityID, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	dx, err := ReadInt16(r)
	if err != nil {
		return nil, err
	}
	dy, err := ReadInt16(r)
	if err != nil {
		return nil, err
	}
	dz, err := ReadInt16(r)
	if err != nil {
		return nil, err
	}
	yawByte, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	pitchByte, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	onGround, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	return &EntityMoveLook{
		EntityID: entityID,
		DX:       dx,
		DY:       dy,
		DZ:       dz,
		Yaw:      int8(yawByte),
		Pitch:    int8(pitchByte),
		OnGround: onGround,
	}, nil
}

func (m *EntityMoveLook) DeltaX() float64 { return float64(m.DX) / 4096.0 }
func (m *EntityMoveLook) DeltaY() float64 { return float64(m.DY) / 4096.0 }
func (m *EntityMoveLook) DeltaZ() float64 { return float64(m.DZ) / 4096.0 }

// EntityTeleport carries an entity's absolute position and facing from a
// teleport-entity packet.
type EntityTeleport struct {
	EntityID   int32
	X, Y, Z    float64
	Yaw, Pitch int8
	OnGround   bool
}

func ParseEntityTeleport(r io.Reader) (*EntityTeleport, error) {
	entityID, err := ReadVarInt(r)
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
	yawByte, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	pitchByte, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	onGround, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	return &EntityTeleport{
		EntityID: entityID,
		X:        x,
		Y:        y,
		Z:        z,
		Yaw:      int8(yawByte),
		Pitch:    int8(pitchByte),
		OnGround: onGround,
	}, nil
}

// SyncEntityPosition is the avatar's own authoritative-resync packet.
type SyncEntityPosition struct {
	EntityID   int32
	X, Y, Z    float64
	DX, DY, DZ float64
	Yaw, Pitch float32
	OnGround   bool
}

func ParseSyncEntityPosition(r io.Reader) (*SyncEntityPosition, error) {
	entityID, err := ReadVarInt(r)
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
	onGround, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	return &SyncEntityPosition{
		EntityID: entityID,
		X:        x,
		Y:        y,
		Z:        z,
		DX:       dx,
		DY:       dy,
		DZ:       dz,
		Yaw:      yaw,
		Pitch:    pitch,
		OnGround: onGround,
	}, nil
}
