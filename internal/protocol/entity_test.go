package protocol

import (
	"bytes"
	"testing"
)

func TestParseSpawnEntity(t *testing.T) {
	var buf bytes.Buffer
	WriteVarInt(&buf, 42)
	WriteUUID(&buf, OfflineUUID("Zombie"))
	WriteVarInt(&buf, 54) // entity type
	WriteDouble(&buf, 10)
	WriteDouble(&buf, 65)
	WriteDouble(&buf, -3)

	e, err := ParseSpawnEntity(&buf)
	if err != nil {
		t.Fatalf("ParseSpawnEntity: %v", err)
	}
	if e.EntityID != 42 || e.Type != 54 || e.X != 10 || e.Y != 65 || e.Z != -3 {
		t.Fatalf("unexpected spawn entity: %+v", e)
	}
}

func TestParseEntityDestroy(t *testing.T) {
	var buf bytes.Buffer
	WriteVarInt(&buf, 3)
	WriteVarInt(&buf, 1)
	WriteVarInt(&buf, 2)
	WriteVarInt(&buf, 3)

	d, err := ParseEntityDestroy(&buf)
	if err != nil {
		t.Fatalf("ParseEntityDestroy: %v", err)
	}
	if len(d.EntityIDs) != 3 || d.EntityIDs[2] != 3 {
		t.Fatalf("unexpected ids: %v", d.EntityIDs)
	}
}

func TestRelEntityMoveDelta(t *testing.T) {
	var buf bytes.Buffer
	WriteVarInt(&buf, 1)
	WriteInt16(&buf, 4096)
	WriteInt16(&buf, -4096)
	WriteInt16(&buf, 2048)
	WriteBool(&buf, true)

	m, err := ParseRelEntityMove(&buf)
	if err != nil {
		t.Fatalf("ParseRelEntityMove: %v", err)
	}
	if m.DeltaX() != 1.0 || m.DeltaY() != -1.0 || m.DeltaZ() != 0.5 {
		t.Fatalf("unexpected deltas: %f %f %f", m.DeltaX(), m.DeltaY(), m.DeltaZ())
	}
	if !m.OnGround {
		t.Fatalf("expected OnGround true")
	}
}

func TestParseEntityTeleport(t *testing.T) {
	var buf bytes.Buffer
	WriteVarInt(&buf, 7)
	WriteDouble(&buf, 1)
	WriteDouble(&buf, 2)
	WriteDouble(&buf, 3)
	WriteByte(&buf, 128) // yaw
	WriteByte(&buf, 64)  // pitch
	WriteBool(&buf, false)

	tp, err := ParseEntityTeleport(&buf)
	if err != nil {
		t.Fatalf("ParseEntityTeleport: %v", err)
	}
	if tp.EntityID != 7 || tp.X != 1 || tp.Y != 2 || tp.Z != 3 {
		t.Fatalf("unexpected teleport: %+v", tp)
	}
}

func TestParseSyncEntityPosition(t *testing.T) {
	var buf bytes.Buffer
	WriteVarInt(&buf, 1)
	WriteDouble(&buf, 1)
	WriteDouble(&buf, 2)
	WriteDouble(&buf, 3)
	WriteDouble(&buf, 0)
	WriteDouble(&buf, 0)
	WriteDouble(&buf, 0)
	WriteFloat(&buf, 45)
	WriteFloat(&buf, 0)
	WriteBool(&buf, true)

	sp, err := ParseSyncEntityPosition(&buf)
	if err != nil {
		t.Fatalf("ParseSyncEntityPosition: %v", err)
	}
	if sp.Yaw != 45 || !sp.OnGround {
		t.Fatalf("unexpected sync position: %+v", sp)
	}
}
