package protocol

import (
	"bytes"
	"testing"
)

func TestCreatePongPacket(t *testing.T) {
	p, err := CreatePongPacket(1234)
	if err != nil {
		t.Fatalf("CreatePongPacket() error = %v", err)
	}
	if p.ID != C2SPongResponse {
		t.Errorf("ID = %#x, want %#x", p.ID, C2SPongResponse)
	}
	got, err := ReadInt64(bytes.NewReader(p.Payload))
	if err != nil {
		t.Fatalf("ReadInt64() error = %v", err)
	}
	if got != 1234 {
		t.Errorf("payload = %d, want %d", got, 1234)
	}
}

func TestCreateRespawnRequestPacket(t *testing.T) {
	p, err := CreateRespawnRequestPacket()
	if err != nil {
		t.Fatalf("CreateRespawnRequestPacket() error = %v", err)
	}
	if p.ID != C2SClientStatus {
		t.Errorf("ID = %#x, want %#x", p.ID, C2SClientStatus)
	}
	action, err := ReadVarInt(bytes.NewReader(p.Payload))
	if err != nil {
		t.Fatalf("ReadVarInt() error = %v", err)
	}
	if action != 0 {
		t.Errorf("action = %d, want 0", action)
	}
}

func TestCreateChatMessagePacket(t *testing.T) {
	p, err := CreateChatMessagePacket("hello", 1000, 2000)
	if err != nil {
		t.Fatalf("CreateChatMessagePacket() error = %v", err)
	}
	if p.ID != C2SChatMessage {
		t.Errorf("ID = %#x, want %#x", p.ID, C2SChatMessage)
	}
	r := bytes.NewReader(p.Payload)
	msg, err := ReadString(r)
	if err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}
	if msg != "hello" {
		t.Errorf("message = %q, want %q", msg, "hello")
	}
	timestamp, err := ReadInt64(r)
	if err != nil || timestamp != 1000 {
		t.Errorf("timestamp = %d, err %v, want 1000", timestamp, err)
	}
	salt, err := ReadInt64(r)
	if err != nil || salt != 2000 {
		t.Errorf("salt = %d, err %v, want 2000", salt, err)
	}
	signed, err := ReadBool(r)
	if err != nil || signed {
		t.Errorf("signed = %v, err %v, want false", signed, err)
	}
}
