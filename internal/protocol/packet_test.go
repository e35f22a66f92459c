package protocol

import (
	"bytes"
	"testing"
)

func TestWriteReadPacketUncompressed(t *testing.T) {
	var buf bytes.Buffer
	p := &Packet{ID: 0x05, Payload: []byte("hello world")}
	if err := WritePacket(&buf, p, -1); err != nil {
		t.Fatalf("WritePacket: %v", err)
	}

	got, err := ReadPacket(&buf, -1)
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if got.ID != p.ID || !bytes.Equal(got.Payload, p.Payload) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestWriteReadPacketBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	p := &Packet{ID: 0x01, Payload: []byte("x")}
	if err := WritePacket(&buf, p, 1024); err != nil {
		t.Fatalf("WritePacket: %v", err)
	}

	got, err := ReadPacket(&buf, 1024)
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if got.ID != p.ID || !bytes.Equal(got.Payload, p.Payload) {
		t.Fatalf("round trip mismatch below threshold: got %+v, want %+v", got, p)
	}
}

func TestWriteReadPacketAboveThreshold(t *testing.T) {
	var buf bytes.Buffer
	payload := bytes.Repeat([]byte("A"), 512)
	p := &Packet{ID: 0x27, Payload: payload}
	if err := WritePacket(&buf, p, 64); err != nil {
		t.Fatalf("WritePacket: %v", err)
	}

	got, err := ReadPacket(&buf, 64)
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if got.ID != p.ID || !bytes.Equal(got.Payload, p.Payload) {
		t.Fatalf("round trip mismatch above threshold")
	}
}

func TestReadPacketRejectsOversizedFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVarInt(&buf, MaxPacketSize+1); err != nil {
		t.Fatalf("WriteVarInt: %v", err)
	}
	if _, err := ReadPacket(&buf, -1); err != ErrPacketTooLarge {
		t.Fatalf("expected ErrPacketTooLarge, got %v", err)
	}
}

func TestReadPacketRejectsNonPositiveFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVarInt(&buf, 0); err != nil {
		t.Fatalf("WriteVarInt: %v", err)
	}
	if _, err := ReadPacket(&buf, -1); err != ErrInvalidPacket {
		t.Fatalf("expected ErrInvalidPacket, got %v", err)
	}
}
