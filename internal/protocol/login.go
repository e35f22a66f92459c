package protocol

import (
	"bytes"
	"io"
)

// LoginStart is the client's login-state handshake: a username and the
// client-generated UUID for an offline-derived identity.
type LoginStart struct {
	Username string
	UUID     UUID
}

func ParseLoginStart(r io.Reader) (*LoginStart, error) {
	username, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	uuid, err := ReadUUID(r)
	if err != nil {
		return nil, err
	}
	return &LoginStart{Username: username, UUID: uuid}, nil
}

func WriteLoginStart(username string) (*Packet, error) {
	var buf bytes.Buffer
	if err := WriteString(&buf, username); err != nil {
		return nil, err
	}
	if err := WriteUUID(&buf, OfflineUUID(username)); err != nil {
		return nil, err
	}
	return &Packet{ID: C2SLoginStart, Payload: buf.Bytes()}, nil
}

func WriteLoginAcknowledged() *Packet {
	return &Packet{ID: C2SLoginAcknowledged, Payload: []byte{}}
}
