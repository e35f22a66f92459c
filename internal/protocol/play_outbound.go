package protocol

import "bytes"

// CreatePongPacket echoes the i64 payload from a server ping, the
// play-state liveness check run alongside keep-alive.
func CreatePongPacket(payload int64) (*Packet, error) {
	var buf bytes.Buffer
	if err := WriteInt64(&buf, payload); err != nil {
		return nil, err
	}
	return &Packet{ID: C2SPongResponse, Payload: buf.Bytes()}, nil
}

// CreateRespawnRequestPacket is the client-status packet sent with action 0
// (perform respawn) when the server reports health has hit zero.
func CreateRespawnRequestPacket() (*Packet, error) {
	var buf bytes.Buffer
	if err := WriteVarInt(&buf, 0); err != nil {
		return nil, err
	}
	return &Packet{ID: C2SClientStatus, Payload: buf.Bytes()}, nil
}

// CreateChatMessagePacket sends msg as an unsigned chat message: no
// previous-signature chain, no acknowledgment bitset.
func CreateChatMessagePacket(msg string, timestamp, salt int64) (*Packet, error) {
	var buf bytes.Buffer
	if err := WriteString(&buf, msg); err != nil {
		return nil, err
	}
	if err := WriteInt64(&buf, timestamp); err != nil {
		return nil, err
	}
	if err := WriteInt64(&buf, salt); err != nil {
		return nil, err
	}
	if err := WriteBool(&buf, false); err != nil {
		return nil, err
	}
	if err := WriteVarInt(&buf, 0); err != nil {
		return nil, err
	}
	if err := WriteVarInt(&buf, 0); err != nil {
		return nil, err
	}
	return &Packet{ID: C2SChatMessage, Payload: buf.Bytes()}, nil
}
