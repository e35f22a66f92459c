package protocol

import "bytes"

// Handshake is the single handshaking-state packet: the client's protocol
// version, target address, and the next state to switch to (2=login).
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       int32
}

func ParseHandshake(payload []byte) (*Handshake, error) {
	r := bytes.NewReader(payload)
	protocolVersion, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	serverAddress, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	serverPort, err := ReadUint16(r)
	if err != nil {
		return nil, err
	}
	nextState, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	return &Handshake{
		ProtocolVersion: protocolVersion,
		ServerAddress:   serverAddress,
		ServerPort:      serverPort,
		NextState:       nextState,
	}, nil
}

func WriteHandshake(h *Handshake) (*Packet, error) {
	var buf bytes.Buffer
	if err := WriteVarInt(&buf, h.ProtocolVersion); err != nil {
		return nil, err
	}
	if err := WriteString(&buf, h.ServerAddress); err != nil {
		return nil, err
	}
	if err := WriteUint16(&buf, h.ServerPort); err != nil {
		return nil, err
	}
	if err := WriteVarInt(&buf, h.NextState); err != nil {
		return nil, err
	}
	return &Packet{ID: C2SHandshake, Payload: buf.Bytes()}, nil
}
