package protocol

import "bytes"

// ClientInformation is the first packet sent in configuration state,
// advertising client display/locale preferences the server expects before
// proceeding.
type ClientInformation struct {
	Locale              string
	ViewDistance        int8
	ChatFlags           int32
	ChatColors          bool
	SkinParts           uint8
	MainHand            int32
	EnableTextFiltering bool
	EnableServerListing bool
	ParticleStatus      int32
}

func CreateClientInformationPacket(ci ClientInformation) (*Packet, error) {
	var buf bytes.Buffer
	if err := WriteString(&buf, ci.Locale); err != nil {
		return nil, err
	}
	if err := WriteByte(&buf, byte(ci.ViewDistance)); err != nil {
		return nil, err
	}
	if err := WriteVarInt(&buf, ci.ChatFlags); err != nil {
		return nil, err
	}
	if err := WriteBool(&buf, ci.ChatColors); err != nil {
		return nil, err
	}
	if err := WriteByte(&buf, ci.SkinParts); err != nil {
		return nil, err
	}
	if err := WriteVarInt(&buf, ci.MainHand); err != nil {
		return nil, err
	}
	if err := WriteBool(&buf, ci.EnableTextFiltering); err != nil {
		return nil, err
	}
	if err := WriteBool(&buf, ci.EnableServerListing); err != nil {
		return nil, err
	}
	if err := WriteVarInt(&buf, ci.ParticleStatus); err != nil {
		return nil, err
	}
	return &Packet{ID: C2SClientInformation, Payload: buf.Bytes()}, nil
}

// KnownPack identifies a resource/data pack the client already has.
type KnownPack struct {
	Namespace string
	ID        string
	Version   string
}

func CreateKnownPacksPacket(packs []KnownPack) (*Packet, error) {
	var buf bytes.Buffer
	if err := WriteVarInt(&buf, int32(len(packs))); err != nil {
		return nil, err
	}
	for _, pack := range packs {
		if err := WriteString(&buf, pack.Namespace); err != nil {
			return nil, err
		}
		if err := WriteString(&buf, pack.ID); err != nil {
			return nil, err
		}
		if err := WriteString(&buf, pack.Version); err != nil {
			return nil, err
		}
	}
	return &Packet{ID: C2SKnownPacks, Payload: buf.Bytes()}, nil
}

func CreateAcknowledgeFinishConfigurationPacket() *Packet {
	return &Packet{ID: C2SAcknowledgeFinishConf, Payload: []byte{}}
}
