package protocol

import "io"

// PlayerInfo is the player-info-update packet: an actions bitmask followed
// by one entry per listed player. Fields this client does not track
// (chat session keys, game profile properties, latency, display name) are
// parsed only to keep the stream aligned, then discarded.
type PlayerInfo struct {
	Actions     uint8
	PlayerCount int32
	Players     []Player
}

type Player struct {
	UUID UUID
	Name string
}

func ParsePlayerInfo(r io.Reader) (*PlayerInfo, error) {
	actions, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	playerCount, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if playerCount < 0 {
		return nil, ErrInvalidPacket
	}
	players := make([]Player, playerCount)
	for i := range players {
		uuid, err := ReadUUID(r)
		if err != nil {
			return nil, err
		}
		players[i].UUID = uuid

		if actions&0x01 != 0 { // add player
			name, err := ReadString(r)
			if err != nil {
				return nil, err
			}
			count, err := ReadVarInt(r)
			if err != nil {
				return nil, err
			}
			for j := int32(0); j < count; j++ {
				if _, err := ReadString(r); err != nil { // property name
					return nil, err
				}
				if _, err := ReadString(r); err != nil { // property value
					return nil, err
				}
				isSigned, err := ReadBool(r)
				if err != nil {
					return nil, err
				}
				if isSigned {
					if _, err := ReadString(r); err != nil {
						return nil, err
					}
				}
			}
			players[i].Name = name
		}
		if actions&0x02 != 0 { // initialize chat
			hasSession, err := ReadBool(r)
			if err != nil {
				return nil, err
			}
			if hasSession {
				if _, err := ReadUUID(r); err != nil {
					return nil, err
				}
				if _, err := ReadInt64(r); err != nil {
					return nil, err
				}
				n, err := ReadVarInt(r)
				if err != nil {
					return nil, err
				}
				if err := skipBytes(r, n); err != nil {
					return nil, err
				}
				m, err := ReadVarInt(r)
				if err != nil {
					return nil, err
				}
				if err := skipBytes(r, m); err != nil {
					return nil, err
				}
			}
		}
		if actions&0x04 != 0 { // update gamemode
			if _, err := ReadVarInt(r); err != nil {
				return nil, err
			}
		}
		if actions&0x08 != 0 { // update listed
			if _, err := ReadVarInt(r); err != nil {
				return nil, err
			}
		}
		if actions&0x10 != 0 { // update latency
			if _, err := ReadVarInt(r); err != nil {
				return nil, err
			}
		}
		if actions&0x20 != 0 { // update display name
			flag, err := ReadBool(r)
			if err != nil {
				return nil, err
			}
			if flag {
				if _, err := ReadAnonymousNBT(r); err != nil {
					return nil, err
				}
			}
		}
		if actions&0x80 != 0 {
			if _, err := ReadVarInt(r); err != nil {
				return nil, err
			}
		}
		if actions&0x40 != 0 {
			if _, err := ReadBool(r); err != nil {
				return nil, err
			}
		}
	}
	return &PlayerInfo{Actions: actions, PlayerCount: playerCount, Players: players}, nil
}

func skipBytes(r io.Reader, n int32) error {
	if n < 0 {
		return ErrInvalidPacket
	}
	_, err := ReadRaw(r, int(n))
	return err
}
