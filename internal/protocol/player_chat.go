package protocol

import "io"

// PlayerChat is a player-originated signed chat message broadcast by the
// server. Only the fields this client surfaces (plain text, sender) matter
// downstream; the signature/filter machinery is parsed to keep the stream
// aligned and then discarded.
type PlayerChat struct {
	GlobalIndex         int32
	SenderUUID          UUID
	Index               int32
	PlainMessage        string
	Timestamp           int64
	Salt                int64
	PreviousMessages    []PreviousMessage
	UnsignedChatContent *NBTNode
	FilterType          int32
	FilterTypeMask      []int64
	Type                int32
	NetworkName         *NBTNode
	NetworkTargetName   *NBTNode
}

type PreviousMessage struct {
	ID        int32
	Signature [256]byte
}

func readPreviousMessages(r io.Reader) ([]PreviousMessage, error) {
	length, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, ErrInvalidPacket
	}
	messages := make([]PreviousMessage, length)
	for i := range messages {
		id, err := ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		var signature [256]byte
		if _, err := io.ReadFull(r, signature[:]); err != nil {
			return nil, err
		}
		messages[i] = PreviousMessage{ID: id, Signature: signature}
	}
	return messages, nil
}

func readFilterTypeMask(r io.Reader) ([]int64, error) {
	length, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, ErrInvalidPacket
	}
	mask := make([]int64, length)
	for i := range mask {
		v, err := ReadInt64(r)
		if err != nil {
			return nil, err
		}
		mask[i] = v
	}
	return mask, nil
}

func ParsePlayerChat(r io.Reader) (*PlayerChat, error) {
	var chat PlayerChat
	var err error

	if chat.GlobalIndex, err = ReadVarInt(r); err != nil {
		return nil, err
	}
	if chat.SenderUUID, err = ReadUUID(r); err != nil {
		return nil, err
	}
	if chat.Index, err = ReadVarInt(r); err != nil {
		return nil, err
	}
	if chat.PlainMessage, err = ReadString(r); err != nil {
		return nil, err
	}
	if chat.Timestamp, err = ReadInt64(r); err != nil {
		return nil, err
	}
	if chat.Salt, err = ReadInt64(r); err != nil {
		return nil, err
	}
	if chat.PreviousMessages, err = readPreviousMessages(r); err != nil {
		return nil, err
	}

	hasUnsignedContent, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	if hasUnsignedContent {
		if chat.UnsignedChatContent, err = ReadAnonymousNBT(r); err != nil {
			return nil, err
		}
	}

	if chat.FilterType, err = ReadVarInt(r); err != nil {
		return nil, err
	}
	if chat.FilterType == 2 {
		if chat.FilterTypeMask, err = readFilterTypeMask(r); err != nil {
			return nil, err
		}
	}

	if chat.Type, err = ReadVarInt(r); err != nil {
		return nil, err
	}
	if chat.NetworkName, err = ReadAnonymousNBT(r); err != nil {
		return nil, err
	}

	hasTargetName, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	if hasTargetName {
		if chat.NetworkTargetName, err = ReadAnonymousNBT(r); err != nil {
			return nil, err
		}
	}

	return &chat, nil
}
