package protocol

import "io"

type SystemChat struct {
	Content     NBTNode
	IsActionBar bool
}

func ParseSystemChat(r io.Reader) (*SystemChat, error) {
	content, err := ReadAnonymousNBT(r)
	if err != nil {
		return nil, err
	}
	isActionBar, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	return &SystemChat{Content: *content, IsActionBar: isActionBar}, nil
}
