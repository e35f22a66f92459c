package protocol

import "io"

// UpdateViewPosition tells the client which chunk column the server now
// centers its render distance on; the world cache uses it only to decide
// which chunks are eligible for ClearDistantChunks eviction.
type UpdateViewPosition struct {
	ChunkX int32
	ChunkZ int32
}

func ParseUpdateViewPosition(r io.Reader) (*UpdateViewPosition, error) {
	chunkX, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	chunkZ, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	return &UpdateViewPosition{ChunkX: chunkX, ChunkZ: chunkZ}, nil
}
