package protocol

import (
	"bytes"
	"fmt"
	"io"
)

type ChunkBatchStart struct{}

type ChunkBatchFinished struct {
	BatchSize int32
}

func ParseChunkBatchStart(_ io.Reader) (*ChunkBatchStart, error) {
	return &ChunkBatchStart{}, nil
}

func ParseChunkBatchFinished(r io.Reader) (*ChunkBatchFinished, error) {
	batchSize, err := ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("batch size: %w", err)
	}
	if batchSize < 0 {
		return nil, fmt.Errorf("%w: negative batch size %d", ErrInvalidPacket, batchSize)
	}
	return &ChunkBatchFinished{BatchSize: batchSize}, nil
}

func CreateChunkBatchReceivedPacket(chunksPerTick float32) (*Packet, error) {
	var buf bytes.Buffer
	if err := WriteFloat(&buf, chunksPerTick); err != nil {
		return nil, err
	}
	return &Packet{ID: C2SChunkBatchReceived, Payload: buf.Bytes()}, nil
}
