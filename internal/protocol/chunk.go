package protocol

import (
	"bytes"
	"fmt"
)

const (
	blocksPerSection    = 16 * 16 * 16
	biomesPerSection    = 4 * 4 * 4
	maxSectionsPerChunk = 24
)

// ChunkSection holds one 16x16x16 vertical slice of decoded block-state ids
// and the 4x4x4 biome ids below it.
type ChunkSection struct {
	BlockCount  int16
	BlockStates []int32
	Biomes      []int32
}

// LevelChunkWithLight is the decoded payload of a chunk-data packet: chunk
// coordinates plus the per-section data extracted from the binary-tree
// wrapped blob (§4.6). Light data and block entities are skipped, never
// interpreted, since this client does not render.
type LevelChunkWithLight struct {
	ChunkX, ChunkZ int32
	Sections       []ChunkSection
}

// ParseLevelChunkWithLight decodes chunk data per §4.6: chunkX, chunkZ, a
// binary-tree-wrapped heightmaps value (skipped, never interpreted), a
// varint byte length followed by that many bytes of section data, a varint
// block-entity count plus that many entities (each skipped via the NBT
// skip parser), then light data (skipped).
func ParseLevelChunkWithLight(payload []byte) (*LevelChunkWithLight, error) {
	r := bytes.NewReader(payload)

	chunkX, err := ReadInt32(r)
	if err != nil {
		return nil, err
	}
	chunkZ, err := ReadInt32(r)
	if err != nil {
		return nil, err
	}

	if err := skipBinaryTreeRoot(r); err != nil {
		return nil, fmt.Errorf("%w: heightmaps: %v", ErrChunkDecode, err)
	}

	dataLen, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if dataLen < 0 || int(dataLen) > r.Len() {
		return nil, fmt.Errorf("%w: section data length %d exceeds remaining payload", ErrChunkDecode, dataLen)
	}
	sectionData, err := ReadRaw(r, int(dataLen))
	if err != nil {
		return nil, err
	}

	sections, err := ParseChunkSections(sectionData)
	if err != nil {
		return nil, err
	}

	blockEntityCount, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if blockEntityCount < 0 {
		return nil, fmt.Errorf("%w: negative block entity count %d", ErrChunkDecode, blockEntityCount)
	}
	for i := int32(0); i < blockEntityCount; i++ {
		if err := skipChunkBlockEntity(r); err != nil {
			return nil, fmt.Errorf("%w: block entity %d: %v", ErrChunkDecode, i, err)
		}
	}

	if err := skipLightData(r); err != nil {
		return nil, fmt.Errorf("%w: light data: %v", ErrChunkDecode, err)
	}

	return &LevelChunkWithLight{ChunkX: chunkX, ChunkZ: chunkZ, Sections: sections}, nil
}

// skipBinaryTreeRoot implements the exact three-strategy probe for a root
// binary-tree value (§4.6): try a named root compound, then a nameless root
// compound, then a varint byte length followed by that many raw bytes.
// Each strategy is attempted against a snapshot of the remaining bytes;
// the first one that both parses cleanly and leaves a plausible following
// varint (a non-negative length that does not exceed what remains) is
// committed to the real reader.
func skipBinaryTreeRoot(r *bytes.Reader) error {
	snapshot := snapshotRemaining(r)

	strategies := []func([]byte) (int, error){
		func(b []byte) (int, error) { return SkipNamedCompound(bytes.NewReader(b)) },
		func(b []byte) (int, error) { return SkipNamelessCompound(bytes.NewReader(b)) },
		skipLengthPrefixedRoot,
	}

	for _, strategy := range strategies {
		n, err := strategy(snapshot)
		if err != nil {
			continue
		}
		if !continuationLooksValid(snapshot[n:]) {
			continue
		}
		_, seekErr := r.Seek(int64(n), 1)
		return seekErr
	}
	return fmt.Errorf("%w: no binary-tree root probe strategy matched", ErrChunkDecode)
}

func skipLengthPrefixedRoot(b []byte) (int, error) {
	r := bytes.NewReader(b)
	start := r.Len()
	n, err := ReadVarInt(r)
	if err != nil {
		return 0, err
	}
	if n < 0 || int(n) > r.Len() {
		return 0, fmt.Errorf("%w: length-prefixed root length %d exceeds remaining bytes", ErrChunkDecode, n)
	}
	if err := Skip(r, int(n)); err != nil {
		return 0, err
	}
	return start - r.Len(), nil
}

// continuationLooksValid reports whether rest begins with a varint that
// could plausibly be the section-data byte length: non-negative and not
// larger than what remains.
func continuationLooksValid(rest []byte) bool {
	r := bytes.NewReader(rest)
	n, err := ReadVarInt(r)
	if err != nil {
		return false
	}
	return n >= 0 && int(n) <= r.Len()
}

func snapshotRemaining(r *bytes.Reader) []byte {
	buf := make([]byte, r.Len())
	pos, _ := r.Seek(0, 1)
	n, _ := r.Read(buf)
	r.Seek(pos, 0)
	return buf[:n]
}

// ParseChunkSections reads (blockCount int16, block-state paletted
// container of 4096 entries, biome paletted container of 64 entries)
// repeatedly until data is exhausted or maxSectionsPerChunk sections have
// been read (§4.6).
func ParseChunkSections(data []byte) ([]ChunkSection, error) {
	r := bytes.NewReader(data)
	var sections []ChunkSection

	for r.Len() > 0 && len(sections) < maxSectionsPerChunk {
		blockCount, err := ReadInt16(r)
		if err != nil {
			return nil, fmt.Errorf("%w: section %d block count: %v", ErrChunkDecode, len(sections), err)
		}

		blockStates, err := ParsePalettedContainer(r, blocksPerSection)
		if err != nil {
			return nil, fmt.Errorf("%w: section %d block states: %v", ErrChunkDecode, len(sections), err)
		}

		biomes, err := ParsePalettedContainer(r, biomesPerSection)
		if err != nil {
			return nil, fmt.Errorf("%w: section %d biomes: %v", ErrChunkDecode, len(sections), err)
		}

		sections = append(sections, ChunkSection{
			BlockCount:  blockCount,
			BlockStates: blockStates,
			Biomes:      biomes,
		})
	}

	return sections, nil
}

// UnloadChunk is the decoded payload of the unload-chunk packet. NOTE: the
// wire order is chunkZ then chunkX.
type UnloadChunk struct {
	ChunkX, ChunkZ int32
}

func ParseUnloadChunk(payload []byte) (*UnloadChunk, error) {
	r := bytes.NewReader(payload)
	chunkZ, err := ReadInt32(r)
	if err != nil {
		return nil, err
	}
	chunkX, err := ReadInt32(r)
	if err != nil {
		return nil, err
	}
	return &UnloadChunk{ChunkX: chunkX, ChunkZ: chunkZ}, nil
}

func skipChunkBlockEntity(r *bytes.Reader) error {
	if err := Skip(r, 1); err != nil { // packed x/z nibble
		return err
	}
	if _, err := ReadInt16(r); err != nil { // y
		return err
	}
	if _, err := ReadVarInt(r); err != nil { // entity type
		return err
	}
	_, err := ReadAnonymousNBT(r)
	return err
}

func skipLightData(r *bytes.Reader) error {
	for i := 0; i < 4; i++ { // skyLightMask, blockLightMask, emptySkyLightMask, emptyBlockLightMask
		if err := skipVarIntLongArray(r); err != nil {
			return err
		}
	}
	for i := 0; i < 2; i++ { // skyLight, blockLight arrays of byte arrays
		if err := skipVarIntByteArrayArray(r); err != nil {
			return err
		}
	}
	return nil
}

func skipVarIntLongArray(r *bytes.Reader) error {
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("%w: negative long array length %d", ErrChunkDecode, count)
	}
	for i := int32(0); i < count; i++ {
		if _, err := ReadInt64(r); err != nil {
			return err
		}
	}
	return nil
}

func skipVarIntByteArrayArray(r *bytes.Reader) error {
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("%w: negative byte-array array length %d", ErrChunkDecode, count)
	}
	for i := int32(0); i < count; i++ {
		n, err := ReadVarInt(r)
		if err != nil {
			return err
		}
		if n < 0 || int(n) > r.Len() {
			return fmt.Errorf("%w: byte array length %d exceeds remaining bytes", ErrChunkDecode, n)
		}
		if err := Skip(r, int(n)); err != nil {
			return err
		}
	}
	return nil
}
