package world

import (
	"bytes"
	"testing"

	"github.com/ardenlabs/voxelbot/internal/protocol"
)

// buildChunkPayload encodes a minimal one-section chunk whose every block
// state is stateID (a single-value palette with dataLongs == 0) and whose
// biomes are all 0.
func buildChunkPayload(t *testing.T, chunkX, chunkZ int32, stateID int32) []byte {
	t.Helper()
	var buf bytes.Buffer
	protocol.WriteInt32(&buf, chunkX)
	protocol.WriteInt32(&buf, chunkZ)
	protocol.WriteVarInt(&buf, 0) // heightmaps: length-prefixed, zero length

	var sectionBuf bytes.Buffer
	protocol.WriteInt16(&sectionBuf, 4096) // block count
	protocol.WriteByte(&sectionBuf, 0)     // blocks: single-value palette
	protocol.WriteVarInt(&sectionBuf, stateID)
	protocol.WriteVarInt(&sectionBuf, 0) // dataLongs == 0
	protocol.WriteByte(&sectionBuf, 0)   // biomes: single-value palette
	protocol.WriteVarInt(&sectionBuf, 0)
	protocol.WriteVarInt(&sectionBuf, 0)

	protocol.WriteVarInt(&buf, int32(sectionBuf.Len()))
	buf.Write(sectionBuf.Bytes())

	protocol.WriteVarInt(&buf, 0) // block entity count
	for i := 0; i < 4; i++ {
		protocol.WriteVarInt(&buf, 0) // light masks
	}
	for i := 0; i < 2; i++ {
		protocol.WriteVarInt(&buf, 0) // light arrays
	}
	return buf.Bytes()
}

// buildIndirectPaletteChunkPayload encodes a one-section chunk using a real
// indirect (4-bit) palette: every entry is air (palette index 0) except
// localIdx, which is placed at palette index 1 (stateID). localIdx packs
// local (x,y,z) as idx = y*256 + z*16 + x (§4.6/§3), so a test can place a
// distinct state at a specific y and z and confirm StoreChunk resolves it
// to the matching world coordinate, not a y/z-swapped one.
func buildIndirectPaletteChunkPayload(t *testing.T, chunkX, chunkZ, localIdx, stateID int32) []byte {
	t.Helper()
	var buf bytes.Buffer
	protocol.WriteInt32(&buf, chunkX)
	protocol.WriteInt32(&buf, chunkZ)
	protocol.WriteVarInt(&buf, 0) // heightmaps: length-prefixed, zero length

	const bitsPerEntry = 4
	const perWord = 64 / bitsPerEntry
	const entries = 4096
	longCount := (entries + perWord - 1) / perWord
	words := make([]uint64, longCount)
	wordIdx := int(localIdx) / perWord
	shift := (int(localIdx) % perWord) * bitsPerEntry
	words[wordIdx] |= uint64(1) << shift // palette index 1 at localIdx, 0 elsewhere

	var sectionBuf bytes.Buffer
	protocol.WriteInt16(&sectionBuf, 1)           // block count
	protocol.WriteByte(&sectionBuf, bitsPerEntry) // blocks: indirect palette
	protocol.WriteVarInt(&sectionBuf, 2)          // palette length
	protocol.WriteVarInt(&sectionBuf, 0)          // palette[0] = air
	protocol.WriteVarInt(&sectionBuf, stateID)    // palette[1] = stateID
	protocol.WriteVarInt(&sectionBuf, int32(longCount))
	for _, w := range words {
		protocol.WriteInt64(&sectionBuf, int64(w))
	}
	protocol.WriteByte(&sectionBuf, 0) // biomes: single-value palette
	protocol.WriteVarInt(&sectionBuf, 0)
	protocol.WriteVarInt(&sectionBuf, 0)

	protocol.WriteVarInt(&buf, int32(sectionBuf.Len()))
	buf.Write(sectionBuf.Bytes())

	protocol.WriteVarInt(&buf, 0) // block entity count
	for i := 0; i < 4; i++ {
		protocol.WriteVarInt(&buf, 0) // light masks
	}
	for i := 0; i < 2; i++ {
		protocol.WriteVarInt(&buf, 0) // light arrays
	}
	return buf.Bytes()
}

func TestCacheStoreChunkResolvesYAndZIndependently(t *testing.T) {
	c := NewCache()
	// local (x=0, y=1, z=2): idx = 1*256 + 2*16 + 0 = 288.
	const localX, localY, localZ = int32(0), int32(1), int32(2)
	localIdx := localY*256 + localZ*16 + localX
	payload := buildIndirectPaletteChunkPayload(t, 0, 0, localIdx, 7)
	if err := c.StoreChunk(0, 0, payload); err != nil {
		t.Fatalf("StoreChunk: %v", err)
	}

	wantX, wantY, wantZ := localX, int32(ChunkMinY)+localY, localZ
	if got := c.GetBlock(wantX, wantY, wantZ); got != 7 {
		t.Fatalf("GetBlock(%d,%d,%d) = %d, want 7", wantX, wantY, wantZ, got)
	}

	// A y/z swap would instead place the block at y=2+ChunkMinY, z=1.
	swappedY, swappedZ := int32(ChunkMinY)+localZ, localY
	if got := c.GetBlock(wantX, swappedY, swappedZ); got == 7 {
		t.Fatalf("GetBlock(%d,%d,%d) = 7, want air: y and z were swapped during indexing", wantX, swappedY, swappedZ)
	}
}

func TestCacheStoreAndGetBlock(t *testing.T) {
	c := NewCache()
	payload := buildChunkPayload(t, 0, 0, 7)
	if err := c.StoreChunk(0, 0, payload); err != nil {
		t.Fatalf("StoreChunk: %v", err)
	}

	if got := c.GetBlock(0, ChunkMinY, 0); got != 7 {
		t.Fatalf("GetBlock in loaded chunk = %d, want 7", got)
	}
	if got := c.GetBlock(100, ChunkMinY, 100); got != -1 {
		t.Fatalf("GetBlock in unloaded chunk = %d, want -1", got)
	}
}

func TestCacheUnloadChunkClearsBlockCache(t *testing.T) {
	c := NewCache()
	payload := buildChunkPayload(t, 0, 0, 7)
	if err := c.StoreChunk(0, 0, payload); err != nil {
		t.Fatalf("StoreChunk: %v", err)
	}
	if len(c.blockCache) == 0 {
		t.Fatalf("expected non-empty blockCache after store")
	}

	c.UnloadChunk(0, 0)

	if len(c.blockCache) != 0 {
		t.Fatalf("blockCache not empty after unload: %d entries", len(c.blockCache))
	}
	if _, ok := c.chunkBlocks[chunkKey(0, 0)]; ok {
		t.Fatalf("chunkBlocks still has entry for unloaded chunk")
	}
	if got := c.GetBlock(0, ChunkMinY, 0); got != -1 {
		t.Fatalf("GetBlock after unload = %d, want -1", got)
	}
}

func TestCacheRestoreReindexes(t *testing.T) {
	c := NewCache()
	if err := c.StoreChunk(0, 0, buildChunkPayload(t, 0, 0, 7)); err != nil {
		t.Fatalf("StoreChunk: %v", err)
	}
	if err := c.StoreChunk(0, 0, buildChunkPayload(t, 0, 0, 9)); err != nil {
		t.Fatalf("StoreChunk (replace): %v", err)
	}
	if got := c.GetBlock(0, ChunkMinY, 0); got != 9 {
		t.Fatalf("GetBlock after replace = %d, want 9", got)
	}
}

func TestCacheClearDistantChunks(t *testing.T) {
	c := NewCache()
	for cx := int32(-2); cx <= 2; cx++ {
		if err := c.StoreChunk(cx, 0, buildChunkPayload(t, cx, 0, 7)); err != nil {
			t.Fatalf("StoreChunk(%d,0): %v", cx, err)
		}
	}

	c.ClearDistantChunks(0, 0, 1)

	if c.isLoaded(-2*16, 0) {
		t.Fatalf("chunk -2 should have been evicted")
	}
	if !c.isLoaded(0, 0) {
		t.Fatalf("chunk 0 should remain loaded")
	}
}

func TestCacheIsSolidPathfindingMode(t *testing.T) {
	c := NewCache()
	if !c.IsSolid(1000, 0, 1000, false) {
		t.Fatalf("unloaded cell should be solid with pathfindingMode=false")
	}
	if c.IsSolid(1000, 0, 1000, true) {
		t.Fatalf("unloaded cell should be passable with pathfindingMode=true")
	}
}

func TestChunkKeyRoundTrip(t *testing.T) {
	cx, cz := int32(-500), int32(12345)
	gotCX, gotCZ := unpackChunkKey(chunkKey(cx, cz))
	if gotCX != cx || gotCZ != cz {
		t.Fatalf("chunkKey round trip = (%d,%d), want (%d,%d)", gotCX, gotCZ, cx, cz)
	}
}
