package world

import (
	"fmt"
	"sync"

	"github.com/ardenlabs/voxelbot/internal/protocol"
)

// Cache is the block-level world cache (C7): a chunk set plus a flat
// non-air block index keyed by bit-packed coordinates, giving O(1) block
// lookup without the per-chunk string-keyed maps the source used.
type Cache struct {
	mu          sync.RWMutex
	chunkBlocks map[int64][]int64 // chunkKey -> blockKeys stored for that chunk
	blockCache  map[int64]int32   // blockKey -> non-air state id
	unloaded    map[int64]bool    // chunkKey -> explicitly never loaded or unloaded
}

func NewCache() *Cache {
	return &Cache{
		chunkBlocks: make(map[int64][]int64),
		blockCache:  make(map[int64]int32),
	}
}

const (
	// coordMask covers 21 bits per signed component (±1,048,576), well short
	// of the vanilla ±30,000,000 world border: coordinates further out share
	// keys with nearer ones.
	coordBits = 21
	coordMask = (int64(1) << coordBits) - 1
)

func blockKey(x, y, z int32) int64 {
	return (int64(x)&coordMask)<<42 | (int64(y)&coordMask)<<21 | (int64(z) & coordMask)
}

func chunkKey(cx, cz int32) int64 {
	return int64(uint32(cx))<<32 | int64(uint32(cz))
}

// StoreChunk decodes rawPayload with the protocol chunk decoder and fully
// re-indexes the chunk, replacing any existing record for (cx, cz).
func (c *Cache) StoreChunk(cx, cz int32, rawPayload []byte) error {
	chunk, err := protocol.ParseLevelChunkWithLight(rawPayload)
	if err != nil {
		return fmt.Errorf("decode chunk (%d,%d): %w", cx, cz, err)
	}

	keys := make([]int64, 0, 256)
	values := make(map[int64]int32, 256)
	for sectionY, section := range chunk.Sections {
		baseY := int32(ChunkMinY) + int32(sectionY)*16
		for idx, state := range section.BlockStates {
			if state == 0 {
				continue
			}
			lx := int32(idx & 0xF)
			lz := int32((idx >> 4) & 0xF)
			ly := int32((idx >> 8) & 0xF)
			x := cx*16 + lx
			y := baseY + ly
			z := cz*16 + lz
			k := blockKey(x, y, z)
			keys = append(keys, k)
			values[k] = state
		}
	}

	ck := chunkKey(cx, cz)

	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.chunkBlocks[ck]; ok {
		for _, k := range old {
			delete(c.blockCache, k)
		}
	}
	for k, v := range values {
		c.blockCache[k] = v
	}
	c.chunkBlocks[ck] = keys
	if c.unloaded != nil {
		delete(c.unloaded, ck)
	}
	return nil
}

// UnloadChunk removes the chunk record and every block key it contributed
// to blockCache.
func (c *Cache) UnloadChunk(cx, cz int32) {
	ck := chunkKey(cx, cz)

	c.mu.Lock()
	defer c.mu.Unlock()
	if keys, ok := c.chunkBlocks[ck]; ok {
		for _, k := range keys {
			delete(c.blockCache, k)
		}
		delete(c.chunkBlocks, ck)
	}
	if c.unloaded == nil {
		c.unloaded = make(map[int64]bool)
	}
	c.unloaded[ck] = true
}

// ClearDistantChunks unloads every loaded chunk whose Chebyshev
// chunk-coordinate distance from (centerX, centerZ) exceeds keepRange.
func (c *Cache) ClearDistantChunks(centerX, centerZ, keepRange int32) {
	c.mu.RLock()
	var toUnload [][2]int32
	for ck := range c.chunkBlocks {
		cx, cz := unpackChunkKey(ck)
		if chebyshev(cx-centerX, cz-centerZ) > keepRange {
			toUnload = append(toUnload, [2]int32{cx, cz})
		}
	}
	c.mu.RUnlock()

	for _, pos := range toUnload {
		c.UnloadChunk(pos[0], pos[1])
	}
}

func unpackChunkKey(k int64) (cx, cz int32) {
	return int32(int64(uint32(k >> 32))), int32(int64(uint32(k)))
}

func chebyshev(dx, dz int32) int32 {
	if dx < 0 {
		dx = -dx
	}
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}

// IsLoaded reports whether the chunk containing (x, z) has a cache record.
func (c *Cache) IsLoaded(x, z int32) bool {
	return c.isLoaded(x, z)
}

func (c *Cache) isLoaded(x, z int32) bool {
	ck := chunkKey(floorDiv(x, 16), floorDiv(z, 16))
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.chunkBlocks[ck]
	return ok
}

// GetBlock returns the stored state id at (x, y, z); the sentinel −1 if the
// containing chunk is unloaded; or 0 for loaded-but-empty (air) cells.
func (c *Cache) GetBlock(x, y, z int32) int32 {
	if !c.isLoaded(x, z) {
		return -1
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.blockCache[blockKey(x, y, z)]; ok {
		return v
	}
	return 0
}

// IsSolid reports whether (x,y,z) is solid. When pathfindingMode is set,
// unloaded cells are treated as passable; otherwise they fail closed (solid).
func (c *Cache) IsSolid(x, y, z int32, pathfindingMode bool) bool {
	state := c.GetBlock(x, y, z)
	if state == -1 {
		return !pathfindingMode
	}
	if state == 0 {
		return false
	}
	return IsSolidState(state)
}

func (c *Cache) IsFluid(x, y, z int32) bool {
	state := c.GetBlock(x, y, z)
	if state <= 0 {
		return false
	}
	return IsFluidState(state)
}

// IsHazardous reports whether (x,y,z) is a cell pathfinding should never
// route through outright, such as lava.
func (c *Cache) IsHazardous(x, y, z int32) bool {
	state := c.GetBlock(x, y, z)
	if state <= 0 {
		return false
	}
	return IsLavaState(state)
}

func (c *Cache) IsClimbable(x, y, z int32) bool {
	state := c.GetBlock(x, y, z)
	if state <= 0 {
		return false
	}
	return IsClimbableState(state)
}

// IsWalkable reports whether an avatar could stand at (x,y,z): the cell
// itself and the cell above are clear, and the cell is actually supported
// (a solid or fluid floor below, a ladder/vine at the cell itself, or the
// chunk column is unloaded under pathfindingMode — there is nothing to
// fall through if nothing is known about it).
func (c *Cache) IsWalkable(x, y, z int32, pathfindingMode bool) bool {
	if c.IsSolid(x, y, z, pathfindingMode) {
		return false
	}
	if c.IsSolid(x, y+1, z, pathfindingMode) {
		return false
	}
	if c.IsClimbable(x, y, z) {
		return true
	}
	below := c.GetBlock(x, y-1, z)
	if below == -1 {
		return pathfindingMode
	}
	return IsSolidState(below) || IsFluidState(below)
}

// CanJump reports whether there is head clearance to jump from (x,y,z).
func (c *Cache) CanJump(x, y, z int32, pathfindingMode bool) bool {
	return !c.IsSolid(x, y+2, z, pathfindingMode)
}

// FindFloorBelow searches downward from y for the first solid cell's
// surface, up to maxFall cells; returns ok=false if none is found in range.
func (c *Cache) FindFloorBelow(x, y, z, maxFall int32) (floorY int32, ok bool) {
	for fall := int32(0); fall <= maxFall; fall++ {
		cy := y - fall
		if c.IsSolid(x, cy-1, z, true) {
			return cy, true
		}
	}
	return 0, false
}

// GetMovementCost scores a cell for pathfinding: base 1.0, fluid-feet and
// fluid-below penalties, and a small wall-hugging preference.
func (c *Cache) GetMovementCost(x, y, z int32) float64 {
	cost := 1.0
	if c.IsFluid(x, y, z) {
		cost += 2.0
	}
	if c.IsFluid(x, y-1, z) {
		cost += 1.5
	}
	if !c.hasNeighborSolid(x, y, z) {
		cost += 0.5
	}
	return cost
}

func (c *Cache) hasNeighborSolid(x, y, z int32) bool {
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			if c.IsSolid(x+dx, y, z+dz, true) {
				return true
			}
		}
	}
	return false
}

func floorDiv(v, d int32) int32 {
	q := v / d
	if v%d != 0 && (v < 0) != (d < 0) {
		q--
	}
	return q
}
