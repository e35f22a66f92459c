package nav

import "errors"

// ErrNoPath is returned when short-range A* exhausts its open set or hits a
// cap/timeout without reaching the goal and without any progress at all.
var ErrNoPath = errors.New("nav: no path found")

// Cell is one integer world-block coordinate.
type Cell struct {
	X, Y, Z int32
}

func (c Cell) add(dx, dy, dz int32) Cell {
	return Cell{c.X + dx, c.Y + dy, c.Z + dz}
}

// WorldAccess is the subset of the world cache the pathfinder consults.
// Every predicate takes pathfindingMode explicitly (design decision: the
// flag is threaded as a first-class parameter everywhere, never through a
// global, since the source's own flag propagation was inconsistent).
type WorldAccess interface {
	IsSolid(x, y, z int32, pathfindingMode bool) bool
	IsWalkable(x, y, z int32, pathfindingMode bool) bool
	CanJump(x, y, z int32, pathfindingMode bool) bool
	IsClimbable(x, y, z int32) bool
	IsFluid(x, y, z int32) bool
	IsHazardous(x, y, z int32) bool
	IsLoaded(x, z int32) bool
	GetMovementCost(x, y, z int32) float64
	FindFloorBelow(x, y, z, maxFall int32) (int32, bool)
}

// Options configures a pathfinding query.
type Options struct {
	PathfindingMode bool
	Timeout         float64 // seconds, 0 means DefaultTimeoutSeconds
	MaxNodes        int     // 0 means DefaultMaxNodes
}

const (
	DefaultTimeoutSeconds = 10.0
	DefaultMaxNodes       = 20000
	longRangeThreshold    = 100.0
)
