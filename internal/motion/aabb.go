package motion

import "math"

// axisTolerance absorbs floating-point noise at cell boundaries, the same
// role the teacher's collision code gives it.
const axisTolerance = 1e-9

// BlockSolid is the single query the AABB sweep needs from the world cache.
type BlockSolid interface {
	IsSolid(x, y, z int32, pathfindingMode bool) bool
}

type Vec3 struct {
	X, Y, Z float64
}

type AABB struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// PlayerAABB returns the avatar's box anchored at feet position (x,y,z):
// half-width 0.3, height 1.8.
func PlayerAABB(x, y, z float64) AABB {
	return AABB{
		MinX: x - PlayerHalfWidth, MinY: y, MinZ: z - PlayerHalfWidth,
		MaxX: x + PlayerHalfWidth, MaxY: y + PlayerHeight, MaxZ: z + PlayerHalfWidth,
	}
}

// Sweep moves pos by (dx, dy, dz) against the world, sweeping X then Z
// then Y, with a step-up attempt between the XZ sweeps and the Y sweep.
// Returns the resolved position, the vertical delta to keep as velocity
// (dy, or 0 when the Y sweep clipped it), and whether the Y sweep clipped
// downward motion (→ onGround).
func Sweep(world BlockSolid, pos Vec3, dx, dy, dz float64, onGround, pathfindingMode bool) (newPos Vec3, appliedDY float64, grounded bool) {
	box := PlayerAABB(pos.X, pos.Y, pos.Z)
	start := box

	xClamped, movedX := sweepAxis(world, box, dx, axisX, pathfindingMode)
	box = translate(box, movedX, 0, 0)
	zClamped, movedZ := sweepAxis(world, box, dz, axisZ, pathfindingMode)
	box = translate(box, 0, 0, movedZ)

	blockedXZ := xClamped || zClamped
	if blockedXZ && onGround {
		if upMovedX, upMovedZ, improved := attemptStepUp(world, start, dx, dz, movedX, movedZ, pathfindingMode); improved {
			box = translate(box, -movedX+upMovedX, StepUpHeight, -movedZ+upMovedZ)
			movedX, movedZ = upMovedX, upMovedZ
			dropped := dropAfterStepUp(world, box, pathfindingMode)
			box = translate(box, 0, -dropped, 0)
		}
	}

	yClamped, movedY := sweepAxis(world, box, dy, axisY, pathfindingMode)
	box = translate(box, 0, movedY, 0)

	appliedDY = dy
	if yClamped {
		appliedDY = 0
	}
	grounded = yClamped && dy < 0

	newPos = Vec3{
		X: box.MinX + PlayerHalfWidth,
		Y: box.MinY,
		Z: box.MinZ + PlayerHalfWidth,
	}
	return newPos, appliedDY, grounded
}

type axis int

const (
	axisX axis = iota
	axisZ
	axisY
)

// sweepAxis clamps delta along one axis so the box does not overlap any
// solid candidate block whose footprint it overlaps on the other two axes.
// Returns whether the motion was clamped (blocked), and the delta actually
// applied.
func sweepAxis(world BlockSolid, box AABB, delta float64, a axis, pathfindingMode bool) (clamped bool, applied float64) {
	if nearlyZero(delta) {
		return false, delta
	}

	allowed := delta
	for _, c := range candidateBlocks(box, a, delta) {
		if !world.IsSolid(c.x, c.y, c.z, pathfindingMode) {
			continue
		}
		blockBox := AABB{
			MinX: float64(c.x), MinY: float64(c.y), MinZ: float64(c.z),
			MaxX: float64(c.x + 1), MaxY: float64(c.y + 1), MaxZ: float64(c.z + 1),
		}
		if !overlapsOtherAxes(box, blockBox, a) {
			continue
		}
		if clamp, ok := clampAlongAxis(box, blockBox, a, delta); ok {
			if (delta > 0 && clamp < allowed) || (delta < 0 && clamp > allowed) {
				allowed = clamp
			}
		}
	}

	if !nearlyEqual(allowed, delta) {
		return true, allowed
	}
	return false, allowed
}

type cell struct{ x, y, z int32 }

func candidateBlocks(box AABB, a axis, delta float64) []cell {
	var cells []cell
	minX, maxX := floorMin(box.MinX), floorMax(box.MaxX)
	minY, maxY := floorMin(box.MinY), floorMax(box.MaxY)
	minZ, maxZ := floorMin(box.MinZ), floorMax(box.MaxZ)

	switch a {
	case axisX:
		lo, hi := sweepRange(box.MinX, box.MaxX, delta)
		for x := lo; x <= hi; x++ {
			for y := minY; y <= maxY; y++ {
				for z := minZ; z <= maxZ; z++ {
					cells = append(cells, cell{x, y, z})
				}
			}
		}
	case axisZ:
		lo, hi := sweepRange(box.MinZ, box.MaxZ, delta)
		for z := lo; z <= hi; z++ {
			for x := minX; x <= maxX; x++ {
				for y := minY; y <= maxY; y++ {
					cells = append(cells, cell{x, y, z})
				}
			}
		}
	case axisY:
		lo, hi := sweepRange(box.MinY, box.MaxY, delta)
		for y := lo; y <= hi; y++ {
			for x := minX; x <= maxX; x++ {
				for z := minZ; z <= maxZ; z++ {
					cells = append(cells, cell{x, y, z})
				}
			}
		}
	}
	return cells
}

func sweepRange(minV, maxV, delta float64) (int32, int32) {
	if delta > 0 {
		return int32(math.Floor(maxV)), int32(math.Floor(maxV + delta))
	}
	return int32(math.Floor(minV + delta)), int32(math.Floor(minV - axisTolerance))
}

func overlapsOtherAxes(box, block AABB, a axis) bool {
	switch a {
	case axisX:
		return box.MinY < block.MaxY && box.MaxY > block.MinY && box.MinZ < block.MaxZ && box.MaxZ > block.MinZ
	case axisZ:
		return box.MinX < block.MaxX && box.MaxX > block.MinX && box.MinY < block.MaxY && box.MaxY > block.MinY
	default: // axisY
		return box.MinX < block.MaxX && box.MaxX > block.MinX && box.MinZ < block.MaxZ && box.MaxZ > block.MinZ
	}
}

func clampAlongAxis(box, block AABB, a axis, delta float64) (float64, bool) {
	switch a {
	case axisX:
		if delta > 0 {
			return block.MinX - box.MaxX, true
		}
		return block.MaxX - box.MinX, true
	case axisZ:
		if delta > 0 {
			return block.MinZ - box.MaxZ, true
		}
		return block.MaxZ - box.MinZ, true
	default: // axisY
		if delta > 0 {
			return block.MinY - box.MaxY, true
		}
		return block.MaxY - box.MinY, true
	}
}

// attemptStepUp lifts the pre-sweep box by StepUpHeight and re-sweeps the
// original desired (dx, dz); improved is true only when the lifted sweep
// covers strictly more distance than the blocked one (blockedX, blockedZ),
// and the caller commits only then.
func attemptStepUp(world BlockSolid, startBox AABB, dx, dz, blockedX, blockedZ float64, pathfindingMode bool) (movedX, movedZ float64, improved bool) {
	lifted := translate(startBox, 0, StepUpHeight, 0)
	_, upX := sweepAxis(world, lifted, dx, axisX, pathfindingMode)
	lifted = translate(lifted, upX, 0, 0)
	_, upZ := sweepAxis(world, lifted, dz, axisZ, pathfindingMode)

	improved = math.Abs(upX)+math.Abs(upZ) > math.Abs(blockedX)+math.Abs(blockedZ)+axisTolerance
	return upX, upZ, improved
}

func dropAfterStepUp(world BlockSolid, box AABB, pathfindingMode bool) float64 {
	_, moved := sweepAxis(world, box, -StepUpHeight, axisY, pathfindingMode)
	return -moved
}

func translate(box AABB, dx, dy, dz float64) AABB {
	return AABB{
		MinX: box.MinX + dx, MinY: box.MinY + dy, MinZ: box.MinZ + dz,
		MaxX: box.MaxX + dx, MaxY: box.MaxY + dy, MaxZ: box.MaxZ + dz,
	}
}

func floorMin(v float64) int32 { return int32(math.Floor(v + axisTolerance)) }
func floorMax(v float64) int32 { return int32(math.Floor(v - axisTolerance)) }

func nearlyZero(v float64) bool     { return math.Abs(v) <= axisTolerance }
func nearlyEqual(a, b float64) bool { return math.Abs(a-b) <= axisTolerance }
