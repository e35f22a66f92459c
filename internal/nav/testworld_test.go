package nav

// fakeWorld is a minimal in-memory WorldAccess used by the pathfinder
// tests: a set of solid cells plus an "always loaded" assumption.
type fakeWorld struct {
	solid map[Cell]bool
	fluid map[Cell]bool
	lava  map[Cell]bool
	climb map[Cell]bool
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		solid: make(map[Cell]bool),
		fluid: make(map[Cell]bool),
		lava:  make(map[Cell]bool),
		climb: make(map[Cell]bool),
	}
}

func (w *fakeWorld) fillSlab(y int32, x0, x1, z0, z1 int32) {
	for x := x0; x <= x1; x++ {
		for z := z0; z <= z1; z++ {
			w.solid[Cell{x, y, z}] = true
		}
	}
}

func (w *fakeWorld) IsSolid(x, y, z int32, _ bool) bool {
	return w.solid[Cell{x, y, z}]
}

func (w *fakeWorld) IsWalkable(x, y, z int32, pf bool) bool {
	if w.IsSolid(x, y, z, pf) {
		return false
	}
	if w.IsSolid(x, y+1, z, pf) {
		return false
	}
	if w.IsClimbable(x, y, z) {
		return true
	}
	return w.IsSolid(x, y-1, z, pf) || w.IsFluid(x, y-1, z)
}

func (w *fakeWorld) CanJump(x, y, z int32, pf bool) bool {
	return !w.IsSolid(x, y+2, z, pf)
}

func (w *fakeWorld) IsClimbable(x, y, z int32) bool { return w.climb[Cell{x, y, z}] }
func (w *fakeWorld) IsFluid(x, y, z int32) bool      { return w.fluid[Cell{x, y, z}] }
func (w *fakeWorld) IsHazardous(x, y, z int32) bool  { return w.lava[Cell{x, y, z}] }
func (w *fakeWorld) IsLoaded(x, z int32) bool        { return true }

func (w *fakeWorld) GetMovementCost(x, y, z int32) float64 {
	cost := 1.0
	if w.IsFluid(x, y, z) {
		cost += 2.0
	}
	if w.IsFluid(x, y-1, z) {
		cost += 1.5
	}
	return cost
}

func (w *fakeWorld) FindFloorBelow(x, y, z, maxFall int32) (int32, bool) {
	for fall := int32(0); fall <= maxFall; fall++ {
		cy := y - fall
		if w.IsSolid(x, cy-1, z, true) {
			return cy, true
		}
	}
	return 0, false
}
