package nav

const waypointDistance = 50.0

// Plan is the pathfinder's single entry point: short-range plain A* below
// longRangeThreshold, the waypoint-chained long-range planner above it.
// Both paths apply the soft-start rebase first.
func Plan(w WorldAccess, start, goal Cell, opts Options) ([]Cell, error) {
	start = softStart(w, start, opts.PathfindingMode)

	if euclidean(start, goal) < longRangeThreshold {
		return ShortRange(w, start, goal, opts)
	}
	return LongRange(w, start, goal, opts)
}

// LongRange generates straight-line waypoints every waypointDistance cells,
// snaps each to the floor when its chunk is loaded, and solves A* between
// successive waypoints. A failed segment is soft-bypassed: skip the
// waypoint and retry from the current position against the next one with a
// larger node budget; any partial progress accumulated is still returned.
func LongRange(w WorldAccess, start, goal Cell, opts Options) ([]Cell, error) {
	waypoints := buildWaypoints(w, start, goal)

	var full []Cell
	current := start
	i := 1 // waypoints[0] == start
	for i < len(waypoints) {
		segOpts := opts
		segOpts.MaxNodes = 10000
		seg, err := ShortRange(w, current, waypoints[i], segOpts)
		if err != nil {
			if i+1 >= len(waypoints) {
				break
			}
			fallbackOpts := opts
			fallbackOpts.MaxNodes = 15000
			seg, err = ShortRange(w, current, waypoints[i+1], fallbackOpts)
			if err != nil {
				break
			}
			i++ // the failed waypoint is skipped
		}
		full = appendSegment(full, seg)
		current = seg[len(seg)-1]
		i++
	}

	if len(full) == 0 {
		return nil, ErrNoPath
	}
	return full, nil
}

func appendSegment(full, seg []Cell) []Cell {
	if len(full) == 0 {
		return append(full, seg...)
	}
	// seg[0] duplicates the last cell already in full.
	if len(seg) > 0 {
		return append(full, seg[1:]...)
	}
	return full
}

func buildWaypoints(w WorldAccess, start, goal Cell) []Cell {
	waypoints := []Cell{start}

	total := euclidean(start, goal)
	if total == 0 {
		return append(waypoints, goal)
	}

	dx := float64(goal.X-start.X) / total
	dy := float64(goal.Y-start.Y) / total
	dz := float64(goal.Z-start.Z) / total

	for d := waypointDistance; d < total; d += waypointDistance {
		x := float64(start.X) + dx*d
		y := float64(start.Y) + dy*d
		z := float64(start.Z) + dz*d
		wp := Cell{int32(x), int32(y), int32(z)}

		if w.IsLoaded(wp.X, wp.Z) {
			if floorY, ok := w.FindFloorBelow(wp.X, wp.Y+5, wp.Z, 20); ok {
				wp.Y = floorY
			}
		}
		waypoints = append(waypoints, wp)
	}

	return append(waypoints, goal)
}

// softStart rebases a non-walkable query start onto the nearest walkable
// cell: first a 3x3x3 block centered on it, then one layer below.
func softStart(w WorldAccess, start Cell, pf bool) Cell {
	if w.IsWalkable(start.X, start.Y, start.Z, pf) {
		return start
	}

	if c, ok := nearestWalkableIn(w, start, 0, pf); ok {
		return c
	}
	below := Cell{start.X, start.Y - 1, start.Z}
	if c, ok := nearestWalkableIn(w, below, 0, pf); ok {
		return c
	}
	return start
}

func nearestWalkableIn(w WorldAccess, center Cell, _ int, pf bool) (Cell, bool) {
	var best Cell
	bestDist := int32(-1)
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			for dz := int32(-1); dz <= 1; dz++ {
				c := center.add(dx, dy, dz)
				if !w.IsWalkable(c.X, c.Y, c.Z, pf) {
					continue
				}
				if d := dx*dx + dy*dy + dz*dz; bestDist < 0 || d < bestDist {
					best, bestDist = c, d
				}
			}
		}
	}
	return best, bestDist >= 0
}
