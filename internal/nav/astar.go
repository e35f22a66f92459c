package nav

import (
	"container/heap"
	"math"
	"time"
)

// ShortRange runs plain A* with a Euclidean heuristic between start and
// goal. Used directly when their distance is below longRangeThreshold; the
// long-range planner (longrange.go) calls it per waypoint segment.
func ShortRange(w WorldAccess, start, goal Cell, opts Options) ([]Cell, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeoutSeconds
	}
	maxNodes := opts.MaxNodes
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	deadline := time.Now().Add(time.Duration(timeout * float64(time.Second)))

	open := &nodeQueue{}
	heap.Init(open)
	heap.Push(open, &node{cell: start, g: 0, f: euclidean(start, goal)})

	cameFrom := make(map[Cell]Cell)
	gScore := map[Cell]float64{start: 0}
	closed := make(map[Cell]bool)

	expanded := 0
	for open.Len() > 0 {
		if expanded >= maxNodes || time.Now().After(deadline) {
			return nil, ErrNoPath
		}

		current := heap.Pop(open).(*node)
		if closed[current.cell] {
			continue
		}
		closed[current.cell] = true
		expanded++

		if current.cell == goal || euclidean(current.cell, goal) < 2 {
			return reconstruct(cameFrom, start, current.cell), nil
		}

		for _, n := range neighbors(w, current.cell, opts.PathfindingMode) {
			if closed[n.cell] {
				continue
			}
			tentative := gScore[current.cell] + n.cost
			if prev, ok := gScore[n.cell]; ok && tentative >= prev {
				continue
			}
			cameFrom[n.cell] = current.cell
			gScore[n.cell] = tentative
			heap.Push(open, &node{cell: n.cell, g: tentative, f: tentative + euclidean(n.cell, goal)})
		}
	}
	return nil, ErrNoPath
}

func euclidean(a, b Cell) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func reconstruct(cameFrom map[Cell]Cell, start, goal Cell) []Cell {
	path := []Cell{goal}
	for cur := goal; cur != start; {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type move struct {
	cell Cell
	cost float64
}

var cardinalXZ = [4][2]int32{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var diagonalXZ = [4][2]int32{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// neighbors generates the moves available from p per the fixed move set:
// cardinal/diagonal XZ steps (same level, step up, fall), and climb moves.
func neighbors(w WorldAccess, p Cell, pf bool) []move {
	var out []move

	columns := make([][2]int32, 0, 8)
	for _, d := range cardinalXZ {
		columns = append(columns, d)
	}
	for _, d := range diagonalXZ {
		// No corner-cutting: both adjacent cardinal cells at p.y must be open.
		if w.IsSolid(p.X+d[0], p.Y, p.Z, pf) || w.IsSolid(p.X, p.Y, p.Z+d[1], pf) {
			continue
		}
		columns = append(columns, d)
	}

	for _, d := range columns {
		tx, tz := p.X+d[0], p.Z+d[1]
		if m, ok := columnMove(w, p, tx, tz, pf); ok {
			out = append(out, m)
		}
	}

	if w.IsClimbable(p.X, p.Y, p.Z) {
		up := Cell{p.X, p.Y + 1, p.Z}
		if w.IsWalkable(up.X, up.Y, up.Z, pf) || w.IsClimbable(up.X, up.Y, up.Z) {
			out = append(out, move{up, 1.5})
		}
		down := Cell{p.X, p.Y - 1, p.Z}
		if w.IsWalkable(down.X, down.Y, down.Z, pf) || w.IsClimbable(down.X, down.Y, down.Z) {
			out = append(out, move{down, 1.2})
		}
	}

	return out
}

// columnMove resolves the single best vertical move into column (tx, tz)
// from p: same level, step up, or fall.
func columnMove(w WorldAccess, p Cell, tx, tz int32, pf bool) (move, bool) {
	if w.IsHazardous(tx, p.Y, tz) {
		return move{}, false
	}
	if w.IsWalkable(tx, p.Y, tz, pf) {
		return withFluidPenalty(w, Cell{tx, p.Y, tz}, w.GetMovementCost(tx, p.Y, tz), pf), true
	}
	if w.CanJump(p.X, p.Y, p.Z, pf) && w.IsWalkable(tx, p.Y+1, tz, pf) && !w.IsHazardous(tx, p.Y+1, tz) {
		return withFluidPenalty(w, Cell{tx, p.Y + 1, tz}, 1.3*w.GetMovementCost(tx, p.Y+1, tz), pf), true
	}
	for fall := int32(1); fall <= 3; fall++ {
		ty := p.Y - fall
		if w.IsHazardous(tx, ty, tz) {
			break
		}
		if !w.IsWalkable(tx, ty, tz, pf) {
			continue
		}
		if w.IsSolid(tx, ty-1, tz, pf) {
			cost := (1 + 0.2*float64(fall)) * w.GetMovementCost(tx, ty, tz)
			return withFluidPenalty(w, Cell{tx, ty, tz}, cost, pf), true
		}
		break
	}
	return move{}, false
}

func withFluidPenalty(w WorldAccess, c Cell, cost float64, pf bool) move {
	if pf && w.IsFluid(c.X, c.Y, c.Z) {
		cost += 8.0
	}
	return move{c, cost}
}

type node struct {
	cell  Cell
	g, f  float64
	index int
}

type nodeQueue []*node

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].f == q[j].f {
		return q[i].g < q[j].g
	}
	return q[i].f < q[j].f
}
func (q nodeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *nodeQueue) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}
func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
