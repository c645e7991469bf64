// pkg/grid/pathfinding.go
package grid

import (
	"container/heap"
	"errors"

	"go-grid-defense/pkg/geom"
)

// ErrRouteNotFound means the goal cannot be reached from the start with the
// current obstacles. It is an expected outcome, not a fault.
var ErrRouteNotFound = errors.New("route not found")

const noParent = -1

// FindRoute runs A* from start to goal over the 4-connected grid with unit
// step cost and a Manhattan heuristic, returning a shortest route.
//
// The start cell is always expanded, even when occupied; every other cell
// must be in bounds and free to be entered. Among frontier cells with the
// same estimated cost, the one pushed first is expanded first, so equal
// inputs always produce equal routes.
func FindRoute(start, goal geom.Cell, occ Occupancy) (Route, error) {
	if start == goal {
		return Route{cells: []geom.Cell{start}}, nil
	}
	if !inBounds(occ, start) || !inBounds(occ, goal) {
		return Route{}, ErrRouteNotFound
	}

	w := occ.Width()
	n := w * occ.Height()
	costSoFar := make([]int, n)
	cameFrom := make([]int, n)
	closed := make([]bool, n)
	for i := range costSoFar {
		costSoFar[i] = -1
		cameFrom[i] = noParent
	}

	pack := func(c geom.Cell) int { return c.Y*w + c.X }
	unpack := func(i int) geom.Cell { return geom.Cell{X: i % w, Y: i / w} }

	pq := &PriorityQueue{}
	startIdx := pack(start)
	goalIdx := pack(goal)
	costSoFar[startIdx] = 0
	pq.push(startIdx, start.Manhattan(goal))

	for pq.Len() > 0 {
		current := heap.Pop(pq).(node)
		if closed[current.idx] {
			continue
		}
		closed[current.idx] = true
		if current.idx == goalIdx {
			return reconstructRoute(cameFrom, goalIdx, unpack), nil
		}

		cell := unpack(current.idx)
		for _, neighbor := range cell.Neighbors4() {
			if !inBounds(occ, neighbor) || occ.Blocked(neighbor) {
				continue
			}
			ni := pack(neighbor)
			if closed[ni] {
				continue
			}
			newCost := costSoFar[current.idx] + 1
			if prev := costSoFar[ni]; prev < 0 || newCost < prev {
				costSoFar[ni] = newCost
				cameFrom[ni] = current.idx
				pq.push(ni, newCost+neighbor.Manhattan(goal))
			}
		}
	}
	return Route{}, ErrRouteNotFound
}

func inBounds(occ Occupancy, c geom.Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < occ.Width() && c.Y < occ.Height()
}

func reconstructRoute(cameFrom []int, goalIdx int, unpack func(int) geom.Cell) Route {
	cells := []geom.Cell{}
	for i := goalIdx; i != noParent; i = cameFrom[i] {
		cells = append(cells, unpack(i))
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return Route{cells: cells}
}

// PriorityQueue is the A* frontier, ordered by estimated total cost and then
// by insertion order.
type PriorityQueue struct {
	nodes []node
	seq   uint64
}

type node struct {
	idx  int
	cost int
	seq  uint64
}

func (pq *PriorityQueue) push(idx, cost int) {
	pq.seq++
	heap.Push(pq, node{idx: idx, cost: cost, seq: pq.seq})
}

func (pq PriorityQueue) Len() int { return len(pq.nodes) }
func (pq PriorityQueue) Less(i, j int) bool {
	a, b := pq.nodes[i], pq.nodes[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	return a.seq < b.seq
}
func (pq PriorityQueue) Swap(i, j int) { pq.nodes[i], pq.nodes[j] = pq.nodes[j], pq.nodes[i] }
func (pq *PriorityQueue) Push(x interface{}) {
	pq.nodes = append(pq.nodes, x.(node))
}
func (pq *PriorityQueue) Pop() interface{} {
	old := pq.nodes
	n := len(old)
	item := old[n-1]
	pq.nodes = old[0 : n-1]
	return item
}
