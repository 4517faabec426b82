package geo

import "container/heap"

// MaxPathfindIterations bounds the work a single search may do.
const MaxPathfindIterations = 7000

// Passable reports whether a single orthogonal step from one cell to an
// adjacent one is allowed.
type Passable func(from, to Cell) bool

// FindPath finds a shortest orthogonal path from start to end using A*.
//
// budget is the maximum number of cells the path may contain, origin
// included: a budget of n allows at most n-1 steps. The returned path
// starts with start and ends with end; nil means no path fits the budget.
func FindPath(start, end Cell, budget int, passable Passable) []Cell {
	if budget < 1 {
		return nil
	}
	if start == end {
		return []Cell{start}
	}
	maxSteps := budget - 1
	if Manhattan(start, end) > maxSteps {
		return nil
	}

	result := astar(start, end, maxSteps, passable)
	if result == nil {
		return nil
	}

	path := make([]Cell, 0, result.g+1)
	for n := result; n != nil; n = n.parent {
		path = append(path, n.cell)
	}
	// Reverse (A* builds path backward)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Reachable returns every cell reachable from start within budget cells
// (origin included), mapped to its step distance. start maps to 0.
func Reachable(start Cell, budget int, passable Passable) map[Cell]int {
	dist := make(map[Cell]int, 16)
	if budget < 1 {
		return dist
	}
	maxSteps := budget - 1
	dist[start] = 0
	queue := []Cell{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		d := dist[current]
		if d == maxSteps {
			continue
		}
		for _, next := range current.Neighbors() {
			if _, seen := dist[next]; seen {
				continue
			}
			if !passable(current, next) {
				continue
			}
			dist[next] = d + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// pathNode represents a node in the A* search graph.
type pathNode struct {
	cell   Cell
	parent *pathNode
	g      int // Steps from start
	f      int // g + Manhattan to target
	seq    int // Insertion order, keeps ties deterministic
	index  int // heap index
}

func astar(start, end Cell, maxSteps int, passable Passable) *pathNode {
	openList := &nodeHeap{}
	heap.Init(openList)
	seq := 0
	heap.Push(openList, &pathNode{cell: start, f: Manhattan(start, end)})

	closed := make(map[Cell]struct{}, 64)

	for range MaxPathfindIterations {
		if openList.Len() == 0 {
			return nil
		}

		current := heap.Pop(openList).(*pathNode)
		if current.cell == end {
			return current
		}
		if _, exists := closed[current.cell]; exists {
			continue
		}
		closed[current.cell] = struct{}{}

		for _, next := range current.cell.Neighbors() {
			if _, exists := closed[next]; exists {
				continue
			}
			g := current.g + 1
			f := g + Manhattan(next, end)
			// Manhattan never overestimates, so f bounds the final length.
			if f > maxSteps {
				continue
			}
			if !passable(current.cell, next) {
				continue
			}
			seq++
			heap.Push(openList, &pathNode{cell: next, parent: current, g: g, f: f, seq: seq})
		}
	}

	return nil // Max iterations exceeded
}

// nodeHeap implements container/heap for the A* open list (min-heap by f).
type nodeHeap []*pathNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)   { n := x.(*pathNode); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	node.index = -1
	*h = old[:n-1]
	return node
}
