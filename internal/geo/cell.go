// Package geo provides board geometry for tactical battles: cells, tile
// grids with walls and heights, and budgeted path search.
package geo

import "fmt"

// Cell is a board coordinate.
type Cell struct {
	X, Y int
}

// String returns "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add offsets c by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// Orthogonal offsets in N, E, S, W order.
var Orthogonal = [4]Cell{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// Neighbors returns the four orthogonally adjacent cells in N, E, S, W order.
func (c Cell) Neighbors() [4]Cell {
	var out [4]Cell
	for i, d := range Orthogonal {
		out[i] = c.Add(d)
	}
	return out
}

// Manhattan returns the taxicab distance between a and b.
func Manhattan(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Adjacent reports whether a and b share an edge.
func Adjacent(a, b Cell) bool {
	return Manhattan(a, b) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
