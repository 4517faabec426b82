package geo

import (
	"errors"
	"fmt"
)

// ErrBadTile is returned when a tile row contains an unknown rune.
var ErrBadTile = errors.New("unknown tile")

// Tile runes accepted by ParseGrid.
const (
	TileWall  = '#'
	TileFloor = '.'
)

// Grid is a rectangular board of tiles. Each tile is either a wall or a
// floor with a height.
type Grid struct {
	width, height int
	walls         []bool
	heights       []int
}

// NewGrid creates an open, flat grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:   width,
		height:  height,
		walls:   make([]bool, width*height),
		heights: make([]int, width*height),
	}
}

// ParseGrid builds a grid from rows of tile runes: '#' wall, '.' floor at
// height 0, '0'-'9' floor at that height. Rows shorter than the widest
// row are padded with walls.
func ParseGrid(rows []string) (*Grid, error) {
	width := 0
	for _, row := range rows {
		width = max(width, len([]rune(row)))
	}
	g := NewGrid(width, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		for x := range width {
			c := Cell{X: x, Y: y}
			if x >= len(runes) {
				g.SetWall(c, true)
				continue
			}
			switch r := runes[x]; {
			case r == TileWall:
				g.SetWall(c, true)
			case r == TileFloor:
			case r >= '0' && r <= '9':
				g.SetHeight(c, int(r-'0'))
			default:
				return nil, fmt.Errorf("tile %q at %s: %w", r, c, ErrBadTile)
			}
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Contains reports whether c lies on the board.
func (g *Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

// IsWall reports whether c is a wall. Off-board cells count as walls.
func (g *Grid) IsWall(c Cell) bool {
	if !g.Contains(c) {
		return true
	}
	return g.walls[g.index(c)]
}

// SetWall marks or clears a wall.
func (g *Grid) SetWall(c Cell, wall bool) {
	if g.Contains(c) {
		g.walls[g.index(c)] = wall
	}
}

// HeightAt returns the floor height at c (0 off-board).
func (g *Grid) HeightAt(c Cell) int {
	if !g.Contains(c) {
		return 0
	}
	return g.heights[g.index(c)]
}

// SetHeight sets the floor height at c.
func (g *Grid) SetHeight(c Cell, h int) {
	if g.Contains(c) {
		g.heights[g.index(c)] = h
	}
}

// Cells returns every on-board cell in row-major order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, 0, g.width*g.height)
	for y := range g.height {
		for x := range g.width {
			out = append(out, Cell{X: x, Y: y})
		}
	}
	return out
}

// Step returns a passability function that allows moving between floor
// tiles whose heights differ by at most climb.
func (g *Grid) Step(climb int) func(from, to Cell) bool {
	return func(from, to Cell) bool {
		if g.IsWall(to) {
			return false
		}
		return abs(g.HeightAt(to)-g.HeightAt(from)) <= climb
	}
}

func (g *Grid) index(c Cell) int {
	return c.Y*g.width + c.X
}
