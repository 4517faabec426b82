package battle

import (
	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/stat"
)

// GridOracle answers reachability questions for units on a tile grid.
// A unit may climb as many height levels per step as its JUMP stat and may
// not step through cells held by other living units.
//
// Budgets follow geo.FindPath: the number of cells in the path, origin
// included, so a budget of range+1 allows range steps.
type GridOracle struct {
	battle *Battle
	grid   *geo.Grid
}

// NewGridOracle creates an oracle over grid for the units of b.
func NewGridOracle(b *Battle, grid *geo.Grid) *GridOracle {
	return &GridOracle{battle: b, grid: grid}
}

// Grid returns the underlying terrain.
func (o *GridOracle) Grid() *geo.Grid { return o.grid }

// ExistsPathWithinBudget reports whether u can reach dest in at most
// budget cells.
func (o *GridOracle) ExistsPathWithinBudget(u *Unit, dest geo.Cell, budget int) bool {
	return geo.FindPath(u.Position(), dest, budget, o.passable(u)) != nil
}

// ShortestPath returns u's shortest path to dest, origin first.
func (o *GridOracle) ShortestPath(u *Unit, dest geo.Cell) ([]geo.Cell, bool) {
	budget := o.grid.Width() * o.grid.Height()
	path := geo.FindPath(u.Position(), dest, budget, o.passable(u))
	return path, path != nil
}

// Reachable returns every cell u can reach within budget cells, mapped to
// its step distance.
func (o *GridOracle) Reachable(u *Unit, budget int) map[geo.Cell]int {
	return geo.Reachable(u.Position(), budget, o.passable(u))
}

func (o *GridOracle) passable(u *Unit) geo.Passable {
	step := o.grid.Step(int(u.Get(stat.TagJump)))
	return func(from, to geo.Cell) bool {
		if !step(from, to) {
			return false
		}
		if other, ok := o.battle.UnitAt(to); ok && other != u {
			return false
		}
		return true
	}
}
