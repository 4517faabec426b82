package battle

// Order picks the next unit to activate within a turn cycle.
type Order interface {
	// Next returns a living unit that has not acted, or nil when every
	// faction is exhausted.
	Next(b *Battle) *Unit
}

// ByTurnDelay activates the unit with the lowest turn delay first. Ties go
// to the earlier-declared faction, then to the earlier-added unit.
type ByTurnDelay struct{}

// Next implements Order.
func (ByTurnDelay) Next(b *Battle) *Unit {
	var best *Unit
	for _, f := range b.factions {
		for u := range f.Units() {
			if u.IsDead() || u.HasActed() {
				continue
			}
			if best == nil || u.turnDelay < best.turnDelay {
				best = u
			}
		}
	}
	return best
}
