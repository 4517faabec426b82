package battle

import (
	"iter"
	"strings"
)

// Rule is a per-battle win or loss predicate for a faction.
type Rule func(f *Faction) bool

// Faction is a view of every unit of one alignment. It stores no units of
// its own, so it cannot drift from the battle's unit list.
type Faction struct {
	align  Alignment
	battle *Battle
	index  int
	human  bool
	win    Rule
	loss   Rule
}

// FactionOption configures a faction at declaration.
type FactionOption func(*Faction)

// WithHumanControl marks the faction as driven by a Commander instead of
// an automated policy.
func WithHumanControl() FactionOption {
	return func(f *Faction) { f.human = true }
}

// WithWinRule replaces the default win rule (NeverWins).
func WithWinRule(r Rule) FactionOption {
	return func(f *Faction) { f.win = r }
}

// WithLossRule replaces the default loss rule (AllDead).
func WithLossRule(r Rule) FactionOption {
	return func(f *Faction) { f.loss = r }
}

// Alignment returns the faction's side.
func (f *Faction) Alignment() Alignment { return f.align }

// Human reports whether a Commander drives this faction.
func (f *Faction) Human() bool { return f.human }

// Units yields every unit of this alignment, dead ones included, in
// insertion order.
func (f *Faction) Units() iter.Seq[*Unit] {
	return f.battle.UnitsByAlignment(f.align)
}

// HasWon checks the faction's win rule.
func (f *Faction) HasWon() bool { return f.win(f) }

// HasLost checks the faction's loss rule.
func (f *Faction) HasLost() bool { return f.loss(f) }

// HasUnitsLeftToAct reports whether any living unit has not yet acted this
// turn cycle.
func (f *Faction) HasUnitsLeftToAct() bool {
	return f.NextMoveableUnit() != nil
}

// NextMoveableUnit returns the first living unit that has not acted, or nil.
func (f *Faction) NextMoveableUnit() *Unit {
	for u := range f.Units() {
		if !u.IsDead() && !u.HasActed() {
			return u
		}
	}
	return nil
}

// Living returns the number of living units.
func (f *Faction) Living() int {
	n := 0
	for u := range f.Units() {
		if !u.IsDead() {
			n++
		}
	}
	return n
}

// ResetForNewTurn clears per-turn flags on every unit of the faction.
func (f *Faction) ResetForNewTurn() {
	for u := range f.Units() {
		u.ResetForNewTurn()
	}
}

// NeverWins is the default win rule: no implicit victory.
func NeverWins(*Faction) bool { return false }

// AllDead is the default loss rule: every unit is dead (or there are none).
func AllDead(f *Faction) bool { return f.Living() == 0 }

// EliminateAll wins once every other faction has lost.
func EliminateAll(f *Faction) bool {
	for _, other := range f.battle.Factions() {
		if other == f {
			continue
		}
		if !other.HasLost() {
			return false
		}
	}
	return true
}

// SurviveTurns wins once the battle reaches turn n.
func SurviveTurns(n int) Rule {
	return func(f *Faction) bool {
		return f.battle.Turn() >= n
	}
}

// MemberFalls loses when the named escort is dead or when everyone is.
// Names match case-insensitively, as roster lookups do.
func MemberFalls(name string) Rule {
	return func(f *Faction) bool {
		for u := range f.Units() {
			if strings.EqualFold(u.Name(), name) && u.IsDead() {
				return true
			}
		}
		return AllDead(f)
	}
}
