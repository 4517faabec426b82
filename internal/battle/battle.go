// Package battle implements the logic core of a turn-based tactical battle:
// battle-scoped units, faction views, win/loss evaluation and the turn
// scheduler that alternates human and automated activations.
//
// Flow for battles works like this:
//   - a Battle is created and factions are declared
//   - units are added from roster members at their starting cells
//   - an Engine takes the battle and runs it until one side remains
//
// A Battle is the sole mutator of its units. It is not safe for concurrent
// use; presentation code runs interleaved with the engine, never alongside.
package battle

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/roster"
)

var (
	// ErrUnknownFaction is returned when a unit's alignment has no declared faction.
	ErrUnknownFaction = errors.New("faction not declared")
	// ErrCellOccupied is returned when placing a unit onto an occupied cell.
	ErrCellOccupied = errors.New("cell occupied")
	// ErrNoHealth is returned when a member's derived MHP is not positive.
	ErrNoHealth = errors.New("unit has no health")
	// ErrDuplicateFaction is returned when an alignment is declared twice.
	ErrDuplicateFaction = errors.New("faction already declared")
)

// Status is the match state.
type Status uint8

const (
	StatusRunning  Status = iota // Units are still taking turns
	StatusFinished               // A winner (or nobody) has been decided
)

// String returns human-readable status name
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "RUNNING"
	case StatusFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Battle is a battle in progress: the full unit list, the declared
// factions, the turn counter and the match state.
type Battle struct {
	units    []*Unit
	factions []*Faction
	turn     int
	status   Status
	winner   Alignment
	active   *Unit
}

// New creates an empty running battle.
func New() *Battle {
	return &Battle{}
}

// === FACTIONS ===

// AddFaction declares a side. Declaration order breaks activation ties.
func (b *Battle) AddFaction(align Alignment, opts ...FactionOption) (*Faction, error) {
	if b.Faction(align) != nil {
		return nil, fmt.Errorf("declaring %s: %w", align, ErrDuplicateFaction)
	}
	f := &Faction{
		align:  align,
		battle: b,
		index:  len(b.factions),
		win:    NeverWins,
		loss:   AllDead,
	}
	for _, opt := range opts {
		opt(f)
	}
	b.factions = append(b.factions, f)
	return f, nil
}

// Faction returns the faction for align, or nil if undeclared.
func (b *Battle) Faction(align Alignment) *Faction {
	for _, f := range b.factions {
		if f.align == align {
			return f
		}
	}
	return nil
}

// Factions returns the declared factions in declaration order.
func (b *Battle) Factions() []*Faction {
	return slices.Clone(b.factions)
}

// === UNITS ===

// AddUnit wraps a roster member in a new unit placed at pos. The member
// must derive a positive MHP, so no unit enters the battle dead.
func (b *Battle) AddUnit(member *roster.Member, align Alignment, pos geo.Cell) (*Unit, error) {
	if b.Faction(align) == nil {
		return nil, fmt.Errorf("adding %s: %w: %s", member.Name, ErrUnknownFaction, align)
	}
	if other, ok := b.occupant(pos); ok {
		return nil, fmt.Errorf("adding %s at %s (held by %s): %w", member.Name, pos, other.Name(), ErrCellOccupied)
	}
	u := newUnit(len(b.units), member, align, pos)
	if u.MaxHP() <= 0 {
		return nil, fmt.Errorf("adding %s (MHP %g): %w", member.Name, u.MaxHP(), ErrNoHealth)
	}
	b.units = append(b.units, u)
	return u, nil
}

// occupant returns the unit blocking placement on c. Before the first turn
// every placed unit counts; once the battle runs only the living do.
func (b *Battle) occupant(c geo.Cell) (*Unit, bool) {
	if b.turn > 0 {
		return b.UnitAt(c)
	}
	for _, u := range b.units {
		if u.pos == c {
			return u, true
		}
	}
	return nil, false
}

// AddUnitFromRoster resolves name through provider and adds the live
// member, so a serialized reference to Malu fights as the party's Malu.
func (b *Battle) AddUnitFromRoster(
	ctx context.Context,
	provider roster.Provider,
	name string,
	align Alignment,
	pos geo.Cell,
) (*Unit, error) {
	member, err := provider.LookUp(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("adding unit from roster: %w", err)
	}
	return b.AddUnit(member, align, pos)
}

// RefreshMember recomputes the derived stats of every unit wrapping m,
// after its base stats changed, and returns how many units it touched.
func (b *Battle) RefreshMember(m *roster.Member) int {
	n := 0
	for _, u := range b.units {
		if u.member == m {
			u.RecomputeStats()
			n++
		}
	}
	return n
}

// Units returns every unit, dead ones included, in insertion order.
func (b *Battle) Units() []*Unit {
	return slices.Clone(b.units)
}

// UnitsByAlignment yields every unit of align in insertion order.
func (b *Battle) UnitsByAlignment(align Alignment) iter.Seq[*Unit] {
	return func(yield func(*Unit) bool) {
		for _, u := range b.units {
			if u.align != align {
				continue
			}
			if !yield(u) {
				return
			}
		}
	}
}

// UnitAt returns the living unit standing on c. Dead units leave the board.
func (b *Battle) UnitAt(c geo.Cell) (*Unit, bool) {
	for _, u := range b.units {
		if !u.IsDead() && u.pos == c {
			return u, true
		}
	}
	return nil, false
}

// ActiveUnit returns the unit currently taking its activation, or nil.
func (b *Battle) ActiveUnit() *Unit { return b.active }

// === STATE MACHINE ===

// Turn returns the current turn cycle, starting at 1 once the engine runs.
func (b *Battle) Turn() int { return b.turn }

// Status returns the match state.
func (b *Battle) Status() Status { return b.status }

// Running reports whether the match is still undecided.
func (b *Battle) Running() bool { return b.status == StatusRunning }

// Winner returns the winning alignment once finished. AlignmentNone means
// nobody won or the battle is still running.
func (b *Battle) Winner() Alignment { return b.winner }

// Finish ends the battle. Finishing twice keeps the first result.
func (b *Battle) Finish(winner Alignment) {
	if b.status == StatusFinished {
		return
	}
	b.status = StatusFinished
	b.winner = winner
}

// CheckGameOver evaluates every faction. A faction whose win rule holds
// wins outright. Otherwise factions whose loss rule holds are out; one
// faction left wins, none left is a draw (AlignmentNone).
func (b *Battle) CheckGameOver() (Alignment, bool) {
	for _, f := range b.factions {
		if f.HasWon() {
			return f.align, true
		}
	}

	var remaining []*Faction
	for _, f := range b.factions {
		if !f.HasLost() {
			remaining = append(remaining, f)
		}
	}

	switch len(remaining) {
	case 0:
		return AlignmentNone, true
	case 1:
		return remaining[0].align, true
	default:
		return AlignmentNone, false
	}
}

// ResetForNewTurn resets every faction and advances the turn counter.
func (b *Battle) ResetForNewTurn() {
	for _, f := range b.factions {
		f.ResetForNewTurn()
	}
	b.turn++
}

// HasUnitsLeftToAct reports whether any faction still has units to act.
func (b *Battle) HasUnitsLeftToAct() bool {
	for _, f := range b.factions {
		if f.HasUnitsLeftToAct() {
			return true
		}
	}
	return false
}
