package battle

import (
	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/roster"
	"github.com/udisondev/skirmish/internal/stat"
)

// Unit is a roster member's battle-scoped state. It is created when the
// battle starts and owned by the Battle; the roster member outlives it.
type Unit struct {
	id        int
	member    *roster.Member
	align     Alignment
	pos       geo.Cell
	modifiers []*stat.Set
	stats     *stat.Set
	hp        float64

	acted     bool
	steps     int
	turnDelay int
}

func newUnit(id int, member *roster.Member, align Alignment, pos geo.Cell) *Unit {
	u := &Unit{
		id:     id,
		member: member,
		align:  align,
		pos:    pos,
	}
	u.RecomputeStats()
	u.hp = u.MaxHP()
	return u
}

// ID returns the unit's insertion index within its battle.
func (u *Unit) ID() int { return u.id }

// Name returns the roster member's name.
func (u *Unit) Name() string { return u.member.Name }

// Member returns the wrapped roster member.
func (u *Unit) Member() *roster.Member { return u.member }

// Alignment returns the unit's side.
func (u *Unit) Alignment() Alignment { return u.align }

// Position returns the unit's board cell.
func (u *Unit) Position() geo.Cell { return u.pos }

// SetPosition moves the unit without any path checks.
func (u *Unit) SetPosition(c geo.Cell) { u.pos = c }

// Get returns a derived stat value.
func (u *Unit) Get(tag stat.Tag) float64 { return u.stats.Get(tag) }

// Stats returns the derived stat set. Callers must not mutate it; use
// AddModifier instead.
func (u *Unit) Stats() *stat.Set { return u.stats }

// AddModifier stacks a modifier set onto the unit's derived stats.
func (u *Unit) AddModifier(m *stat.Set) {
	u.modifiers = append(u.modifiers, m)
	u.stats.AddSet(m)
	u.clampHP()
}

// RemoveModifier unstacks a modifier previously added. Returns false if m
// is not active on the unit.
func (u *Unit) RemoveModifier(m *stat.Set) bool {
	for i, active := range u.modifiers {
		if active != m {
			continue
		}
		u.modifiers = append(u.modifiers[:i], u.modifiers[i+1:]...)
		u.stats.RemoveSet(m)
		u.clampHP()
		return true
	}
	return false
}

// Modifiers returns the number of active modifier sets.
func (u *Unit) Modifiers() int { return len(u.modifiers) }

// RecomputeStats replaces the derived stats wholesale from the roster base
// plus every active modifier.
func (u *Unit) RecomputeStats() {
	s := u.member.Base.Clone()
	for _, m := range u.modifiers {
		s.AddSet(m)
	}
	u.stats = s
	u.clampHP()
}

// MaxHP returns the derived maximum health.
func (u *Unit) MaxHP() float64 { return u.stats.Get(stat.TagMaxHP) }

// HP returns current health.
func (u *Unit) HP() float64 { return u.hp }

// IsDead reports whether the unit has no health left.
func (u *Unit) IsDead() bool { return u.hp <= 0 }

// TakeDamage lowers health, never below zero, and returns the amount lost.
func (u *Unit) TakeDamage(amount float64) float64 {
	if amount <= 0 || u.IsDead() {
		return 0
	}
	lost := min(amount, u.hp)
	u.hp -= lost
	return lost
}

// Heal raises health up to MaxHP and returns the amount restored.
func (u *Unit) Heal(amount float64) float64 {
	if amount <= 0 || u.IsDead() {
		return 0
	}
	gained := min(amount, u.MaxHP()-u.hp)
	u.hp += gained
	return gained
}

// HasActed reports whether the unit has acted this turn cycle.
func (u *Unit) HasActed() bool { return u.acted }

// MarkActed flags the unit as done for this turn cycle.
func (u *Unit) MarkActed() { u.acted = true }

// StepsMoved returns the steps walked this turn cycle.
func (u *Unit) StepsMoved() int { return u.steps }

// AddSteps records steps walked this turn cycle.
func (u *Unit) AddSteps(n int) { u.steps += n }

// MoveRange returns the steps still available this turn cycle.
func (u *Unit) MoveRange() int {
	return max(0, int(u.Get(stat.TagMove))-u.steps)
}

// TurnDelay returns the activation priority hint; lower acts first.
func (u *Unit) TurnDelay() int { return u.turnDelay }

// AddTurnDelay pushes the unit later in the activation order.
func (u *Unit) AddTurnDelay(n int) { u.turnDelay += n }

// ResetForNewTurn clears per-turn flags.
func (u *Unit) ResetForNewTurn() {
	u.acted = false
	u.steps = 0
}

func (u *Unit) clampHP() {
	u.hp = max(0, min(u.hp, u.MaxHP()))
}
