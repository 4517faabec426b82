package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/stat"
)

func TestNewUnit(t *testing.T) {
	b := newTestBattle(t)
	u := addUnit(t, b, "Malu", AlignmentHero, 2, 3)

	assert.Equal(t, 0, u.ID())
	assert.Equal(t, "Malu", u.Name())
	assert.Equal(t, AlignmentHero, u.Alignment())
	assert.Equal(t, geo.Cell{X: 2, Y: 3}, u.Position())
	assert.Equal(t, 10.0, u.HP())
	assert.Equal(t, 10.0, u.MaxHP())
	assert.False(t, u.IsDead())
	assert.False(t, u.HasActed())
	assert.Equal(t, 3, u.MoveRange())
}

func TestUnitDoesNotMutateRosterBase(t *testing.T) {
	b := newTestBattle(t)
	u := addUnit(t, b, "Malu", AlignmentHero, 0, 0)

	u.AddModifier(stat.Of(map[stat.Tag]float64{stat.TagStrength: 3}))
	assert.Equal(t, 8.0, u.Get(stat.TagStrength))
	assert.Equal(t, 5.0, u.Member().Base.Get(stat.TagStrength))
}

func TestUnitModifiers(t *testing.T) {
	b := newTestBattle(t)
	u := addUnit(t, b, "Malu", AlignmentHero, 0, 0)

	sword := stat.Of(map[stat.Tag]float64{stat.TagStrength: 3, stat.TagDamage: 1.5})
	boots := stat.Of(map[stat.Tag]float64{stat.TagMove: 1})

	u.AddModifier(sword)
	u.AddModifier(boots)
	assert.Equal(t, 2, u.Modifiers())
	assert.Equal(t, 8.0, u.Get(stat.TagStrength))
	assert.Equal(t, 1.5, u.Get(stat.TagDamage))
	assert.Equal(t, 4, u.MoveRange())

	require.True(t, u.RemoveModifier(sword))
	assert.Equal(t, 5.0, u.Get(stat.TagStrength))
	assert.Equal(t, 1.0, u.Get(stat.TagDamage))
	assert.False(t, u.RemoveModifier(sword), "already removed")

	u.RecomputeStats()
	assert.Equal(t, 4.0, u.Get(stat.TagMove))
}

func TestUnitMaxHPModifierClampsHealth(t *testing.T) {
	b := newTestBattle(t)
	u := addUnit(t, b, "Malu", AlignmentHero, 0, 0)

	curse := stat.Of(map[stat.Tag]float64{stat.TagMaxHP: -4})
	u.AddModifier(curse)
	assert.Equal(t, 6.0, u.HP())

	u.RemoveModifier(curse)
	assert.Equal(t, 6.0, u.HP(), "removing a curse does not heal")
	assert.Equal(t, 10.0, u.MaxHP())
}

func TestUnitDamageAndHeal(t *testing.T) {
	b := newTestBattle(t)
	u := addUnit(t, b, "Malu", AlignmentHero, 0, 0)

	assert.Equal(t, 4.0, u.TakeDamage(4))
	assert.Equal(t, 6.0, u.HP())

	assert.Equal(t, 3.0, u.Heal(3))
	assert.Equal(t, 1.0, u.Heal(5), "heal stops at max")
	assert.Equal(t, 10.0, u.HP())

	assert.Equal(t, 0.0, u.TakeDamage(-2))
	assert.Equal(t, 10.0, u.TakeDamage(99), "health never goes below zero")
	assert.Equal(t, 0.0, u.HP())
	assert.True(t, u.IsDead())
	assert.Equal(t, 0.0, u.Heal(5), "dead units cannot be healed")
}

func TestUnitTurnState(t *testing.T) {
	b := newTestBattle(t)
	u := addUnit(t, b, "Malu", AlignmentHero, 0, 0)

	u.AddSteps(2)
	assert.Equal(t, 1, u.MoveRange())
	u.AddSteps(5)
	assert.Equal(t, 0, u.MoveRange(), "range never negative")

	u.MarkActed()
	u.AddTurnDelay(100)
	assert.True(t, u.HasActed())

	u.ResetForNewTurn()
	assert.False(t, u.HasActed())
	assert.Equal(t, 0, u.StepsMoved())
	assert.Equal(t, 100, u.TurnDelay(), "turn delay persists across turns")
}

func TestAlignmentParse(t *testing.T) {
	a, ok := ParseAlignment(" hero ")
	require.True(t, ok)
	assert.Equal(t, AlignmentHero, a)

	_, ok = ParseAlignment("pirate")
	assert.False(t, ok)
	assert.Equal(t, "ENEMY", AlignmentEnemy.String())
	assert.Equal(t, "UNKNOWN", Alignment(42).String())
}
