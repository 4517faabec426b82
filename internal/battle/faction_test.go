package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countUnits(f *Faction) int {
	n := 0
	for range f.Units() {
		n++
	}
	return n
}

func TestFactionUnitsIsAView(t *testing.T) {
	b := newTestBattle(t)
	heroes := b.Faction(AlignmentHero)
	addUnit(t, b, "Malu", AlignmentHero, 0, 0)
	addUnit(t, b, "Orc", AlignmentEnemy, 5, 5)

	assert.Equal(t, 1, countUnits(heroes))

	addUnit(t, b, "Alex", AlignmentHero, 1, 0)
	assert.Equal(t, 2, countUnits(heroes), "faction sees units added later")
}

func TestFactionHasLost(t *testing.T) {
	b := newTestBattle(t)
	heroes := b.Faction(AlignmentHero)
	malu := addUnit(t, b, "Malu", AlignmentHero, 0, 0)
	alex := addUnit(t, b, "Alex", AlignmentHero, 1, 0)

	assert.False(t, heroes.HasLost(), "living units keep the faction in")

	malu.TakeDamage(100)
	assert.False(t, heroes.HasLost())

	alex.TakeDamage(100)
	assert.True(t, heroes.HasLost())
	assert.False(t, heroes.HasWon(), "no implicit win")
}

func TestFactionEmptyHasLost(t *testing.T) {
	b := newTestBattle(t)
	assert.True(t, b.Faction(AlignmentEnemy).HasLost())
}

func TestFactionHasUnitsLeftToAct(t *testing.T) {
	b := newTestBattle(t)
	heroes := b.Faction(AlignmentHero)
	malu := addUnit(t, b, "Malu", AlignmentHero, 0, 0)
	alex := addUnit(t, b, "Alex", AlignmentHero, 1, 0)

	require.True(t, heroes.HasUnitsLeftToAct())
	assert.Same(t, malu, heroes.NextMoveableUnit())

	malu.MarkActed()
	assert.Same(t, alex, heroes.NextMoveableUnit())

	alex.MarkActed()
	assert.False(t, heroes.HasUnitsLeftToAct(), "everyone acted and no reset yet")
	assert.Nil(t, heroes.NextMoveableUnit())

	heroes.ResetForNewTurn()
	assert.True(t, heroes.HasUnitsLeftToAct())
}

func TestFactionDeadUnitsDoNotAct(t *testing.T) {
	b := newTestBattle(t)
	heroes := b.Faction(AlignmentHero)
	malu := addUnit(t, b, "Malu", AlignmentHero, 0, 0)

	malu.TakeDamage(100)
	assert.False(t, heroes.HasUnitsLeftToAct())
	assert.Equal(t, 0, heroes.Living())
}

func TestEliminateAllRule(t *testing.T) {
	b := New()
	heroes, err := b.AddFaction(AlignmentHero, WithWinRule(EliminateAll))
	require.NoError(t, err)
	_, err = b.AddFaction(AlignmentEnemy)
	require.NoError(t, err)
	addUnit(t, b, "Malu", AlignmentHero, 0, 0)
	orc := addUnit(t, b, "Orc", AlignmentEnemy, 3, 3)

	assert.False(t, heroes.HasWon())
	orc.TakeDamage(100)
	assert.True(t, heroes.HasWon())
}

func TestSurviveTurnsRule(t *testing.T) {
	b := New()
	heroes, err := b.AddFaction(AlignmentHero, WithWinRule(SurviveTurns(3)))
	require.NoError(t, err)

	b.ResetForNewTurn()
	b.ResetForNewTurn()
	assert.False(t, heroes.HasWon())
	b.ResetForNewTurn()
	assert.Equal(t, 3, b.Turn())
	assert.True(t, heroes.HasWon())
}

func TestMemberFallsRule(t *testing.T) {
	b := New()
	heroes, err := b.AddFaction(AlignmentHero, WithLossRule(MemberFalls("Princess")))
	require.NoError(t, err)
	addUnit(t, b, "Malu", AlignmentHero, 0, 0)
	princess := addUnit(t, b, "Princess", AlignmentHero, 1, 0)

	assert.False(t, heroes.HasLost())
	princess.TakeDamage(100)
	assert.True(t, heroes.HasLost(), "escort down loses even with others standing")
}
