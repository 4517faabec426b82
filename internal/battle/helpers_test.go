package battle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/roster"
	"github.com/udisondev/skirmish/internal/selection"
	"github.com/udisondev/skirmish/internal/stat"
)

func testMember(name string, hp, move float64) *roster.Member {
	return roster.NewMember(name, stat.Of(map[stat.Tag]float64{
		stat.TagMaxHP:    hp,
		stat.TagMove:     move,
		stat.TagStrength: 5,
		stat.TagDefense:  1,
	}))
}

// newTestBattle declares HERO (human) and ENEMY (automated) factions.
func newTestBattle(t *testing.T, opts ...FactionOption) *Battle {
	t.Helper()
	b := New()
	_, err := b.AddFaction(AlignmentHero, append([]FactionOption{WithHumanControl()}, opts...)...)
	require.NoError(t, err)
	_, err = b.AddFaction(AlignmentEnemy)
	require.NoError(t, err)
	return b
}

func addUnit(t *testing.T, b *Battle, name string, align Alignment, x, y int) *Unit {
	t.Helper()
	u, err := b.AddUnit(testMember(name, 10, 3), align, geo.Cell{X: x, Y: y})
	require.NoError(t, err)
	return u
}

// policyFunc adapts a function to Policy.
type policyFunc func(ctx context.Context, u *Unit) error

func (f policyFunc) PlayTurn(ctx context.Context, u *Unit) error { return f(ctx, u) }

// waitPolicy just marks the unit as acted.
var waitPolicy = policyFunc(func(_ context.Context, u *Unit) error {
	u.MarkActed()
	return nil
})

// commanderFunc adapts a function to Commander.
type commanderFunc func(ctx context.Context, u *Unit, result *selection.Channel[Outcome]) error

func (f commanderFunc) Command(ctx context.Context, u *Unit, result *selection.Channel[Outcome]) error {
	return f(ctx, u, result)
}

func resolveWait(_ context.Context, _ *Unit, result *selection.Channel[Outcome]) error {
	result.Resolve(Outcome{Skill: "wait"})
	return nil
}
