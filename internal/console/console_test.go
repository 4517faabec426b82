package console

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/roster"
	"github.com/udisondev/skirmish/internal/selection"
	"github.com/udisondev/skirmish/internal/stat"
	"github.com/udisondev/skirmish/internal/targeting"
)

var testTiles = []string{
	"....",
	".#..",
	"....",
}

type recordingCues struct{ played []targeting.Cue }

func (r *recordingCues) Play(c targeting.Cue) { r.played = append(r.played, c) }

type fixture struct {
	screen tcell.SimulationScreen
	battle *battle.Battle
	view   *View
	cues   *recordingCues
	malu   *battle.Unit
	orc    *battle.Unit
}

// newFixture places Malu (hero, MOVE 2, STR 5) at (0,0) and Orc (enemy,
// HP 10, DEF 1) at orcAt, and starts pumping the simulated screen.
func newFixture(t *testing.T, orcAt geo.Cell) *fixture {
	t.Helper()

	grid, err := geo.ParseGrid(testTiles)
	require.NoError(t, err)

	b := battle.New()
	_, err = b.AddFaction(battle.AlignmentHero, battle.WithHumanControl())
	require.NoError(t, err)
	_, err = b.AddFaction(battle.AlignmentEnemy)
	require.NoError(t, err)

	malu, err := b.AddUnit(roster.NewMember("Malu", stat.Of(map[stat.Tag]float64{
		stat.TagMaxHP: 10, stat.TagMove: 2, stat.TagStrength: 5,
	})), battle.AlignmentHero, geo.Cell{})
	require.NoError(t, err)
	orc, err := b.AddUnit(roster.NewMember("Orc", stat.Of(map[stat.Tag]float64{
		stat.TagMaxHP: 10, stat.TagDefense: 1,
	})), battle.AlignmentEnemy, orcAt)
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 8)

	cues := &recordingCues{}
	view := NewView(screen, b, grid, battle.NewGridOracle(b, grid), cues)

	ctx, cancel := context.WithCancel(context.Background())
	go view.Pump(ctx)
	t.Cleanup(func() {
		cancel()
		screen.Fini()
	})

	return &fixture{screen: screen, battle: b, view: view, cues: cues, malu: malu, orc: orc}
}

func (f *fixture) keys(runes string) {
	for _, r := range runes {
		f.screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

func (f *fixture) key(k tcell.Key) {
	f.screen.InjectKey(k, 0, tcell.ModNone)
}

func (f *fixture) cell(c geo.Cell) tcell.SimCell {
	cells, w, _ := f.screen.GetContents()
	return cells[c.Y*w+c.X]
}

func (f *fixture) row(y int) string {
	cells, w, _ := f.screen.GetContents()
	var sb strings.Builder
	for x := range w {
		sb.WriteString(string(cells[y*w+x].Runes))
	}
	return strings.TrimSpace(sb.String())
}

func TestCommandMove(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 3, Y: 0})
	result := selection.NewChannel[battle.Outcome]()

	f.keys("mll")
	f.key(tcell.KeyEnter)
	require.NoError(t, f.view.Command(context.Background(), f.malu, result))

	out, ok := result.Result().Value()
	require.True(t, ok)
	assert.Equal(t, targeting.SkillMove, out.Skill)
	assert.True(t, out.Continues)
	assert.Equal(t, geo.Cell{X: 2, Y: 0}, f.malu.Position())
	assert.Equal(t, 2, f.malu.StepsMoved())
	assert.Equal(t, []targeting.Cue{targeting.CueConfirm}, f.cues.played)
	assert.False(t, f.view.Highlighted(geo.Cell{X: 1, Y: 0}), "highlight cleared after the pick")
}

func TestCommandInvalidPickBuzzes(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 3, Y: 0})
	result := selection.NewChannel[battle.Outcome]()

	// Own cell first, then two rows down.
	f.keys("m ")
	f.keys("jj ")
	require.NoError(t, f.view.Command(context.Background(), f.malu, result))

	assert.Equal(t, []targeting.Cue{targeting.CueError, targeting.CueConfirm}, f.cues.played)
	assert.Equal(t, geo.Cell{X: 0, Y: 2}, f.malu.Position())
}

func TestCommandCancel(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 3, Y: 0})
	result := selection.NewChannel[battle.Outcome]()

	f.keys("m")
	f.key(tcell.KeyEsc)
	require.NoError(t, f.view.Command(context.Background(), f.malu, result))

	assert.True(t, result.Result().Canceled())
	assert.Equal(t, geo.Cell{}, f.malu.Position())
	assert.Equal(t, []targeting.Cue{targeting.CueCancel}, f.cues.played)
}

func TestCommandAttack(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 1, Y: 0})
	result := selection.NewChannel[battle.Outcome]()

	// Unknown menu keys are ignored.
	f.keys("zal ")
	require.NoError(t, f.view.Command(context.Background(), f.malu, result))

	out, ok := result.Result().Value()
	require.True(t, ok)
	assert.Equal(t, targeting.SkillAttack, out.Skill)
	assert.Same(t, f.orc, out.Target)
	assert.Equal(t, 4.0, out.Damage)
	assert.Equal(t, 6.0, f.orc.HP())
}

func TestCommandQuit(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 3, Y: 0})

	f.keys("q")
	err := f.view.Command(context.Background(), f.malu, selection.NewChannel[battle.Outcome]())
	require.ErrorIs(t, err, ErrQuit)
}

func TestQuitDuringPick(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 3, Y: 0})
	result := selection.NewChannel[battle.Outcome]()

	f.keys("m")
	f.key(tcell.KeyCtrlC)
	err := f.view.Command(context.Background(), f.malu, result)
	require.ErrorIs(t, err, ErrQuit)
	assert.False(t, result.Finished())
}

func TestNextMovesCursorWithinGrid(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 3, Y: 0})

	f.key(tcell.KeyUp)
	f.key(tcell.KeyLeft)
	f.key(tcell.KeyRight)
	f.key(tcell.KeyDown)
	f.keys("x")

	ev, err := f.view.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, selection.EventCanceled, ev.Kind)
	assert.Equal(t, geo.Cell{X: 1, Y: 1}, f.view.Cursor(), "moves off the board are ignored")

	x, y, _ := f.screen.GetCursor()
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
}

func TestNextContextCanceled(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 3, Y: 0})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.view.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNextAfterScreenClosed(t *testing.T) {
	grid, err := geo.ParseGrid(testTiles)
	require.NoError(t, err)
	b := battle.New()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	view := NewView(screen, b, grid, battle.NewGridOracle(b, grid), nil)

	done := make(chan error, 1)
	go func() { done <- view.Pump(context.Background()) }()
	screen.Fini()

	_, err = view.Next(context.Background())
	require.ErrorIs(t, err, selection.ErrSourceExhausted)
	require.NoError(t, <-done)
}

func TestRender(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 3, Y: 0})
	f.view.Render()

	malu := f.cell(geo.Cell{X: 0, Y: 0})
	assert.Equal(t, []rune{'M'}, malu.Runes)
	fg, _, _ := malu.Style.Decompose()
	assert.Equal(t, tcell.ColorBlue, fg)

	orc := f.cell(geo.Cell{X: 3, Y: 0})
	assert.Equal(t, []rune{'O'}, orc.Runes)
	fg, _, _ = orc.Style.Decompose()
	assert.Equal(t, tcell.ColorRed, fg)

	assert.Equal(t, []rune{'#'}, f.cell(geo.Cell{X: 1, Y: 1}).Runes)
	assert.Equal(t, []rune{'.'}, f.cell(geo.Cell{X: 2, Y: 2}).Runes)

	f.orc.TakeDamage(100)
	f.view.Render()
	assert.Equal(t, []rune{'.'}, f.cell(geo.Cell{X: 3, Y: 0}).Runes, "the dead leave the map")
}

func TestHighlight(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 3, Y: 0})

	origin := geo.Cell{}
	unhighlight := f.view.Highlight(origin, 1, func(c geo.Cell) bool { return c != origin })

	assert.True(t, f.view.Highlighted(geo.Cell{X: 1, Y: 0}))
	assert.True(t, f.view.Highlighted(geo.Cell{X: 0, Y: 1}))
	assert.False(t, f.view.Highlighted(origin), "rejected by valid")
	assert.False(t, f.view.Highlighted(geo.Cell{X: 2, Y: 0}), "out of range")

	_, bg, _ := f.cell(geo.Cell{X: 1, Y: 0}).Style.Decompose()
	assert.Equal(t, highlightColor, bg)

	unhighlight()
	assert.False(t, f.view.Highlighted(geo.Cell{X: 1, Y: 0}))
	_, bg, _ = f.cell(geo.Cell{X: 1, Y: 0}).Style.Decompose()
	assert.NotEqual(t, highlightColor, bg)
}

func TestStatusLines(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 1, Y: 0})
	messageRow := len(testTiles) + 2

	f.view.TurnStarted(3)
	assert.Equal(t, "turn 3", f.row(messageRow))

	f.view.ActionResolved(f.malu, battle.Outcome{Skill: targeting.SkillAttack, Target: f.orc, Damage: 4})
	assert.Equal(t, "Malu struck Orc for 4", f.row(messageRow))

	f.view.Finished(battle.AlignmentHero)
	assert.Equal(t, "battle over: HERO wins", f.row(messageRow))
}

func TestEngineDrivenByKeys(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 3, Y: 0})
	f.orc.TakeDamage(6)

	idle := policyFunc(func(_ context.Context, u *battle.Unit) error {
		u.MarkActed()
		return nil
	})
	e := battle.NewEngine(f.battle,
		battle.WithCommander(f.view),
		battle.WithDefaultPolicy(idle),
		battle.WithActionHook(f.view.ActionResolved))

	// Walk up to the orc, then strike it.
	f.keys("mll ")
	f.keys("al ")
	winner, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, battle.AlignmentHero, winner)
	assert.True(t, f.orc.IsDead())
}

type policyFunc func(ctx context.Context, u *battle.Unit) error

func (f policyFunc) PlayTurn(ctx context.Context, u *battle.Unit) error { return f(ctx, u) }

func TestAwaitKey(t *testing.T) {
	f := newFixture(t, geo.Cell{X: 3, Y: 0})

	f.keys("z")
	require.NoError(t, f.view.AwaitKey(context.Background()))
}
