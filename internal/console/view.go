// Package console is the terminal front end of a battle. A View renders the
// map with tcell, decodes keys into selection events and offers the human
// factions' skills through a key menu.
//
// Everything except Pump runs on the engine goroutine: the View is the
// selection.Source, the targeting.Highlighter and the battle.Commander of a
// single battle.
package console

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/selection"
	"github.com/udisondev/skirmish/internal/targeting"
)

// ErrQuit is returned from a pending pick when the player quits.
var ErrQuit = errors.New("player quit")

const eventBuffer = 32

// View draws a battle on a tcell screen and reads the player's input.
type View struct {
	screen tcell.Screen
	battle *battle.Battle
	grid   *geo.Grid
	skills []*targeting.Skill
	events chan tcell.Event

	cursor     geo.Cell
	highlights map[geo.Cell]bool
	prompt     string
	message    string
}

// NewView creates a view over an initialized screen. cues may be nil.
func NewView(screen tcell.Screen, b *battle.Battle, grid *geo.Grid, oracle targeting.PathOracle, cues targeting.CuePlayer) *View {
	v := &View{
		screen:     screen,
		battle:     b,
		grid:       grid,
		events:     make(chan tcell.Event, eventBuffer),
		highlights: make(map[geo.Cell]bool),
	}
	v.skills = targeting.DefaultSkills(oracle, b, v, cues)
	return v
}

// Pump forwards screen events to the view until ctx is done or the screen
// is finalized. It is the only View method meant for another goroutine.
func (v *View) Pump(ctx context.Context) error {
	quit := make(chan struct{})
	stop := context.AfterFunc(ctx, func() { close(quit) })
	defer stop()

	v.screen.ChannelEvents(v.events, quit)
	return ctx.Err()
}

// Cursor returns the cursor cell.
func (v *View) Cursor() geo.Cell { return v.cursor }

// Next implements selection.Source. Arrow keys and hjkl move the cursor,
// Enter or space select the cell under it, Esc or x cancel.
func (v *View) Next(ctx context.Context) (selection.Event, error) {
	for {
		v.draw()

		ev, err := v.poll(ctx)
		if err != nil {
			return selection.Event{}, err
		}

		in, dir := decode(ev)
		switch in {
		case inputMove:
			v.moveCursor(dir)
		case inputSelect:
			return selection.Selected(v.cursor), nil
		case inputCancel:
			return selection.Cancel(), nil
		case inputQuit:
			return selection.Event{}, ErrQuit
		}
	}
}

func (v *View) poll(ctx context.Context) (*tcell.EventKey, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev, ok := <-v.events:
			if !ok {
				return nil, selection.ErrSourceExhausted
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				return ev, nil
			case *tcell.EventResize:
				v.screen.Sync()
				v.draw()
			}
		}
	}
}

func (v *View) moveCursor(dir geo.Cell) {
	if next := v.cursor.Add(dir); v.grid.Contains(next) {
		v.cursor = next
	}
}

type input uint8

const (
	inputNone input = iota
	inputMove
	inputSelect
	inputCancel
	inputQuit
)

var (
	up    = geo.Cell{Y: -1}
	down  = geo.Cell{Y: 1}
	left  = geo.Cell{X: -1}
	right = geo.Cell{X: 1}
)

func decode(ev *tcell.EventKey) (input, geo.Cell) {
	switch ev.Key() {
	case tcell.KeyUp:
		return inputMove, up
	case tcell.KeyDown:
		return inputMove, down
	case tcell.KeyLeft:
		return inputMove, left
	case tcell.KeyRight:
		return inputMove, right
	case tcell.KeyEnter:
		return inputSelect, geo.Cell{}
	case tcell.KeyEsc:
		return inputCancel, geo.Cell{}
	case tcell.KeyCtrlC:
		return inputQuit, geo.Cell{}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			return inputMove, up
		case 'j':
			return inputMove, down
		case 'h':
			return inputMove, left
		case 'l':
			return inputMove, right
		case ' ':
			return inputSelect, geo.Cell{}
		case 'x':
			return inputCancel, geo.Cell{}
		case 'q':
			return inputQuit, geo.Cell{}
		}
	}
	return inputNone, geo.Cell{}
}
