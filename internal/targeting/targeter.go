// Package targeting resolves a skill's target through interactive or
// scripted selection and hands the chosen target to the skill's effect.
//
// A targeter never mutates battle state itself. It reads events from a
// selection.Source until it has a valid target (or a cancel), then delegates
// to an Effect, which resolves the outcome channel.
package targeting

import (
	"context"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/selection"
)

// PathOracle answers budgeted reachability questions for a unit.
// Budgets count the cells of a path including the origin.
type PathOracle interface {
	ExistsPathWithinBudget(u *battle.Unit, dest geo.Cell, budget int) bool
	ShortestPath(u *battle.Unit, dest geo.Cell) ([]geo.Cell, bool)
}

// Highlighter renders the cells within rng of origin that satisfy valid.
// The returned function removes the highlight.
type Highlighter interface {
	Highlight(origin geo.Cell, rng int, valid func(geo.Cell) bool) (unhighlight func())
}

// Cue is an audible feedback signal.
type Cue uint8

const (
	CueError   Cue = iota // Invalid pick
	CueConfirm            // Target accepted
	CueCancel             // Selection abandoned
)

// String returns human-readable cue name
func (c Cue) String() string {
	switch c {
	case CueError:
		return "ERROR"
	case CueConfirm:
		return "CONFIRM"
	case CueCancel:
		return "CANCEL"
	default:
		return "UNKNOWN"
	}
}

// CuePlayer plays feedback cues. Play must not block.
type CuePlayer interface {
	Play(c Cue)
}

// Target is what a targeter settled on.
type Target struct {
	Cell geo.Cell
	Unit *battle.Unit // nil for cell-only targets
}

// Effect executes a skill against a chosen target and resolves result with
// the outcome.
type Effect interface {
	Execute(ctx context.Context, actor *battle.Unit, target Target, result *selection.Channel[battle.Outcome]) error
}

// Request carries what a targeter needs for one use of a skill.
type Request struct {
	Actor  *battle.Unit
	Effect Effect
	Source selection.Source
}

// Targeter drives a selection to a valid target, then delegates to
// req.Effect. On cancel it cancels result. If the source fails, the error is
// returned and result stays Pending.
type Targeter interface {
	Target(ctx context.Context, req Request, result *selection.Channel[battle.Outcome]) error
}

type nopHighlighter struct{}

func (nopHighlighter) Highlight(geo.Cell, int, func(geo.Cell) bool) func() { return func() {} }

type nopCues struct{}

func (nopCues) Play(Cue) {}

func orNopHighlighter(h Highlighter) Highlighter {
	if h == nil {
		return nopHighlighter{}
	}
	return h
}

func orNopCues(c CuePlayer) CuePlayer {
	if c == nil {
		return nopCues{}
	}
	return c
}
