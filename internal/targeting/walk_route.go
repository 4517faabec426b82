package targeting

import (
	"context"
	"sync"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/selection"
)

// WalkRouteTargeter picks a destination the actor can walk to with the
// movement it has left this turn.
//
// A cell is valid when it is not the actor's own cell and the oracle finds a
// path of at most range+1 cells (range steps plus the origin), where range
// is MOVE minus the steps already moved. Invalid picks play CueError and are
// retried. A unit with no valid cell loops until the source cancels; there
// is no timeout.
type WalkRouteTargeter struct {
	oracle      PathOracle
	highlighter Highlighter
	cues        CuePlayer
}

// NewWalkRouteTargeter creates a walk targeter. highlighter and cues may be nil.
func NewWalkRouteTargeter(oracle PathOracle, highlighter Highlighter, cues CuePlayer) *WalkRouteTargeter {
	return &WalkRouteTargeter{
		oracle:      oracle,
		highlighter: orNopHighlighter(highlighter),
		cues:        orNopCues(cues),
	}
}

// Range returns how many steps actor may still walk.
func (t *WalkRouteTargeter) Range(actor *battle.Unit) int {
	return actor.MoveRange()
}

// Valid reports whether actor may walk to c right now.
func (t *WalkRouteTargeter) Valid(actor *battle.Unit, c geo.Cell) bool {
	return c != actor.Position() &&
		t.oracle.ExistsPathWithinBudget(actor, c, t.Range(actor)+1)
}

// Target implements Targeter.
func (t *WalkRouteTargeter) Target(ctx context.Context, req Request, result *selection.Channel[battle.Outcome]) error {
	actor := req.Actor
	valid := func(c geo.Cell) bool { return t.Valid(actor, c) }
	unhighlight := sync.OnceFunc(t.highlighter.Highlight(actor.Position(), t.Range(actor), valid))
	defer unhighlight()

	loc := selection.NewChannel[geo.Cell]()
	for {
		if err := selection.Await(ctx, req.Source, loc); err != nil {
			return err
		}

		res := loc.Result()
		if res.Canceled() {
			t.cues.Play(CueCancel)
			result.Cancel()
			return nil
		}

		cell, _ := res.Value()
		if !valid(cell) {
			t.cues.Play(CueError)
			loc.Reset()
			continue
		}

		unhighlight()
		t.cues.Play(CueConfirm)
		return req.Effect.Execute(ctx, actor, Target{Cell: cell}, result)
	}
}
