package targeting

import (
	"context"
	"fmt"
	"sync"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/selection"
)

// AdjacentUnitTargeter picks a living unit of another alignment standing
// orthogonally next to the actor. Other picks are ignored. With no such
// neighbour it loops until the source cancels.
type AdjacentUnitTargeter struct {
	battle      *battle.Battle
	highlighter Highlighter
	cues        CuePlayer
}

// NewAdjacentUnitTargeter creates an adjacent-unit targeter. highlighter
// and cues may be nil.
func NewAdjacentUnitTargeter(b *battle.Battle, highlighter Highlighter, cues CuePlayer) *AdjacentUnitTargeter {
	return &AdjacentUnitTargeter{
		battle:      b,
		highlighter: orNopHighlighter(highlighter),
		cues:        orNopCues(cues),
	}
}

// Foes returns the units actor could pick right now, in N, E, S, W order.
func (t *AdjacentUnitTargeter) Foes(actor *battle.Unit) []*battle.Unit {
	var foes []*battle.Unit
	for _, c := range actor.Position().Neighbors() {
		if u, ok := t.battle.UnitAt(c); ok && hostile(actor, u) {
			foes = append(foes, u)
		}
	}
	return foes
}

// Target implements Targeter.
func (t *AdjacentUnitTargeter) Target(ctx context.Context, req Request, result *selection.Channel[battle.Outcome]) error {
	actor := req.Actor
	origin := actor.Position()
	valid := func(c geo.Cell) bool {
		u, ok := t.battle.UnitAt(c)
		return ok && geo.Adjacent(origin, c) && hostile(actor, u)
	}
	unhighlight := sync.OnceFunc(t.highlighter.Highlight(origin, 1, valid))
	defer unhighlight()

	picked := selection.NewChannel[*battle.Unit]()
	err := selection.SelectAdjacentUnit(ctx, req.Source, origin, t.battle.UnitAt,
		func(u *battle.Unit) bool { return hostile(actor, u) }, true, picked)
	if err != nil {
		return fmt.Errorf("selecting adjacent unit: %w", err)
	}

	res := picked.Result()
	if res.Canceled() {
		t.cues.Play(CueCancel)
		result.Cancel()
		return nil
	}

	target, _ := res.Value()
	unhighlight()
	t.cues.Play(CueConfirm)
	return req.Effect.Execute(ctx, actor, Target{Cell: target.Position(), Unit: target}, result)
}

func hostile(actor, other *battle.Unit) bool {
	return other != actor && !other.IsDead() && other.Alignment() != actor.Alignment()
}
