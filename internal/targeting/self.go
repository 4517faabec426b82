package targeting

import (
	"context"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/selection"
)

// SelfTargeter targets the actor's own cell without reading the source.
type SelfTargeter struct{}

// Target implements Targeter.
func (SelfTargeter) Target(ctx context.Context, req Request, result *selection.Channel[battle.Outcome]) error {
	return req.Effect.Execute(ctx, req.Actor, Target{Cell: req.Actor.Position(), Unit: req.Actor}, result)
}
