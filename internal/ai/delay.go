// Package ai provides automated play policies for computer-controlled
// factions. Every policy marks its unit as acted before returning nil.
package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/skirmish/internal/battle"
)

// DelayPolicy is the reference placeholder: the unit thinks for a moment,
// pushes itself later in the activation order and ends its turn.
type DelayPolicy struct {
	thinkTime time.Duration
	turnDelay int
}

// NewDelayPolicy creates a delay policy.
func NewDelayPolicy(thinkTime time.Duration, turnDelay int) *DelayPolicy {
	return &DelayPolicy{
		thinkTime: thinkTime,
		turnDelay: turnDelay,
	}
}

// PlayTurn implements battle.Policy.
func (p *DelayPolicy) PlayTurn(ctx context.Context, u *battle.Unit) error {
	if err := think(ctx, p.thinkTime); err != nil {
		return err
	}

	u.AddTurnDelay(p.turnDelay)
	u.MarkActed()

	if battle.IsDebugEnabled() {
		slog.Debug("unit idled",
			"unit", u.Name(),
			"turnDelay", u.TurnDelay())
	}
	return nil
}

// think pauses for d, or until ctx is done.
func think(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
