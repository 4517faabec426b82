package ai

import (
	"errors"
	"fmt"
	"strings"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/config"
)

// Policy kinds accepted in config.
const (
	KindDelay  = "delay"
	KindCharge = "charge"
)

// ErrUnknownPolicy is returned for an unrecognized policy kind.
var ErrUnknownPolicy = errors.New("unknown AI policy")

// New builds the policy named in cfg for units of b.
func New(cfg config.AI, b *battle.Battle, oracle Oracle) (battle.Policy, error) {
	switch strings.ToLower(cfg.Policy) {
	case KindDelay, "":
		return NewDelayPolicy(cfg.ThinkTime, cfg.TurnDelay), nil
	case KindCharge:
		return NewChargePolicy(b, oracle, cfg.ThinkTime), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, cfg.Policy)
	}
}
