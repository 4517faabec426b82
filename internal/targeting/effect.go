package targeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/selection"
	"github.com/udisondev/skirmish/internal/stat"
)

var (
	// ErrUnreachable is returned by MoveEffect when the oracle has no path.
	ErrUnreachable = errors.New("destination unreachable")
	// ErrNoTarget is returned by StrikeEffect without a target unit.
	ErrNoTarget = errors.New("no target unit")
)

// Skill names used by DefaultSkills and reported in outcomes.
const (
	SkillMove   = "move"
	SkillAttack = "attack"
	SkillWait   = "wait"
)

// MoveEffect walks the actor along the oracle's shortest path and spends
// the steps. The activation stays open so the unit can still attack.
type MoveEffect struct {
	Oracle PathOracle
}

// Execute implements Effect.
func (e MoveEffect) Execute(_ context.Context, actor *battle.Unit, target Target, result *selection.Channel[battle.Outcome]) error {
	path, ok := e.Oracle.ShortestPath(actor, target.Cell)
	if !ok {
		return fmt.Errorf("moving %s to %s: %w", actor.Name(), target.Cell, ErrUnreachable)
	}

	steps := len(path) - 1
	actor.SetPosition(target.Cell)
	actor.AddSteps(steps)

	if battle.IsDebugEnabled() {
		slog.Debug("unit moved",
			"unit", actor.Name(),
			"to", target.Cell,
			"steps", steps,
			"rangeLeft", actor.MoveRange())
	}

	result.Resolve(battle.Outcome{
		Skill:     SkillMove,
		Cell:      target.Cell,
		Path:      path,
		Continues: true,
	})
	return nil
}

// Damage returns what attacker deals to defender: STR scaled by DMG, less
// the defender's DEF, never negative.
func Damage(attacker, defender *battle.Unit) float64 {
	raw := attacker.Get(stat.TagStrength) * attacker.Get(stat.TagDamage)
	return max(0, raw-defender.Get(stat.TagDefense))
}

// StrikeEffect deals Damage to the target unit.
type StrikeEffect struct{}

// Execute implements Effect.
func (StrikeEffect) Execute(_ context.Context, actor *battle.Unit, target Target, result *selection.Channel[battle.Outcome]) error {
	if target.Unit == nil {
		return fmt.Errorf("%s striking %s: %w", actor.Name(), target.Cell, ErrNoTarget)
	}

	dealt := target.Unit.TakeDamage(Damage(actor, target.Unit))
	slog.Info("unit struck",
		"attacker", actor.Name(),
		"defender", target.Unit.Name(),
		"damage", dealt,
		"hpLeft", target.Unit.HP())

	result.Resolve(battle.Outcome{
		Skill:  SkillAttack,
		Cell:   target.Cell,
		Target: target.Unit,
		Damage: dealt,
	})
	return nil
}

// WaitEffect ends the activation without doing anything.
type WaitEffect struct{}

// Execute implements Effect.
func (WaitEffect) Execute(_ context.Context, actor *battle.Unit, _ Target, result *selection.Channel[battle.Outcome]) error {
	result.Resolve(battle.Outcome{Skill: SkillWait, Cell: actor.Position()})
	return nil
}
