package targeting

import (
	"context"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/selection"
)

// Skill pairs a targeter with the effect it delegates to.
type Skill struct {
	Name     string
	Targeter Targeter
	Effect   Effect
}

// Use runs the skill for actor, reading picks from src.
func (s *Skill) Use(ctx context.Context, actor *battle.Unit, src selection.Source, result *selection.Channel[battle.Outcome]) error {
	return s.Targeter.Target(ctx, Request{Actor: actor, Effect: s.Effect, Source: src}, result)
}

// DefaultSkills returns the move, attack and wait skills every unit has.
func DefaultSkills(oracle PathOracle, b *battle.Battle, highlighter Highlighter, cues CuePlayer) []*Skill {
	return []*Skill{
		{
			Name:     SkillMove,
			Targeter: NewWalkRouteTargeter(oracle, highlighter, cues),
			Effect:   MoveEffect{Oracle: oracle},
		},
		{
			Name:     SkillAttack,
			Targeter: NewAdjacentUnitTargeter(b, highlighter, cues),
			Effect:   StrikeEffect{},
		},
		{
			Name:     SkillWait,
			Targeter: SelfTargeter{},
			Effect:   WaitEffect{},
		},
	}
}

// Find returns the skill called name, or nil.
func Find(skills []*Skill, name string) *Skill {
	for _, s := range skills {
		if s.Name == name {
			return s
		}
	}
	return nil
}
