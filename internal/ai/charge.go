package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/selection"
	"github.com/udisondev/skirmish/internal/targeting"
)

// Oracle is the path oracle a ChargePolicy plans with.
type Oracle interface {
	targeting.PathOracle
	Reachable(u *battle.Unit, budget int) map[geo.Cell]int
}

// ChargePolicy walks toward the nearest hostile unit and strikes the
// weakest adjacent one. It plays through the same skills and targeters a
// human uses, feeding them scripted picks.
type ChargePolicy struct {
	battle    *battle.Battle
	oracle    Oracle
	skills    []*targeting.Skill
	thinkTime time.Duration
}

// NewChargePolicy creates a charge policy for units of b.
func NewChargePolicy(b *battle.Battle, oracle Oracle, thinkTime time.Duration) *ChargePolicy {
	return &ChargePolicy{
		battle:    b,
		oracle:    oracle,
		skills:    targeting.DefaultSkills(oracle, b, nil, nil),
		thinkTime: thinkTime,
	}
}

// PlayTurn implements battle.Policy.
func (p *ChargePolicy) PlayTurn(ctx context.Context, u *battle.Unit) error {
	if err := think(ctx, p.thinkTime); err != nil {
		return err
	}

	if p.weakestAdjacentFoe(u) == nil {
		if dest, ok := p.approach(u); ok {
			if _, err := p.use(ctx, u, targeting.SkillMove, dest); err != nil {
				return err
			}
		}
	}

	if foe := p.weakestAdjacentFoe(u); foe != nil {
		if _, err := p.use(ctx, u, targeting.SkillAttack, foe.Position()); err != nil {
			return err
		}
	}

	u.MarkActed()
	return nil
}

func (p *ChargePolicy) use(ctx context.Context, u *battle.Unit, name string, pick geo.Cell) (battle.Outcome, error) {
	skill := targeting.Find(p.skills, name)
	result := selection.NewChannel[battle.Outcome]()
	src := selection.NewSliceSource(selection.Selected(pick))

	if err := skill.Use(ctx, u, src, result); err != nil {
		return battle.Outcome{}, fmt.Errorf("%s using %s at %s: %w", u.Name(), name, pick, err)
	}
	out, _ := result.Result().Value()

	if battle.IsDebugEnabled() {
		slog.Debug("policy action",
			"unit", u.Name(),
			"skill", out.Skill,
			"cell", out.Cell,
			"damage", out.Damage)
	}
	return out, nil
}

func (p *ChargePolicy) foes(u *battle.Unit) []*battle.Unit {
	var foes []*battle.Unit
	for _, other := range p.battle.Units() {
		if !other.IsDead() && other.Alignment() != u.Alignment() {
			foes = append(foes, other)
		}
	}
	return foes
}

// weakestAdjacentFoe returns the adjacent hostile unit with the least
// health, first in N, E, S, W order on ties.
func (p *ChargePolicy) weakestAdjacentFoe(u *battle.Unit) *battle.Unit {
	var best *battle.Unit
	for _, c := range u.Position().Neighbors() {
		other, ok := p.battle.UnitAt(c)
		if !ok || other.Alignment() == u.Alignment() {
			continue
		}
		if best == nil || other.HP() < best.HP() {
			best = other
		}
	}
	return best
}

// approach picks the reachable cell closest to any foe. Ties go to the
// shorter walk, then to the top-left cell. It reports false when no cell
// gets closer than standing still.
func (p *ChargePolicy) approach(u *battle.Unit) (geo.Cell, bool) {
	foes := p.foes(u)
	if len(foes) == 0 || u.MoveRange() == 0 {
		return geo.Cell{}, false
	}

	distance := func(c geo.Cell) int {
		best := -1
		for _, f := range foes {
			if d := geo.Manhattan(c, f.Position()); best < 0 || d < best {
				best = d
			}
		}
		return best
	}

	origin := u.Position()
	bestCell, bestDist, bestSteps := origin, distance(origin), 0
	found := false
	for c, steps := range p.oracle.Reachable(u, u.MoveRange()+1) {
		if c == origin {
			continue
		}
		d := distance(c)
		better := d < bestDist ||
			(d == bestDist && found && steps < bestSteps) ||
			(d == bestDist && found && steps == bestSteps && before(c, bestCell))
		if better {
			bestCell, bestDist, bestSteps, found = c, d, steps, true
		}
	}
	return bestCell, found
}

func before(a, b geo.Cell) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
