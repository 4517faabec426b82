package console

import (
	"context"
	"fmt"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/selection"
	"github.com/udisondev/skirmish/internal/targeting"
)

var menuKeys = map[rune]string{
	'm': targeting.SkillMove,
	'a': targeting.SkillAttack,
	'w': targeting.SkillWait,
}

// Command implements battle.Commander. It waits for a menu key, then runs
// the chosen skill with the view as its selection source.
func (v *View) Command(ctx context.Context, u *battle.Unit, result *selection.Channel[battle.Outcome]) error {
	v.cursor = u.Position()
	v.prompt = fmt.Sprintf("%s  HP %g/%g  move %d  [m]ove [a]ttack [w]ait",
		u.Name(), u.HP(), u.MaxHP(), u.MoveRange())
	defer func() { v.prompt = "" }()

	for {
		v.draw()

		ev, err := v.poll(ctx)
		if err != nil {
			return err
		}

		if in, dir := decode(ev); in == inputMove {
			v.moveCursor(dir)
			continue
		} else if in == inputQuit {
			return ErrQuit
		}

		name, ok := menuKeys[ev.Rune()]
		if !ok {
			continue
		}
		skill := targeting.Find(v.skills, name)
		if skill == nil {
			continue
		}
		v.cursor = u.Position()
		return skill.Use(ctx, u, v, result)
	}
}

// ActionResolved reports a resolved action on the status line.
func (v *View) ActionResolved(u *battle.Unit, o battle.Outcome) {
	switch o.Skill {
	case targeting.SkillMove:
		v.message = fmt.Sprintf("%s moved to %s", u.Name(), o.Cell)
	case targeting.SkillAttack:
		if o.Target != nil {
			v.message = fmt.Sprintf("%s struck %s for %g", u.Name(), o.Target.Name(), o.Damage)
		}
	case targeting.SkillWait:
		v.message = fmt.Sprintf("%s waits", u.Name())
	default:
		v.message = fmt.Sprintf("%s used %s", u.Name(), o.Skill)
	}
	v.draw()
}

// TurnStarted announces a new turn cycle.
func (v *View) TurnStarted(turn int) {
	v.message = fmt.Sprintf("turn %d", turn)
	v.draw()
}

// Finished shows the battle result.
func (v *View) Finished(winner battle.Alignment) {
	v.prompt = ""
	if winner == battle.AlignmentNone {
		v.message = "battle over: nobody stands"
	} else {
		v.message = fmt.Sprintf("battle over: %s wins", winner)
	}
	v.draw()
}

// AwaitKey blocks until any key is pressed.
func (v *View) AwaitKey(ctx context.Context) error {
	v.draw()
	_, err := v.poll(ctx)
	return err
}
