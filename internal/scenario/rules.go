package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/udisondev/skirmish/internal/battle"
)

// ParseWinRule decodes a win rule:
//
//	""  / never       no implicit win
//	eliminate_all     every hostile unit is dead
//	survive:N         the battle reaches turn N
func ParseWinRule(s string) (battle.Rule, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(s), ":")
	switch strings.ToLower(name) {
	case "", "never":
		return battle.NeverWins, nil
	case "eliminate_all":
		return battle.EliminateAll, nil
	case "survive":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: win rule %q needs a positive turn count", ErrInvalid, s)
		}
		return battle.SurviveTurns(n), nil
	default:
		return nil, fmt.Errorf("%w: unknown win rule %q", ErrInvalid, s)
	}
}

// ParseLossRule decodes a loss rule:
//
//	""  / all_dead    every unit of the faction is dead
//	member_falls:NAME the named unit dies (escort)
func ParseLossRule(s string) (battle.Rule, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(s), ":")
	switch strings.ToLower(name) {
	case "", "all_dead":
		return battle.AllDead, nil
	case "member_falls":
		if strings.TrimSpace(arg) == "" {
			return nil, fmt.Errorf("%w: loss rule %q needs a member name", ErrInvalid, s)
		}
		return battle.MemberFalls(strings.TrimSpace(arg)), nil
	default:
		return nil, fmt.Errorf("%w: unknown loss rule %q", ErrInvalid, s)
	}
}
