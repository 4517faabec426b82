package battle

import "strings"

// Alignment is the side a unit fights for.
type Alignment uint8

const (
	// AlignmentNone - no side; also the winner of a mutual wipe
	AlignmentNone Alignment = iota
	// AlignmentHero - the player's party
	AlignmentHero
	// AlignmentEnemy - hostile units
	AlignmentEnemy
	// AlignmentNeutral - third parties hostile to both
	AlignmentNeutral
)

// String returns human-readable alignment name
func (a Alignment) String() string {
	switch a {
	case AlignmentNone:
		return "NONE"
	case AlignmentHero:
		return "HERO"
	case AlignmentEnemy:
		return "ENEMY"
	case AlignmentNeutral:
		return "NEUTRAL"
	default:
		return "UNKNOWN"
	}
}

// ParseAlignment resolves an alignment name, ignoring case.
func ParseAlignment(s string) (Alignment, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HERO":
		return AlignmentHero, true
	case "ENEMY":
		return AlignmentEnemy, true
	case "NEUTRAL":
		return AlignmentNeutral, true
	case "NONE":
		return AlignmentNone, true
	default:
		return AlignmentNone, false
	}
}
