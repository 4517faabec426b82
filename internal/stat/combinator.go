package stat

import "fmt"

// Combinator defines how a modifier value merges into a stat value.
// Decombine(Combine(a, b), b) must equal a.
type Combinator interface {
	Identity() float64
	Combine(a, b float64) float64
	Decombine(a, b float64) float64
}

// Additive sums modifiers (+3 STR sword).
type Additive struct{}

func (Additive) Identity() float64              { return 0 }
func (Additive) Combine(a, b float64) float64   { return a + b }
func (Additive) Decombine(a, b float64) float64 { return a - b }

// Multiplicative scales by modifiers (x1.5 damage).
// Decombining by zero is outside the combinator's domain and panics.
type Multiplicative struct{}

func (Multiplicative) Identity() float64            { return 1 }
func (Multiplicative) Combine(a, b float64) float64 { return a * b }
func (Multiplicative) Decombine(a, b float64) float64 {
	if b == 0 {
		panic(fmt.Sprintf("stat: multiplicative decombine of %v by zero", a))
	}
	return a / b
}

var combinators = [tagCount]Combinator{
	TagMaxHP:    Additive{},
	TagMove:     Additive{},
	TagJump:     Additive{},
	TagStrength: Additive{},
	TagDefense:  Additive{},
	TagSpeed:    Additive{},
	TagDamage:   Multiplicative{},
}

// CombinatorFor returns the combinator used by tag.
func CombinatorFor(tag Tag) Combinator {
	mustValid(tag)
	return combinators[tag]
}

func mustValid(tag Tag) {
	if !tag.Valid() {
		panic(fmt.Sprintf("stat: unknown tag %d", tag))
	}
}
