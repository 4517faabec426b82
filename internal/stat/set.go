package stat

// Set holds one value per known tag. It represents either a base set
// (Alex, 10 STR) or a modifier set (+3 STR sword).
//
// A Set is always fully populated: every tag starts at its combinator's
// identity, so a modifier set that never mentions a tag leaves that tag
// untouched when added or removed. Use New; the zero value is not valid
// for multiplicative tags.
type Set struct {
	values [tagCount]float64
}

// New returns a set with every tag at its combinator's identity.
func New() *Set {
	s := &Set{}
	for t := range tagCount {
		s.values[t] = combinators[t].Identity()
	}
	return s
}

// Of builds a set from identity with the given tags overridden.
func Of(values map[Tag]float64) *Set {
	s := New()
	for t, v := range values {
		s.Set(t, v)
	}
	return s
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	c := *s
	return &c
}

// Get returns the value of tag.
func (s *Set) Get(tag Tag) float64 {
	mustValid(tag)
	return s.values[tag]
}

// Is reports whether tag is positive; used for flag-like stats.
func (s *Set) Is(tag Tag) bool {
	return s.Get(tag) > 0
}

// Set overwrites the value of tag.
func (s *Set) Set(tag Tag, value float64) {
	mustValid(tag)
	s.values[tag] = value
}

// Add adds delta to tag regardless of its combinator. Meant for simple counters.
func (s *Set) Add(tag Tag, delta float64) {
	mustValid(tag)
	s.values[tag] += delta
}

// Sub subtracts delta from tag regardless of its combinator.
func (s *Set) Sub(tag Tag, delta float64) {
	s.Add(tag, -delta)
}

// AddSet stacks a modifier set onto s using each tag's combinator.
func (s *Set) AddSet(other *Set) {
	for t := range tagCount {
		s.values[t] = combinators[t].Combine(s.values[t], other.values[t])
	}
}

// RemoveSet unstacks a modifier set previously added with AddSet.
// It visits exactly the tags AddSet visits, so add followed by remove
// restores every value.
func (s *Set) RemoveSet(other *Set) {
	for t := range tagCount {
		s.values[t] = combinators[t].Decombine(s.values[t], other.values[t])
	}
}

// Equal reports whether both sets hold identical values.
func (s *Set) Equal(other *Set) bool {
	return s.values == other.values
}
