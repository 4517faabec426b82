// Package stat implements the stat composition algebra: a fixed set of stat
// tags, per-tag combinators, and fully populated stat sets that stack and
// unstack modifier sets.
package stat

import "strings"

// Tag identifies a single stat.
type Tag uint8

const (
	TagMaxHP    Tag = iota // Maximum health
	TagMove                // Movement range in steps per turn
	TagJump                // Maximum height difference climbable in one step
	TagStrength            // Physical attack power
	TagDefense             // Flat damage reduction
	TagSpeed               // Initiative
	TagDamage              // Outgoing damage multiplier

	tagCount
)

// Count is the number of known stat tags.
const Count = int(tagCount)

var tagNames = [tagCount]string{
	TagMaxHP:    "MHP",
	TagMove:     "MOVE",
	TagJump:     "JUMP",
	TagStrength: "STR",
	TagDefense:  "DEF",
	TagSpeed:    "SPD",
	TagDamage:   "DMG",
}

// String returns the serialized tag name.
func (t Tag) String() string {
	if !t.Valid() {
		return "UNKNOWN"
	}
	return tagNames[t]
}

// Valid reports whether t is one of the known tags.
func (t Tag) Valid() bool {
	return t < tagCount
}

// Tags returns every known tag in declaration order.
func Tags() []Tag {
	tags := make([]Tag, 0, tagCount)
	for t := range tagCount {
		tags = append(tags, t)
	}
	return tags
}

// ParseTag resolves a tag name, ignoring case.
func ParseTag(name string) (Tag, bool) {
	for t, n := range tagNames {
		if strings.EqualFold(n, name) {
			return Tag(t), true
		}
	}
	return 0, false
}
