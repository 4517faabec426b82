package stat

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Encode converts the set into a tag name → value association list.
func (s *Set) Encode() map[string]float64 {
	out := make(map[string]float64, tagCount)
	for t := range tagCount {
		out[t.String()] = s.values[t]
	}
	return out
}

// ErrDuplicateTag is returned when two entries name the same tag.
var ErrDuplicateTag = errors.New("duplicate stat tag")

// Decode builds a set from a tag name → value association list.
// Every recognized entry is combined into an identity set; names that do
// not parse as a known tag are dropped so older payloads keep loading.
// Tag names are case-insensitive, so "STR" and "str" in one list collide
// and fail with ErrDuplicateTag.
func Decode(entries map[string]float64) (*Set, error) {
	s := New()
	seen := make(map[Tag]string, len(entries))
	for name, v := range entries {
		tag, ok := ParseTag(name)
		if !ok {
			continue
		}
		if prev, dup := seen[tag]; dup {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateTag, prev, name)
		}
		seen[tag] = name
		s.values[tag] = combinators[tag].Combine(s.values[tag], v)
	}
	return s, nil
}

// MarshalYAML implements yaml.Marshaler.
func (s *Set) MarshalYAML() (any, error) {
	return s.Encode(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	var entries map[string]float64
	if err := node.Decode(&entries); err != nil {
		return fmt.Errorf("decoding stat set: %w", err)
	}
	decoded, err := Decode(entries)
	if err != nil {
		return fmt.Errorf("decoding stat set: %w", err)
	}
	*s = *decoded
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Encode())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Set) UnmarshalJSON(data []byte) error {
	var entries map[string]float64
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("decoding stat set: %w", err)
	}
	decoded, err := Decode(entries)
	if err != nil {
		return fmt.Errorf("decoding stat set: %w", err)
	}
	*s = *decoded
	return nil
}
