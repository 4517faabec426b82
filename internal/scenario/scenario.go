// Package scenario loads battle definitions from YAML: the map, the roster
// the battle draws from, the factions with their rules, and the starting
// placements.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/roster"
	"github.com/udisondev/skirmish/internal/stat"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid scenario")

// Control values for FactionSpec.Control.
const (
	ControlHuman = "human"
	ControlAI    = "ai"
)

// Scenario is a parsed battle definition.
type Scenario struct {
	Name     string           `yaml:"name"`
	Tiles    []string         `yaml:"tiles"`
	Roster   []*roster.Member `yaml:"roster"`
	Factions []FactionSpec    `yaml:"factions"`
	Units    []UnitSpec       `yaml:"units"`
}

// FactionSpec declares one side.
type FactionSpec struct {
	Alignment string `yaml:"alignment"`
	Control   string `yaml:"control"` // human or ai (default)
	Win       string `yaml:"win"`     // see ParseWinRule
	Lose      string `yaml:"lose"`    // see ParseLossRule
}

// UnitSpec places a roster member on the map.
type UnitSpec struct {
	Member    string `yaml:"member"`
	Alignment string `yaml:"alignment"`
	At        [2]int `yaml:"at"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the definition without touching the map or a roster
// provider.
func (s *Scenario) Validate() error {
	if len(s.Tiles) == 0 {
		return fmt.Errorf("%w: no tiles", ErrInvalid)
	}
	if len(s.Factions) < 2 {
		return fmt.Errorf("%w: need at least two factions, got %d", ErrInvalid, len(s.Factions))
	}

	seen := make(map[battle.Alignment]bool, len(s.Factions))
	for i, f := range s.Factions {
		align, ok := battle.ParseAlignment(f.Alignment)
		if !ok || align == battle.AlignmentNone {
			return fmt.Errorf("%w: faction %d: alignment %q", ErrInvalid, i, f.Alignment)
		}
		if seen[align] {
			return fmt.Errorf("%w: faction %s declared twice", ErrInvalid, align)
		}
		seen[align] = true

		switch strings.ToLower(f.Control) {
		case "", ControlAI, ControlHuman:
		default:
			return fmt.Errorf("%w: faction %s: control %q", ErrInvalid, align, f.Control)
		}
		if _, err := ParseWinRule(f.Win); err != nil {
			return fmt.Errorf("faction %s: %w", align, err)
		}
		if _, err := ParseLossRule(f.Lose); err != nil {
			return fmt.Errorf("faction %s: %w", align, err)
		}
	}

	for i, m := range s.Roster {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%w: roster entry %d has no name", ErrInvalid, i)
		}
		if m.Base == nil || m.Base.Get(stat.TagMaxHP) <= 0 {
			return fmt.Errorf("%w: roster entry %s needs a positive MHP", ErrInvalid, m.Name)
		}
	}

	for i, u := range s.Units {
		align, ok := battle.ParseAlignment(u.Alignment)
		if !ok || !seen[align] {
			return fmt.Errorf("%w: unit %d (%s): undeclared alignment %q", ErrInvalid, i, u.Member, u.Alignment)
		}
		if strings.TrimSpace(u.Member) == "" {
			return fmt.Errorf("%w: unit %d has no member", ErrInvalid, i)
		}
	}
	return nil
}

// Party returns an in-memory provider over the scenario's roster.
func (s *Scenario) Party() *roster.Party {
	return roster.NewParty(s.Roster...)
}

// Build creates the battle and its map. Units resolve their members through
// provider, so a persistent roster can stand in for the scenario's own.
func (s *Scenario) Build(ctx context.Context, provider roster.Provider) (*battle.Battle, *geo.Grid, error) {
	grid, err := geo.ParseGrid(s.Tiles)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	b := battle.New()
	for _, f := range s.Factions {
		align, _ := battle.ParseAlignment(f.Alignment)
		win, err := ParseWinRule(f.Win)
		if err != nil {
			return nil, nil, err
		}
		loss, err := ParseLossRule(f.Lose)
		if err != nil {
			return nil, nil, err
		}

		opts := []battle.FactionOption{battle.WithWinRule(win), battle.WithLossRule(loss)}
		if strings.EqualFold(f.Control, ControlHuman) {
			opts = append(opts, battle.WithHumanControl())
		}
		if _, err := b.AddFaction(align, opts...); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}

	for _, u := range s.Units {
		align, _ := battle.ParseAlignment(u.Alignment)
		at := geo.Cell{X: u.At[0], Y: u.At[1]}
		if grid.IsWall(at) {
			return nil, nil, fmt.Errorf("%w: %s placed on wall or off the map at %s", ErrInvalid, u.Member, at)
		}
		if _, err := b.AddUnitFromRoster(ctx, provider, u.Member, align, at); err != nil {
			if errors.Is(err, battle.ErrCellOccupied) || errors.Is(err, roster.ErrUnknownMember) ||
				errors.Is(err, battle.ErrNoHealth) {
				return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
			}
			return nil, nil, err
		}
	}

	return b, grid, nil
}
