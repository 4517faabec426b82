// Package roster holds the persistent party characters that battles wrap in
// battle-scoped units.
package roster

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/udisondev/skirmish/internal/stat"
)

// ErrUnknownMember is returned when a lookup names no roster member.
var ErrUnknownMember = errors.New("unknown roster member")

// Member is a persistent character. It outlives any battle it fights in.
type Member struct {
	Name string    `yaml:"name" json:"name"`
	Base *stat.Set `yaml:"stats" json:"stats"`
}

// NewMember creates a member with the given base stats. A nil base becomes
// an identity set.
func NewMember(name string, base *stat.Set) *Member {
	if base == nil {
		base = stat.New()
	}
	return &Member{Name: name, Base: base}
}

// Provider resolves a serialized unit reference to a live roster member.
type Provider interface {
	LookUp(ctx context.Context, name string) (*Member, error)
}

// Party is an in-memory roster. Names are matched case-insensitively.
// Thread-safe for concurrent access.
type Party struct {
	mu      sync.RWMutex
	members map[string]*Member
}

// NewParty creates a party containing members.
func NewParty(members ...*Member) *Party {
	p := &Party{members: make(map[string]*Member, len(members))}
	for _, m := range members {
		p.Add(m)
	}
	return p
}

// Add inserts or replaces a member.
func (p *Party) Add(m *Member) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m.Base == nil {
		m.Base = stat.New()
	}
	p.members[strings.ToLower(m.Name)] = m
}

// LookUp returns the member called name.
func (p *Party) LookUp(_ context.Context, name string) (*Member, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, ok := p.members[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("looking up %q: %w", name, ErrUnknownMember)
	}
	return m, nil
}

// Members returns every member sorted by name.
func (p *Party) Members() []*Member {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]*Member, 0, len(p.members))
	for _, m := range p.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of members.
func (p *Party) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.members)
}
