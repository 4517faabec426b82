package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/skirmish/internal/roster"
	"github.com/udisondev/skirmish/internal/stat"
)

// RosterRepository stores roster members in PostgreSQL and serves as a
// roster.Provider. Members are cached after the first lookup, so every
// battle built from the same repository shares one live member per name.
type RosterRepository struct {
	db *pgxpool.Pool

	mu     sync.Mutex
	loaded map[string]*roster.Member
}

// NewRosterRepository creates a new RosterRepository.
func NewRosterRepository(db *pgxpool.Pool) *RosterRepository {
	return &RosterRepository{
		db:     db,
		loaded: make(map[string]*roster.Member, 16),
	}
}

// LookUp implements roster.Provider.
func (r *RosterRepository) LookUp(ctx context.Context, name string) (*roster.Member, error) {
	key := strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.loaded[key]; ok {
		return m, nil
	}

	var (
		display string
		raw     []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT display, base_stats FROM roster_members WHERE name = $1`, key,
	).Scan(&display, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", roster.ErrUnknownMember, name)
		}
		return nil, fmt.Errorf("querying roster member %q: %w", name, err)
	}

	m, err := decodeMember(display, raw)
	if err != nil {
		return nil, err
	}
	r.loaded[key] = m
	return m, nil
}

// Save inserts or updates a member's base stats. A cached member with the
// same name takes the saved stats. Units already fighting keep their derived
// stats until battle.Battle.RefreshMember recomputes them.
func (r *RosterRepository) Save(ctx context.Context, m *roster.Member) error {
	if err := upsertMember(ctx, r.db, m); err != nil {
		return err
	}

	key := strings.ToLower(m.Name)
	r.mu.Lock()
	if cached, ok := r.loaded[key]; ok && cached != m && m.Base != nil {
		cached.Base = m.Base.Clone()
	}
	r.mu.Unlock()
	return nil
}

// SaveAll saves every member in one transaction. Cached members are not
// refreshed; use Save for members already in play.
func (r *RosterRepository) SaveAll(ctx context.Context, members []*roster.Member) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	for _, m := range members {
		if err := upsertMember(ctx, tx, m); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing roster: %w", err)
	}
	return nil
}

// List returns every stored member ordered by name. Listed members are
// fresh copies, not the cached live ones.
func (r *RosterRepository) List(ctx context.Context) ([]*roster.Member, error) {
	rows, err := r.db.Query(ctx, `SELECT display, base_stats FROM roster_members ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying roster: %w", err)
	}
	defer rows.Close()

	members := make([]*roster.Member, 0, 16)
	for rows.Next() {
		var (
			display string
			raw     []byte
		)
		if err := rows.Scan(&display, &raw); err != nil {
			return nil, fmt.Errorf("scanning roster row: %w", err)
		}
		m, err := decodeMember(display, raw)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roster rows: %w", err)
	}
	return members, nil
}

// Delete removes a member. Deleting an absent member is not an error.
func (r *RosterRepository) Delete(ctx context.Context, name string) error {
	key := strings.ToLower(name)
	if _, err := r.db.Exec(ctx, `DELETE FROM roster_members WHERE name = $1`, key); err != nil {
		return fmt.Errorf("deleting roster member %q: %w", name, err)
	}

	r.mu.Lock()
	delete(r.loaded, key)
	r.mu.Unlock()
	return nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func upsertMember(ctx context.Context, db execer, m *roster.Member) error {
	base := m.Base
	if base == nil {
		base = stat.New()
	}
	raw, err := json.Marshal(base)
	if err != nil {
		return fmt.Errorf("encoding stats of %q: %w", m.Name, err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO roster_members (name, display, base_stats)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (name) DO UPDATE
		 SET display = EXCLUDED.display, base_stats = EXCLUDED.base_stats, updated_at = now()`,
		strings.ToLower(m.Name), m.Name, string(raw),
	)
	if err != nil {
		return fmt.Errorf("saving roster member %q: %w", m.Name, err)
	}
	return nil
}

func decodeMember(display string, raw []byte) (*roster.Member, error) {
	base := stat.New()
	if err := json.Unmarshal(raw, base); err != nil {
		return nil, fmt.Errorf("decoding stats of %q: %w", display, err)
	}
	return roster.NewMember(display, base), nil
}
