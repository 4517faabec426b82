package battle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/skirmish/internal/geo"
	"github.com/udisondev/skirmish/internal/selection"
)

var (
	// ErrPolicyStalled is returned when an automated policy returns without
	// marking its unit as acted.
	ErrPolicyStalled = errors.New("policy returned without acting")
	// ErrNoCommander is returned when a human faction activates but no
	// Commander was configured.
	ErrNoCommander = errors.New("no commander for human faction")
	// ErrNoPolicy is returned when an automated faction activates but no
	// policy covers its alignment.
	ErrNoPolicy = errors.New("no policy for automated faction")
	// ErrNoActors is returned when a fresh turn cycle has nobody to activate
	// yet no faction has lost.
	ErrNoActors = errors.New("no unit can act")
)

// Outcome describes a resolved action.
type Outcome struct {
	Skill  string
	Cell   geo.Cell
	Path   []geo.Cell
	Target *Unit
	Damage float64

	// Continues leaves the activation open: the unit may act again before
	// its turn is spent (a move followed by an attack).
	Continues bool
}

// Commander surfaces a human unit's actions to the presentation layer.
// Command resolves result with the executed action's outcome, or cancels it
// if the player backed out. It may return before result is finished; the
// engine waits on result either way.
type Commander interface {
	Command(ctx context.Context, u *Unit, result *selection.Channel[Outcome]) error
}

// Policy plays a turn for an automated unit. PlayTurn must return and must
// mark u as acted before returning, or the engine stops with ErrPolicyStalled.
type Policy interface {
	PlayTurn(ctx context.Context, u *Unit) error
}

// Engine drives a battle's turn loop until the battle is finished.
type Engine struct {
	battle    *Battle
	commander Commander
	policies  map[Alignment]Policy
	fallback  Policy
	order     Order

	onTurnStart func(turn int)
	onTurnEnd   func(turn int)
	onAction    func(u *Unit, o Outcome)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithCommander sets the Commander used for human factions.
func WithCommander(c Commander) EngineOption {
	return func(e *Engine) { e.commander = c }
}

// WithPolicy sets the automated policy for one alignment.
func WithPolicy(align Alignment, p Policy) EngineOption {
	return func(e *Engine) { e.policies[align] = p }
}

// WithDefaultPolicy sets the policy for automated alignments without their own.
func WithDefaultPolicy(p Policy) EngineOption {
	return func(e *Engine) { e.fallback = p }
}

// WithOrder replaces the ByTurnDelay activation order.
func WithOrder(o Order) EngineOption {
	return func(e *Engine) { e.order = o }
}

// WithTurnHooks registers callbacks run when a turn cycle starts and ends.
func WithTurnHooks(onStart, onEnd func(turn int)) EngineOption {
	return func(e *Engine) {
		e.onTurnStart = onStart
		e.onTurnEnd = onEnd
	}
}

// WithActionHook registers a callback run after each resolved human action.
func WithActionHook(fn func(u *Unit, o Outcome)) EngineOption {
	return func(e *Engine) { e.onAction = fn }
}

// NewEngine creates an engine for b.
func NewEngine(b *Battle, opts ...EngineOption) *Engine {
	e := &Engine{
		battle:   b,
		policies: make(map[Alignment]Policy, 4),
		order:    ByTurnDelay{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run plays the battle to completion and returns the winner
// (AlignmentNone on a mutual wipe).
//
// Each iteration activates the next unit chosen by the Order. When no unit
// is left to act, every faction is reset and the turn counter advances.
// Game over is evaluated after every activation and every new turn.
func (e *Engine) Run(ctx context.Context) (Alignment, error) {
	b := e.battle
	if b.turn == 0 {
		b.turn = 1
	}

	slog.Info("battle started",
		"units", len(b.units),
		"factions", len(b.factions),
		"turn", b.turn)

	e.checkGameOver()
	if b.Running() {
		e.turnStarted()
	}

	freshTurn := true
	for b.Running() {
		if err := ctx.Err(); err != nil {
			return AlignmentNone, err
		}

		u := e.order.Next(b)
		if u == nil {
			if freshTurn {
				return AlignmentNone, fmt.Errorf("turn %d: %w", b.turn, ErrNoActors)
			}
			e.endTurn()
			freshTurn = true
			continue
		}
		freshTurn = false

		if err := e.activate(ctx, u); err != nil {
			return AlignmentNone, err
		}
		e.checkGameOver()
	}

	slog.Info("battle finished",
		"winner", b.winner,
		"turn", b.turn)

	return b.winner, nil
}

func (e *Engine) activate(ctx context.Context, u *Unit) error {
	b := e.battle
	b.active = u
	defer func() { b.active = nil }()

	if IsDebugEnabled() {
		slog.Debug("unit activated",
			"unit", u.Name(),
			"alignment", u.Alignment(),
			"turnDelay", u.TurnDelay(),
			"turn", b.turn)
	}

	f := b.Faction(u.align)
	if f != nil && f.Human() {
		return e.command(ctx, u)
	}
	return e.automate(ctx, u)
}

// command offers the unit's actions until one resolves. A canceled action
// leaves the unit eligible and offers again on the same channel, as does a
// resolved action that continues the activation.
func (e *Engine) command(ctx context.Context, u *Unit) error {
	if e.commander == nil {
		return fmt.Errorf("activating %s: %w", u.Name(), ErrNoCommander)
	}

	b := e.battle
	result := selection.NewChannel[Outcome]()
	for {
		if err := e.commander.Command(ctx, u, result); err != nil {
			return fmt.Errorf("commanding %s: %w", u.Name(), err)
		}
		res, err := result.Wait(ctx)
		if err != nil {
			return fmt.Errorf("awaiting action of %s: %w", u.Name(), err)
		}
		if res.Canceled() {
			if IsDebugEnabled() {
				slog.Debug("action canceled", "unit", u.Name())
			}
			result.Reset()
			continue
		}

		outcome, _ := res.Value()
		if !outcome.Continues {
			u.MarkActed()
		}
		slog.Info("action resolved",
			"unit", u.Name(),
			"skill", outcome.Skill,
			"cell", outcome.Cell,
			"damage", outcome.Damage)
		if e.onAction != nil {
			e.onAction(u, outcome)
		}
		if u.HasActed() {
			return nil
		}

		e.checkGameOver()
		if !b.Running() || u.IsDead() {
			return nil
		}
		result.Reset()
	}
}

func (e *Engine) automate(ctx context.Context, u *Unit) error {
	p, ok := e.policies[u.align]
	if !ok {
		p = e.fallback
	}
	if p == nil {
		return fmt.Errorf("activating %s (%s): %w", u.Name(), u.align, ErrNoPolicy)
	}

	if err := p.PlayTurn(ctx, u); err != nil {
		return fmt.Errorf("playing turn of %s: %w", u.Name(), err)
	}
	if !u.HasActed() {
		return fmt.Errorf("unit %s: %w", u.Name(), ErrPolicyStalled)
	}
	return nil
}

func (e *Engine) endTurn() {
	b := e.battle
	if e.onTurnEnd != nil {
		e.onTurnEnd(b.turn)
	}
	b.ResetForNewTurn()

	e.checkGameOver()
	if b.Running() {
		e.turnStarted()
	}
}

func (e *Engine) turnStarted() {
	if IsDebugEnabled() {
		slog.Debug("turn started", "turn", e.battle.turn)
	}
	if e.onTurnStart != nil {
		e.onTurnStart(e.battle.turn)
	}
}

func (e *Engine) checkGameOver() {
	if winner, over := e.battle.CheckGameOver(); over {
		e.battle.Finish(winner)
	}
}
