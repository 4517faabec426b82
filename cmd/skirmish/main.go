package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/skirmish/internal/ai"
	"github.com/udisondev/skirmish/internal/audio"
	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/config"
	"github.com/udisondev/skirmish/internal/console"
	"github.com/udisondev/skirmish/internal/db"
	"github.com/udisondev/skirmish/internal/roster"
	"github.com/udisondev/skirmish/internal/scenario"
	"github.com/udisondev/skirmish/internal/targeting"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		fmt.Fprintf(os.Stderr, "skirmish: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfg, err := config.LoadSkirmish(config.Path())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The terminal belongs to tcell, so logs go to a file
	logOut, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Enable battle debug logging if log level is debug
	battle.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("skirmish starting",
		"log_level", cfg.LogLevel,
		"scenario", cfg.Scenario,
		"ai_policy", cfg.AI.Policy)

	sc, err := scenario.Load(cfg.Scenario)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	var provider roster.Provider = sc.Party()
	if cfg.Database.Enabled {
		database, err := openRoster(ctx, cfg.Database, sc)
		if err != nil {
			return err
		}
		defer database.Close()
		provider = db.NewRosterRepository(database.Pool())
	}

	b, grid, err := sc.Build(ctx, provider)
	if err != nil {
		return fmt.Errorf("building battle: %w", err)
	}
	oracle := battle.NewGridOracle(b, grid)

	policy, err := ai.New(cfg.AI, b, oracle)
	if err != nil {
		return fmt.Errorf("creating AI policy: %w", err)
	}

	var cues targeting.CuePlayer
	if cfg.Audio.Enabled {
		sound := audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the battle runs without sound
			slog.Warn("audio initialization failed", "error", err)
		}
		defer sound.Cleanup()
		cues = sound
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	view := console.NewView(screen, b, grid, oracle, cues)
	engine := battle.NewEngine(b,
		battle.WithCommander(view),
		battle.WithDefaultPolicy(policy),
		battle.WithActionHook(view.ActionResolved),
		battle.WithTurnHooks(view.TurnStarted, nil),
	)

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer stop()

		winner, err := engine.Run(gctx)
		switch {
		case errors.Is(err, console.ErrQuit):
			slog.Info("player left the battle", "turn", b.Turn())
			return nil
		case errors.Is(err, context.Canceled):
			return nil
		case err != nil:
			return fmt.Errorf("running battle: %w", err)
		}

		slog.Info("battle over",
			"scenario", sc.Name,
			"winner", winner,
			"turn", b.Turn())

		view.Finished(winner)
		if err := view.AwaitKey(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("awaiting key: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("starting input pump")
		if err := view.Pump(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("input pump: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("skirmish: %w", err)
	}
	return nil
}

// openRoster migrates the roster store and adds the scenario's members it
// does not know yet. Stored members keep their stats.
func openRoster(ctx context.Context, cfg config.DatabaseConfig, sc *scenario.Scenario) (*db.DB, error) {
	if err := db.RunMigrations(ctx, cfg.DSN()); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	database, err := db.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected")

	repo := db.NewRosterRepository(database.Pool())
	var missing []*roster.Member
	for _, m := range sc.Roster {
		_, err := repo.LookUp(ctx, m.Name)
		switch {
		case errors.Is(err, roster.ErrUnknownMember):
			missing = append(missing, m)
		case err != nil:
			database.Close()
			return nil, fmt.Errorf("looking up %s: %w", m.Name, err)
		}
	}
	if err := repo.SaveAll(ctx, missing); err != nil {
		database.Close()
		return nil, fmt.Errorf("seeding roster: %w", err)
	}

	slog.Info("roster seeded", "added", len(missing), "scenario_members", len(sc.Roster))
	return database, nil
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
