package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kenney-asteroids/sim/internal/config"
	"github.com/kenney-asteroids/sim/internal/data"
	"github.com/kenney-asteroids/sim/internal/gameplay"
	"github.com/kenney-asteroids/sim/internal/persist"
	"github.com/kenney-asteroids/sim/internal/scripting"
	"github.com/kenney-asteroids/sim/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Simulation loop ───────────────────────────────────────────────

// consolePresenter prints the final outcome, stores it when a database is
// configured and ends the loop.
type consolePresenter struct {
	board    *gameplay.Board
	leaders  *persist.LeaderboardRepo // nil without a database
	sessions *persist.SessionRepo
	log      *zap.Logger
	done     chan struct{}
}

func (p *consolePresenter) GameOver(o gameplay.Outcome) {
	defer close(p.done)

	fmt.Println()
	printSection("Game over")
	printStat("score", o.Score)
	printStat("seconds played", int(o.Played.Seconds()))

	name := os.Getenv("USER")
	highScore := o.HighScore && p.board.Add(name, o.Score, o.Played)
	if highScore {
		printOK("new high score")
	}
	if p.sessions == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.sessions.Record(ctx, o); err != nil {
		p.log.Error("record session", zap.Error(err))
	}
	if highScore {
		entry := gameplay.LeaderboardEntry{Name: name, Score: o.Score, Played: o.Played, Date: time.Now()}
		if err := p.leaders.Insert(ctx, entry); err != nil {
			p.log.Error("save high score", zap.Error(err))
		}
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/asteroids.toml"
	if p := os.Getenv("ASTEROIDS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Leaderboard store
	presenter := &consolePresenter{log: log, done: make(chan struct{})}
	var leaders []gameplay.LeaderboardEntry
	if cfg.Database.DSN != "" {
		printSection("Database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		version, err := db.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK(fmt.Sprintf("PostgreSQL connected, schema version %d", version))

		presenter.leaders = persist.NewLeaderboardRepo(db)
		presenter.sessions = persist.NewSessionRepo(db)
		leaders, err = presenter.leaders.Top(ctx, cfg.Database.LeaderboardSize)
		if err != nil {
			return fmt.Errorf("load leaderboard: %w", err)
		}
		printStat("leaderboard entries", len(leaders))
		fmt.Println()
	}
	presenter.board = gameplay.NewBoard(cfg.Database.LeaderboardSize, leaders...)

	// 4. Load data
	printSection("Data")
	tuning, err := data.LoadTuningTable(cfg.Data.TuningPath)
	if err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	printStat("asteroid kinds", tuning.Count())

	opts := system.SessionOptions{
		Viewport: gameplay.Viewport{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height},
		Lives:    cfg.Gameplay.Lives,
		Cadences: system.Cadences{
			Asteroid: cfg.Gameplay.AsteroidInterval,
			Ramp:     cfg.Gameplay.RampInterval,
			Hazard:   cfg.Gameplay.HazardInterval,
			Ufo:      cfg.Gameplay.UfoInterval,
		},
		Tuning: tuning,
		Pacer:  gameplay.StepPacer{Step: cfg.Gameplay.RampStep, Floor: cfg.Gameplay.RampFloor},
		Seed:   cfg.Simulation.Seed,
		Log:    log,
	}

	// 5. Lua formulas
	if cfg.Gameplay.Scripted {
		lua, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer lua.Close()
		opts.Scorer = lua
		opts.Pacer = lua
		printOK("Lua scripts loaded")
	}
	fmt.Println()

	// 6. Session
	opts.Presenter = presenter
	opts.Leaderboard = presenter.board
	session := system.NewSession(opts)
	if err := session.Start(); err != nil {
		return err
	}

	// 7. Start loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			autopilot(session)
			session.Tick(cfg.Simulation.TickRate)
			if limit := cfg.Simulation.MaxTicks; limit > 0 && session.Ticks() >= limit {
				log.Info("tick limit reached",
					zap.Uint64("ticks", session.Ticks()),
					zap.Int("score", session.Context.Score),
				)
				return nil
			}
		case <-presenter.done:
			return nil
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// autopilot stands in for player input: spin and keep firing.
func autopilot(s *system.Session) {
	ship := s.Ship()
	if ship == nil || ship.Destroyed() {
		return
	}
	ship.Turn(1)
	ship.Fire()
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
