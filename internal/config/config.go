package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Viewport   ViewportConfig   `toml:"viewport"`
	Gameplay   GameplayConfig   `toml:"gameplay"`
	Data       DataConfig       `toml:"data"`
	Database   DatabaseConfig   `toml:"database"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	MaxTicks uint64        `toml:"max_ticks"` // 0 = run until game over or signal
	Seed     int64         `toml:"seed"`      // 0 = time based
}

type ViewportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type GameplayConfig struct {
	Lives            int           `toml:"lives"`
	AsteroidInterval time.Duration `toml:"asteroid_interval"`
	RampInterval     time.Duration `toml:"ramp_interval"`
	HazardInterval   time.Duration `toml:"hazard_interval"`
	UfoInterval      time.Duration `toml:"ufo_interval"`
	RampStep         time.Duration `toml:"ramp_step"`
	RampFloor        time.Duration `toml:"ramp_floor"`
	Scripted         bool          `toml:"scripted"` // score and ramp formulas from Lua
}

type DataConfig struct {
	TuningPath string `toml:"tuning_path"`
	ScriptsDir string `toml:"scripts_dir"`
}

// DatabaseConfig points at the leaderboard store. An empty DSN keeps the
// leaderboard in memory for the process lifetime.
type DatabaseConfig struct {
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	LeaderboardSize int           `toml:"leaderboard_size"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return defaults()
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Simulation.TickRate <= 0 {
		errs = append(errs, errors.New("simulation.tick_rate must be positive"))
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, errors.New("viewport width and height must be positive"))
	}
	if c.Gameplay.Lives <= 0 {
		errs = append(errs, errors.New("gameplay.lives must be positive"))
	}
	if c.Gameplay.RampStep <= 0 {
		errs = append(errs, errors.New("gameplay.ramp_step must be positive"))
	}
	if c.Gameplay.RampFloor < c.Gameplay.RampStep {
		errs = append(errs, fmt.Errorf("gameplay.ramp_floor %s must not be below ramp_step %s",
			c.Gameplay.RampFloor, c.Gameplay.RampStep))
	}
	return errors.Join(errs...)
}

func defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate: 16 * time.Millisecond,
		},
		Viewport: ViewportConfig{
			Width:  3840,
			Height: 2160,
		},
		Gameplay: GameplayConfig{
			Lives:            3,
			AsteroidInterval: 3 * time.Second,
			RampInterval:     60 * time.Second,
			HazardInterval:   45 * time.Second,
			UfoInterval:      30 * time.Second,
			RampStep:         200 * time.Millisecond,
			RampFloor:        300 * time.Millisecond,
		},
		Data: DataConfig{
			TuningPath: "data/yaml/tuning.yaml",
			ScriptsDir: "scripts",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
			LeaderboardSize: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
