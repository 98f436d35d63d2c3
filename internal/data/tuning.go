package data

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AsteroidTuning holds the per-size constants for one asteroid kind.
type AsteroidTuning struct {
	Kind     string  `yaml:"kind"` // tiny, small, medium, big
	Radius   float64 `yaml:"radius"`
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
	MinSpin  float64 `yaml:"min_spin"` // degrees per second
	MaxSpin  float64 `yaml:"max_spin"`
}

type ShipTuning struct {
	Radius       float64       `yaml:"radius"`
	MaxSpeed     float64       `yaml:"max_speed"`
	Acceleration float64       `yaml:"acceleration"` // pixels per second squared
	MaxRotation  float64       `yaml:"max_rotation"` // degrees per second
	Reload       time.Duration `yaml:"reload"`
	MuzzleOffset float64       `yaml:"muzzle_offset"`
}

type ProjectileTuning struct {
	Radius   float64       `yaml:"radius"`
	Speed    float64       `yaml:"speed"`
	Lifetime time.Duration `yaml:"lifetime"`
}

type UfoTuning struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
}

type tuningFile struct {
	Ship       ShipTuning       `yaml:"ship"`
	Projectile ProjectileTuning `yaml:"projectile"`
	Ufo        UfoTuning        `yaml:"ufo"`
	Asteroids  []AsteroidTuning `yaml:"asteroids"`
}

// TuningTable provides entity constants to the entity factory.
type TuningTable struct {
	Ship       ShipTuning
	Projectile ProjectileTuning
	Ufo        UfoTuning
	asteroids  map[string]*AsteroidTuning
}

// Asteroid returns the tuning for a kind, or nil if the kind is not defined.
func (t *TuningTable) Asteroid(kind string) *AsteroidTuning {
	return t.asteroids[kind]
}

// Count returns the number of asteroid kinds loaded.
func (t *TuningTable) Count() int {
	return len(t.asteroids)
}

// LoadTuningTable loads tuning.yaml.
func LoadTuningTable(path string) (*TuningTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning: %w", err)
	}
	return ParseTuningTable(raw)
}

// ParseTuningTable decodes a tuning document. Sections left out of the
// document keep their DefaultTuning values.
func ParseTuningTable(raw []byte) (*TuningTable, error) {
	def := DefaultTuning()
	f := tuningFile{
		Ship:       def.Ship,
		Projectile: def.Projectile,
		Ufo:        def.Ufo,
	}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse tuning: %w", err)
	}
	t := &TuningTable{
		Ship:       f.Ship,
		Projectile: f.Projectile,
		Ufo:        f.Ufo,
		asteroids:  def.asteroids,
	}
	if len(f.Asteroids) > 0 {
		t.asteroids = make(map[string]*AsteroidTuning, len(f.Asteroids))
	}
	for i := range f.Asteroids {
		a := &f.Asteroids[i]
		if a.Kind == "" {
			return nil, fmt.Errorf("parse tuning: asteroid entry %d has no kind", i)
		}
		if a.MaxSpeed < a.MinSpeed {
			return nil, fmt.Errorf("parse tuning: asteroid %s: max_speed %.0f below min_speed %.0f", a.Kind, a.MaxSpeed, a.MinSpeed)
		}
		t.asteroids[a.Kind] = a
	}
	return t, nil
}

// DefaultTuning returns the built-in constants used when no tuning file is configured.
func DefaultTuning() *TuningTable {
	asteroids := []AsteroidTuning{
		{Kind: "tiny", Radius: 9, MinSpeed: 400, MaxSpeed: 500, MinSpin: 25, MaxSpin: 75},
		{Kind: "small", Radius: 15, MinSpeed: 200, MaxSpeed: 300, MinSpin: 25, MaxSpin: 75},
		{Kind: "medium", Radius: 23, MinSpeed: 100, MaxSpeed: 200, MinSpin: 15, MaxSpin: 45},
		{Kind: "big", Radius: 45, MinSpeed: 50, MaxSpeed: 100, MinSpin: 5, MaxSpin: 25},
	}
	t := &TuningTable{
		Ship: ShipTuning{
			Radius:       35,
			MaxSpeed:     600,
			Acceleration: 1200,
			MaxRotation:  290,
			Reload:       500 * time.Millisecond,
			MuzzleOffset: 40,
		},
		Projectile: ProjectileTuning{
			Radius:   4,
			Speed:    1200,
			Lifetime: 1500 * time.Millisecond,
		},
		Ufo: UfoTuning{
			Radius: 35,
			Speed:  150,
		},
		asteroids: make(map[string]*AsteroidTuning, len(asteroids)),
	}
	for i := range asteroids {
		t.asteroids[asteroids[i].Kind] = &asteroids[i]
	}
	return t
}
