package gameplay

import (
	"fmt"
	"time"

	"github.com/kenney-asteroids/sim/internal/entity"
)

// Scorer maps a scoring kind ("asteroid.big", "ufo") to points.
type Scorer interface {
	ScoreFor(kind string) (int, error)
}

// ScoreTable is a static Scorer.
type ScoreTable map[string]int

// DefaultScores returns the stock point values.
func DefaultScores() ScoreTable {
	return ScoreTable{
		"asteroid.tiny":   10,
		"asteroid.small":  15,
		"asteroid.medium": 20,
		"asteroid.big":    25,
		"ufo":             100,
	}
}

func (t ScoreTable) ScoreFor(kind string) (int, error) {
	n, ok := t[kind]
	if !ok {
		return 0, fmt.Errorf("score %s: %w", kind, entity.ErrUnknownKind)
	}
	return n, nil
}

// Pacer computes the next asteroid spawn interval for the difficulty ramp.
// ok is false once the ramp has bottomed out; next is always positive when
// ok is true. err reports a broken formula, not the end of the ramp.
type Pacer interface {
	NextSpawnInterval(current time.Duration) (next time.Duration, ok bool, err error)
}

// StepPacer shortens the interval by Step while it is above Floor.
// It never yields a non-positive interval.
type StepPacer struct {
	Step  time.Duration
	Floor time.Duration
}

func (p StepPacer) NextSpawnInterval(current time.Duration) (time.Duration, bool, error) {
	next := current - p.Step
	if current <= p.Floor || next <= 0 || p.Step <= 0 {
		return current, false, nil
	}
	return next, true, nil
}
