package gameplay

import (
	"errors"
	"math/rand"

	"github.com/kenney-asteroids/sim/internal/core/ecs"
	"github.com/kenney-asteroids/sim/internal/core/event"
	"github.com/kenney-asteroids/sim/internal/entity"
	"go.uber.org/zap"
)

// Timer tags.
const (
	TagNextAsteroid = "next-asteroid"
	TagAsteroidRamp = "next-asteroid-limit-change"
	TagHazard       = "next-hazard-situation"
	TagNextUfo      = "next-ufo"
)

// ErrMissingEntity is reported when a rule expects a singleton entity
// (the player ship, the spawn timer) that is not in the World.
var ErrMissingEntity = errors.New("expected entity missing from world")

// Deps holds shared collaborators injected into all gameplay rules.
type Deps struct {
	World       *ecs.World
	IDs         *ecs.IDPool
	Publisher   event.Publisher
	Spawner     entity.Spawner
	Context     *Context
	Viewport    Viewport
	Scorer      Scorer
	Pacer       Pacer
	Presenter   Presenter   // optional
	Leaderboard Leaderboard // optional
	Rand        *rand.Rand
	Log         *zap.Logger
}

// RegisterAll registers every gameplay rule on the bus.
func RegisterAll(bus *event.Bus, deps *Deps) {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	registerPhysicsRules(bus, deps)
	registerTimerRules(bus, deps)
	registerEntityRules(bus, deps)
}

// fail reports a programmer error from inside a rule action. The action
// returns right after; nothing is retried.
func (d *Deps) fail(rule string, err error) {
	d.Log.Error("rule failed", zap.String("rule", rule), zap.Error(err))
}

// spawn builds and stages one entity.
func (d *Deps) spawn(rule string, req entity.SpawnRequest) bool {
	e, err := d.Spawner.Spawn(req)
	if err != nil {
		d.fail(rule, err)
		return false
	}
	d.World.Add(e)
	return true
}
