package system

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kenney-asteroids/sim/internal/core/collision"
	"github.com/kenney-asteroids/sim/internal/core/ecs"
	"github.com/kenney-asteroids/sim/internal/core/event"
	coresys "github.com/kenney-asteroids/sim/internal/core/system"
	"github.com/kenney-asteroids/sim/internal/core/timer"
	"github.com/kenney-asteroids/sim/internal/data"
	"github.com/kenney-asteroids/sim/internal/entity"
	"github.com/kenney-asteroids/sim/internal/gameplay"
	"go.uber.org/zap"
)

// Cadences are the initial periods of the gameplay timers.
// A zero period leaves that timer out.
type Cadences struct {
	Asteroid time.Duration
	Ramp     time.Duration
	Hazard   time.Duration
	Ufo      time.Duration
}

// SessionOptions configures one play session. Zero values fall back to
// the stock game.
type SessionOptions struct {
	Viewport    gameplay.Viewport
	Lives       int
	Cadences    Cadences
	Tuning      *data.TuningTable
	Scorer      gameplay.Scorer
	Pacer       gameplay.Pacer
	Presenter   gameplay.Presenter
	Leaderboard gameplay.Leaderboard
	Seed        int64
	Log         *zap.Logger
}

// DefaultCadences returns the stock timer periods.
func DefaultCadences() Cadences {
	return Cadences{
		Asteroid: 3 * time.Second,
		Ramp:     60 * time.Second,
		Hazard:   45 * time.Second,
		Ufo:      30 * time.Second,
	}
}

// Session owns one game: the World and its side stores, the bus with all
// gameplay rules, and the scheduler that ticks them.
type Session struct {
	World   *ecs.World
	Bodies  *collision.Registry
	Bus     *event.Bus
	Runner  *coresys.Runner
	Context *gameplay.Context
	Factory *entity.Factory

	ids        *ecs.IDPool
	cadences   Cadences
	viewport   gameplay.Viewport
	ship       *entity.Ship
	collisions *CollisionSystem
	ticks      uint64
	log        *zap.Logger
}

func NewSession(opts SessionOptions) *Session {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		opts.Viewport = gameplay.Viewport{Width: 3840, Height: 2160}
	}
	if opts.Lives <= 0 {
		opts.Lives = 3
	}
	if opts.Cadences == (Cadences{}) {
		opts.Cadences = DefaultCadences()
	}
	if opts.Scorer == nil {
		opts.Scorer = gameplay.DefaultScores()
	}
	if opts.Pacer == nil {
		opts.Pacer = gameplay.StepPacer{Step: 200 * time.Millisecond, Floor: 300 * time.Millisecond}
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	ids := ecs.NewIDPool()
	bodies := collision.NewRegistry()
	world := ecs.NewWorld()
	world.Attach(bodies)
	world.Attach(ids)

	bus := event.NewBus(opts.Log.Named("rules"))
	factory := entity.NewFactory(ids, opts.Tuning, bus, rng)
	ctx := gameplay.NewContext(opts.Lives)

	gameplay.RegisterAll(bus, &gameplay.Deps{
		World:       world,
		IDs:         ids,
		Publisher:   bus,
		Spawner:     factory,
		Context:     ctx,
		Viewport:    opts.Viewport,
		Scorer:      opts.Scorer,
		Pacer:       opts.Pacer,
		Presenter:   opts.Presenter,
		Leaderboard: opts.Leaderboard,
		Rand:        rng,
		Log:         opts.Log.Named("gameplay"),
	})

	collisions := NewCollisionSystem(bodies, bus)
	runner := coresys.NewRunner()
	runner.Register(NewUpdateSystem(world, ctx))
	runner.Register(collisions)
	runner.Register(NewDispatchSystem(bus))
	runner.Register(NewWrapSystem(world, opts.Viewport))
	runner.Register(NewCommitSystem(world))

	return &Session{
		World:      world,
		Bodies:     bodies,
		Bus:        bus,
		Runner:     runner,
		Context:    ctx,
		Factory:    factory,
		ids:        ids,
		cadences:   opts.Cadences,
		viewport:   opts.Viewport,
		collisions: collisions,
		log:        opts.Log,
	}
}

// Start places the player ship at the centre and arms the gameplay timers.
// Everything becomes visible after the commit at the end of Start.
func (s *Session) Start() error {
	if s.ship != nil {
		return fmt.Errorf("session %s: already started", s.Context.SessionID)
	}
	s.ship = s.Factory.CreateShip(s.viewport.Center())
	s.World.Add(s.ship)

	for _, t := range []struct {
		tag    string
		period time.Duration
	}{
		{gameplay.TagNextAsteroid, s.cadences.Asteroid},
		{gameplay.TagAsteroidRamp, s.cadences.Ramp},
		{gameplay.TagHazard, s.cadences.Hazard},
		{gameplay.TagNextUfo, s.cadences.Ufo},
	} {
		if t.period <= 0 {
			continue
		}
		s.World.Add(timer.New(s.ids.Next(), t.period, t.tag, s.Bus))
	}
	s.World.Commit()

	s.log.Info("session started",
		zap.String("session", s.Context.SessionID.String()),
		zap.Int("lives", s.Context.Lives),
		zap.Int("entities", s.World.Len()),
	)
	return nil
}

// Tick runs every system once.
func (s *Session) Tick(dt time.Duration) {
	s.Runner.Tick(dt)
	s.ticks++
	if ce := s.log.Check(zap.DebugLevel, "tick"); ce != nil {
		ce.Write(
			zap.Uint64("tick", s.ticks),
			zap.Int("collisions", s.collisions.LastCount()),
			zap.Int("entities", s.World.Len()),
		)
	}
}

// Ticks returns the number of completed ticks.
func (s *Session) Ticks() uint64 { return s.ticks }

// Ship returns the player ship, or nil before Start.
func (s *Session) Ship() *entity.Ship { return s.ship }

// Over reports whether the game has ended.
func (s *Session) Over() bool { return s.Context.Over() }
