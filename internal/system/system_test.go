package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kenney-asteroids/sim/internal/core/collision"
	"github.com/kenney-asteroids/sim/internal/core/ecs"
	"github.com/kenney-asteroids/sim/internal/core/event"
	coresys "github.com/kenney-asteroids/sim/internal/core/system"
	"github.com/kenney-asteroids/sim/internal/entity"
	"github.com/kenney-asteroids/sim/internal/gameplay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recorder struct {
	events []event.Event
}

func (r *recorder) Publish(ev event.Event) { r.events = append(r.events, ev) }

type clock struct{ total time.Duration }

func (c *clock) Advance(dt time.Duration) { c.total += dt }

func newTestFactory(pub event.Publisher) *entity.Factory {
	return entity.NewFactory(ecs.NewIDPool(), nil, pub, rand.New(rand.NewSource(1)))
}

func TestUpdateSystem_AdvancesUpdatablesAndClock(t *testing.T) {
	w := ecs.NewWorld()
	f := newTestFactory(&recorder{})
	u := f.CreateUfo(mgl64.Vec2{0, 100}, 0)
	w.Add(u)
	w.Commit()

	c := &clock{}
	s := NewUpdateSystem(w, c)
	s.Update(time.Second)

	assert.Equal(t, coresys.PriorityUpdate, s.Priority())
	assert.InDelta(t, 150, u.Position().X(), 1e-9)
	assert.Equal(t, time.Second, c.total)
}

func TestCollisionSystem_PublishesEachPair(t *testing.T) {
	pub := &recorder{}
	f := newTestFactory(pub)
	reg := collision.NewRegistry()
	a, err := f.CreateAsteroid(entity.Small, mgl64.Vec2{0, 0}, 0)
	require.NoError(t, err)
	b, err := f.CreateAsteroid(entity.Small, mgl64.Vec2{10, 0}, 0)
	require.NoError(t, err)
	far := f.CreateUfo(mgl64.Vec2{500, 500}, 0)
	reg.Register(a)
	reg.Register(b)
	reg.Register(far)

	s := NewCollisionSystem(reg, pub)
	s.Update(0)
	require.Len(t, pub.events, 1)
	assert.Equal(t, collision.BodiesCollide{A: a, B: b}, pub.events[0])
	assert.Equal(t, 1, s.LastCount())

	// no dedup: still touching, reported again
	s.Update(0)
	assert.Len(t, pub.events, 2)
}

func TestWrapSystem_WrapsBodiesAndExpiresProjectiles(t *testing.T) {
	pub := &recorder{}
	f := newTestFactory(pub)
	w := ecs.NewWorld()
	vp := gameplay.Viewport{Width: 800, Height: 600}

	gone, err := f.CreateAsteroid(entity.Small, mgl64.Vec2{-20, 300}, 0)
	require.NoError(t, err)
	edge, err := f.CreateAsteroid(entity.Small, mgl64.Vec2{-10, 300}, 0)
	require.NoError(t, err)
	shot := f.CreateProjectile(mgl64.Vec2{801, 10}, 0)
	inside := f.CreateProjectile(mgl64.Vec2{400, 300}, 0)
	w.Add(gone, edge, shot, inside)
	w.Commit()

	NewWrapSystem(w, vp).Update(0)

	assert.Equal(t, mgl64.Vec2{815, 300}, gone.Position())
	assert.Equal(t, mgl64.Vec2{-10, 300}, edge.Position(), "still partly visible")
	assert.True(t, shot.Destroyed())
	assert.False(t, inside.Destroyed())
	require.Len(t, pub.events, 1)
	assert.Equal(t, entity.ProjectileExpired{Projectile: shot}, pub.events[0])
}

func TestCommitAndDispatchSystems(t *testing.T) {
	w := ecs.NewWorld()
	bus := event.NewBus(nil)
	var seen int
	event.Register(bus, event.Rule[int]{Then: func(int) { seen++ }})

	f := newTestFactory(bus)
	u := f.CreateUfo(mgl64.Vec2{}, 0)
	w.Add(u)
	bus.Publish(1)

	NewDispatchSystem(bus).Update(0)
	assert.Equal(t, 1, seen)
	assert.False(t, w.Contains(u.ID()))
	NewCommitSystem(w).Update(0)
	assert.True(t, w.Contains(u.ID()))
}

type outcomes struct{ got []gameplay.Outcome }

func (o *outcomes) GameOver(out gameplay.Outcome) { o.got = append(o.got, out) }

func TestSession_StartArmsTimers(t *testing.T) {
	s := NewSession(SessionOptions{Seed: 3})
	require.NoError(t, s.Start())

	// ship plus four timers
	assert.Equal(t, 5, s.World.Len())
	require.NotNil(t, s.Ship())
	assert.Equal(t, mgl64.Vec2{1920, 1080}, s.Ship().Position())
	assert.True(t, s.Bodies.Contains(s.Ship().ID()))
	assert.Error(t, s.Start())

	prios := []coresys.Priority{}
	for _, sys := range s.Runner.Systems() {
		prios = append(prios, sys.Priority())
	}
	assert.Equal(t, []coresys.Priority{
		coresys.PriorityUpdate,
		coresys.PriorityCollision,
		coresys.PriorityDispatch,
		coresys.PriorityPostUpdate,
		coresys.PriorityCommit,
	}, prios)
}

func asteroidCount(w *ecs.World) int {
	n := 0
	ecs.EachOf(w, func(*entity.Asteroid) { n++ })
	return n
}

func TestSession_RampShortensSpawnCadence(t *testing.T) {
	s := NewSession(SessionOptions{
		Seed:     5,
		Viewport: gameplay.Viewport{Width: 800, Height: 600},
		Cadences: Cadences{Asteroid: 3 * time.Second, Ramp: 2900 * time.Millisecond},
	})
	require.NoError(t, s.Start())

	s.Tick(2900 * time.Millisecond)
	assert.Zero(t, asteroidCount(s.World))

	// the replacement starts fresh at 2.8s
	s.Tick(2700 * time.Millisecond)
	assert.Zero(t, asteroidCount(s.World))
	s.Tick(100 * time.Millisecond)
	assert.Equal(t, 1, asteroidCount(s.World))
	assert.Equal(t, uint64(3), s.Ticks())
}

func TestSession_LastLifeEndsGame(t *testing.T) {
	presenter := &outcomes{}
	s := NewSession(SessionOptions{
		Seed:      9,
		Lives:     1,
		Viewport:  gameplay.Viewport{Width: 800, Height: 600},
		Cadences:  Cadences{Ramp: time.Hour},
		Presenter: presenter,
	})
	require.NoError(t, s.Start())
	ship := s.Ship()
	dt := 10 * time.Millisecond

	first, err := s.Factory.CreateAsteroid(entity.Tiny, ship.Position(), 0)
	require.NoError(t, err)
	s.World.Add(first)
	s.World.Commit()

	s.Tick(dt)
	assert.Equal(t, 0, s.Context.Lives)
	assert.True(t, ship.Destroyed())
	assert.True(t, first.Destroyed())
	assert.True(t, s.World.Contains(ship.ID()))

	// destruction events handled: ship back, asteroid gone
	s.Tick(dt)
	assert.False(t, ship.Destroyed())
	assert.False(t, s.World.Contains(first.ID()))
	assert.False(t, s.Bodies.Contains(first.ID()))
	assert.False(t, s.Over())

	second, err := s.Factory.CreateAsteroid(entity.Tiny, ship.Position(), 0)
	require.NoError(t, err)
	s.World.Add(second)
	s.World.Commit()

	s.Tick(dt)
	assert.True(t, s.Over())
	assert.False(t, s.World.Contains(ship.ID()))
	assert.False(t, s.Bodies.Contains(ship.ID()))
	require.Len(t, presenter.got, 1)
	assert.Equal(t, s.Context.SessionID, presenter.got[0].SessionID)
	assert.Equal(t, 3*dt, presenter.got[0].Played)
}

func TestSession_ShotBreaksBigAsteroid(t *testing.T) {
	s := NewSession(SessionOptions{
		Seed:     11,
		Viewport: gameplay.Viewport{Width: 800, Height: 600},
		Cadences: Cadences{Ramp: time.Hour},
	})
	require.NoError(t, s.Start())

	big, err := s.Factory.CreateAsteroid(entity.Big, mgl64.Vec2{100, 100}, 0)
	require.NoError(t, err)
	shot := s.Factory.CreateProjectile(mgl64.Vec2{100, 100}, 0)
	s.World.Add(big, shot)
	s.World.Commit()

	s.Tick(time.Millisecond)
	assert.Equal(t, 25, s.Context.Score)
	assert.False(t, s.World.Contains(shot.ID()))
	assert.Equal(t, 3, asteroidCount(s.World))

	s.Tick(time.Millisecond)
	assert.False(t, s.World.Contains(big.ID()))
	assert.Equal(t, 2, asteroidCount(s.World))
}

func TestSession_TickLogsCollisionCount(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewSession(SessionOptions{
		Seed:     11,
		Viewport: gameplay.Viewport{Width: 800, Height: 600},
		Cadences: Cadences{Ramp: time.Hour},
		Log:      zap.New(core),
	})
	require.NoError(t, s.Start())

	big, err := s.Factory.CreateAsteroid(entity.Big, mgl64.Vec2{100, 100}, 0)
	require.NoError(t, err)
	shot := s.Factory.CreateProjectile(mgl64.Vec2{100, 100}, 0)
	s.World.Add(big, shot)
	s.World.Commit()

	s.Tick(time.Millisecond)
	s.Tick(time.Millisecond)

	ticks := logs.FilterMessage("tick").All()
	require.Len(t, ticks, 2)
	first := ticks[0].ContextMap()
	assert.Equal(t, uint64(1), first["tick"])
	assert.Equal(t, int64(1), first["collisions"])
	assert.Equal(t, int64(0), ticks[1].ContextMap()["collisions"])
}
