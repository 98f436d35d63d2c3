package entity

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kenney-asteroids/sim/internal/core/ecs"
	"github.com/kenney-asteroids/sim/internal/core/event"
	"github.com/kenney-asteroids/sim/internal/data"
)

// Kind names what a SpawnRequest should build.
type Kind int

const (
	KindShip Kind = iota
	KindAsteroidTiny
	KindAsteroidSmall
	KindAsteroidMedium
	KindAsteroidBig
	KindProjectile
	KindUfo
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroidTiny, KindAsteroidSmall, KindAsteroidMedium, KindAsteroidBig:
		return "asteroid." + Size(k-KindAsteroidTiny).String()
	case KindProjectile:
		return "projectile"
	case KindUfo:
		return "ufo"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// AsteroidKind maps a size class to its spawn kind.
func AsteroidKind(s Size) Kind {
	return KindAsteroidTiny + Kind(s)
}

// SpawnRequest describes an entity to build. Heading is in radians.
type SpawnRequest struct {
	Kind     Kind
	Position mgl64.Vec2
	Heading  float64
}

// Spawner is the factory contract used by gameplay rules.
type Spawner interface {
	Spawn(req SpawnRequest) (ecs.Entity, error)
}

// Factory builds fully initialised entities ready for World.Add.
type Factory struct {
	ids       *ecs.IDPool
	tuning    *data.TuningTable
	publisher event.Publisher
	rng       *rand.Rand
}

func NewFactory(ids *ecs.IDPool, tuning *data.TuningTable, publisher event.Publisher, rng *rand.Rand) *Factory {
	if tuning == nil {
		tuning = data.DefaultTuning()
	}
	return &Factory{ids: ids, tuning: tuning, publisher: publisher, rng: rng}
}

// Spawn builds the entity named by req.Kind. Unknown kinds fail with ErrUnknownKind.
func (f *Factory) Spawn(req SpawnRequest) (ecs.Entity, error) {
	switch req.Kind {
	case KindShip:
		return f.CreateShip(req.Position), nil
	case KindAsteroidTiny, KindAsteroidSmall, KindAsteroidMedium, KindAsteroidBig:
		return f.CreateAsteroid(Size(req.Kind-KindAsteroidTiny), req.Position, req.Heading)
	case KindProjectile:
		return f.CreateProjectile(req.Position, req.Heading), nil
	case KindUfo:
		return f.CreateUfo(req.Position, req.Heading), nil
	default:
		return nil, fmt.Errorf("spawn %s: %w", req.Kind, ErrUnknownKind)
	}
}

func (f *Factory) CreateShip(pos mgl64.Vec2) *Ship {
	t := f.tuning.Ship
	s := &Ship{
		body: body{
			id:       f.ids.Next(),
			tags:     ecs.NewTags(TagPlayer),
			position: pos,
			radius:   t.Radius,
		},
		rotation:     -math.Pi / 2, // nose up
		maxSpeed:     t.MaxSpeed,
		acceleration: t.Acceleration,
		maxRotation:  mgl64.DegToRad(t.MaxRotation),
		publisher:    f.publisher,
	}
	s.weapon = &Weapon{
		offset:    t.MuzzleOffset,
		reload:    t.Reload,
		factory:   f,
		publisher: f.publisher,
	}
	return s
}

func (f *Factory) CreateAsteroid(size Size, pos mgl64.Vec2, heading float64) (*Asteroid, error) {
	if size < Tiny || size > Big {
		return nil, fmt.Errorf("create asteroid %s: %w", size, ErrUnknownKind)
	}
	t := f.tuning.Asteroid(size.String())
	if t == nil {
		return nil, fmt.Errorf("create asteroid %s: no tuning: %w", size, ErrUnknownKind)
	}

	speed := f.between(t.MinSpeed, t.MaxSpeed)
	spin := mgl64.DegToRad(f.between(t.MinSpin, t.MaxSpin))
	if f.rng.Intn(2) == 0 {
		spin = -spin
	}

	return &Asteroid{
		body: body{
			id:       f.ids.Next(),
			tags:     ecs.NewTags(TagEnemy),
			position: pos,
			velocity: Direction(heading).Mul(speed),
			radius:   t.Radius,
		},
		size:      size,
		spin:      spin,
		publisher: f.publisher,
	}, nil
}

func (f *Factory) CreateProjectile(pos mgl64.Vec2, heading float64) *Projectile {
	t := f.tuning.Projectile
	return &Projectile{
		body: body{
			id:       f.ids.Next(),
			tags:     ecs.NewTags(TagPlayer, TagProjectile),
			position: pos,
			velocity: Direction(heading).Mul(t.Speed),
			radius:   t.Radius,
		},
		life:      t.Lifetime,
		publisher: f.publisher,
	}
}

func (f *Factory) CreateUfo(pos mgl64.Vec2, heading float64) *Ufo {
	t := f.tuning.Ufo
	return &Ufo{
		body: body{
			id:       f.ids.Next(),
			tags:     ecs.NewTags(TagEnemy),
			position: pos,
			velocity: Direction(heading).Mul(t.Speed),
			radius:   t.Radius,
		},
		publisher: f.publisher,
	}
}

func (f *Factory) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + f.rng.Float64()*(hi-lo)
}
