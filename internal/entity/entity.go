package entity

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kenney-asteroids/sim/internal/core/ecs"
)

// Capability tags used for coarse selection.
const (
	TagPlayer     = "player"
	TagEnemy      = "enemy"
	TagProjectile = "projectile"
)

// ErrUnknownKind is returned when a spawn or score lookup names a kind
// the factory does not know.
var ErrUnknownKind = errors.New("unknown entity kind")

// State is the lifecycle state shared by all simulated entities.
type State int

const (
	Alive State = iota
	Destroyed
)

func (s State) String() string {
	switch s {
	case Alive:
		return "Alive"
	case Destroyed:
		return "Destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Direction returns the unit vector for a heading in radians.
func Direction(heading float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(heading), math.Sin(heading)}
}

// Heading returns the heading in radians of a vector.
func Heading(v mgl64.Vec2) float64 {
	return math.Atan2(v.Y(), v.X())
}

// body carries the fields every moving entity has.
type body struct {
	id       ecs.EntityID
	tags     ecs.Tags
	state    State
	position mgl64.Vec2
	velocity mgl64.Vec2
	radius   float64
}

func (b *body) ID() ecs.EntityID     { return b.id }
func (b *body) Tags() ecs.Tags       { return b.tags }
func (b *body) State() State         { return b.state }
func (b *body) Destroyed() bool      { return b.state == Destroyed }
func (b *body) Position() mgl64.Vec2 { return b.position }
func (b *body) Velocity() mgl64.Vec2 { return b.velocity }
func (b *body) Radius() float64      { return b.radius }

func (b *body) SetPosition(p mgl64.Vec2) { b.position = p }

// ScoreKind returns the scoring key for an entity, e.g. "asteroid.big".
func ScoreKind(e ecs.Entity) (string, error) {
	switch v := e.(type) {
	case *Asteroid:
		return "asteroid." + v.Size().String(), nil
	case *Ufo:
		return "ufo", nil
	default:
		return "", fmt.Errorf("score %T: %w", e, ErrUnknownKind)
	}
}
