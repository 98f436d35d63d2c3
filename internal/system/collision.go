package system

import (
	"time"

	"github.com/kenney-asteroids/sim/internal/core/collision"
	"github.com/kenney-asteroids/sim/internal/core/ecs"
	"github.com/kenney-asteroids/sim/internal/core/event"
	coresys "github.com/kenney-asteroids/sim/internal/core/system"
)

// CollisionSystem publishes one BodiesCollide per overlapping pair of
// registered bodies. Pairs still touching next tick are reported again.
type CollisionSystem struct {
	bodies    *collision.Registry
	publisher event.Publisher
	last      int
}

func NewCollisionSystem(bodies *collision.Registry, publisher event.Publisher) *CollisionSystem {
	return &CollisionSystem{bodies: bodies, publisher: publisher}
}

func (s *CollisionSystem) Priority() coresys.Priority { return coresys.PriorityCollision }

func (s *CollisionSystem) Update(_ time.Duration) {
	s.last = collision.Detect(s.bodies.Bodies(), func(a, b ecs.Body) {
		s.publisher.Publish(collision.BodiesCollide{A: a, B: b})
	})
}

// LastCount returns the number of collisions found by the previous Update.
func (s *CollisionSystem) LastCount() int { return s.last }
