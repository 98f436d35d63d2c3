package event

import "github.com/kenney-asteroids/sim/internal/core/ecs"

// EntityCreated announces an entity built at runtime (e.g. a fired
// projectile) that still has to be added to the World.
type EntityCreated struct {
	Entity ecs.Entity
}
