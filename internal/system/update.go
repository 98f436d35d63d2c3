package system

import (
	"time"

	"github.com/kenney-asteroids/sim/internal/core/ecs"
	coresys "github.com/kenney-asteroids/sim/internal/core/system"
)

// Clock accumulates simulated time; gameplay.Context is one.
type Clock interface {
	Advance(dt time.Duration)
}

// UpdateSystem advances every committed Updatable entity: movement,
// weapon reloads and timers.
type UpdateSystem struct {
	world *ecs.World
	clock Clock
}

// NewUpdateSystem creates the system. clock may be nil.
func NewUpdateSystem(world *ecs.World, clock Clock) *UpdateSystem {
	return &UpdateSystem{world: world, clock: clock}
}

func (s *UpdateSystem) Priority() coresys.Priority { return coresys.PriorityUpdate }

func (s *UpdateSystem) Update(dt time.Duration) {
	s.world.Each(func(e ecs.Entity) {
		if u, ok := e.(ecs.Updatable); ok {
			u.Update(dt)
		}
	})
	if s.clock != nil {
		s.clock.Advance(dt)
	}
}
