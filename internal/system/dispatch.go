package system

import (
	"time"

	"github.com/kenney-asteroids/sim/internal/core/event"
	coresys "github.com/kenney-asteroids/sim/internal/core/system"
)

// DispatchSystem drains the event bus through the registered rules once per tick.
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Priority() coresys.Priority { return coresys.PriorityDispatch }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.Dispatch()
}
