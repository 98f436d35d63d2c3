package system

import (
	"time"

	"github.com/kenney-asteroids/sim/internal/core/ecs"
	coresys "github.com/kenney-asteroids/sim/internal/core/system"
)

// CommitSystem applies the World's staged additions and removals at tick end.
type CommitSystem struct {
	world *ecs.World
}

func NewCommitSystem(world *ecs.World) *CommitSystem {
	return &CommitSystem{world: world}
}

func (s *CommitSystem) Priority() coresys.Priority { return coresys.PriorityCommit }

func (s *CommitSystem) Update(_ time.Duration) {
	s.world.Commit()
}
