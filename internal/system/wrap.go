package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kenney-asteroids/sim/internal/core/ecs"
	coresys "github.com/kenney-asteroids/sim/internal/core/system"
	"github.com/kenney-asteroids/sim/internal/entity"
	"github.com/kenney-asteroids/sim/internal/gameplay"
)

type placeable interface {
	ecs.Body
	SetPosition(p mgl64.Vec2)
}

// WrapSystem keeps bodies on screen. A ship, asteroid or ufo that drifts
// fully past one edge reappears at the opposite one; projectiles leaving
// the viewport expire instead.
type WrapSystem struct {
	world    *ecs.World
	viewport gameplay.Viewport
}

func NewWrapSystem(world *ecs.World, viewport gameplay.Viewport) *WrapSystem {
	return &WrapSystem{world: world, viewport: viewport}
}

func (s *WrapSystem) Priority() coresys.Priority { return coresys.PriorityPostUpdate }

func (s *WrapSystem) Update(_ time.Duration) {
	s.world.Each(func(e ecs.Entity) {
		switch v := e.(type) {
		case *entity.Projectile:
			if !s.viewport.Contains(v.Position()) {
				v.Expire()
			}
		case placeable:
			if p, moved := s.wrap(v.Position(), v.Radius()); moved {
				v.SetPosition(p)
			}
		}
	})
}

func (s *WrapSystem) wrap(p mgl64.Vec2, r float64) (mgl64.Vec2, bool) {
	x, y := p.X(), p.Y()
	w, h := s.viewport.Width, s.viewport.Height
	moved := true
	switch {
	case x < -r:
		x = w + r
	case x > w+r:
		x = -r
	case y < -r:
		y = h + r
	case y > h+r:
		y = -r
	default:
		moved = false
	}
	return mgl64.Vec2{x, y}, moved
}
