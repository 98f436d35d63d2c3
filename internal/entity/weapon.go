package entity

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kenney-asteroids/sim/internal/core/event"
)

// Weapon fires projectiles with a reload delay between shots.
type Weapon struct {
	offset    float64
	reload    time.Duration
	reloading time.Duration
	factory   *Factory
	publisher event.Publisher
}

// Ready reports whether the weapon can fire.
func (w *Weapon) Ready() bool { return w.reloading <= 0 }

func (w *Weapon) Update(dt time.Duration) {
	if w.reloading > 0 {
		w.reloading -= dt
	}
}

// Fire creates a projectile ahead of the parent and publishes it as an
// EntityCreated event; the World picks it up through a rule.
func (w *Weapon) Fire(parent mgl64.Vec2, heading float64) bool {
	if !w.Ready() {
		return false
	}
	w.reloading = w.reload
	pos := parent.Add(Direction(heading).Mul(w.offset))
	w.publisher.Publish(event.EntityCreated{Entity: w.factory.CreateProjectile(pos, heading)})
	return true
}
