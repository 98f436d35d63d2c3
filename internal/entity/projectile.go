package entity

import (
	"time"

	"github.com/kenney-asteroids/sim/internal/core/event"
)

// ProjectileExpired is published when a projectile's lifetime runs out.
type ProjectileExpired struct {
	Projectile *Projectile
}

type Projectile struct {
	body
	life      time.Duration
	publisher event.Publisher
}

// Life returns the remaining lifetime.
func (p *Projectile) Life() time.Duration { return p.life }

func (p *Projectile) Update(dt time.Duration) {
	if p.state == Destroyed {
		return
	}
	p.position = p.position.Add(p.velocity.Mul(dt.Seconds()))
	p.life -= dt
	if p.life <= 0 {
		p.Expire()
	}
}

// Expire ends the projectile's flight. Expiring twice is a no-op.
func (p *Projectile) Expire() {
	if p.state == Destroyed {
		return
	}
	p.state = Destroyed
	p.publisher.Publish(ProjectileExpired{Projectile: p})
}
