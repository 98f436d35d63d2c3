package entity

import (
	"time"

	"github.com/kenney-asteroids/sim/internal/core/event"
)

// UfoDestroyed is published when a ufo is soft-destroyed.
type UfoDestroyed struct {
	Ufo *Ufo
}

type Ufo struct {
	body
	publisher event.Publisher
}

func (u *Ufo) Update(dt time.Duration) {
	u.position = u.position.Add(u.velocity.Mul(dt.Seconds()))
}

func (u *Ufo) Destroy() {
	if u.state == Destroyed {
		return
	}
	u.state = Destroyed
	u.publisher.Publish(UfoDestroyed{Ufo: u})
}
