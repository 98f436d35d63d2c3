package entity

import (
	"fmt"
	"time"

	"github.com/kenney-asteroids/sim/internal/core/event"
)

// Size is the asteroid size class. Big asteroids fragment when destroyed.
type Size int

const (
	Tiny Size = iota
	Small
	Medium
	Big
)

var sizeNames = [...]string{"tiny", "small", "medium", "big"}

func (s Size) String() string {
	if s < Tiny || s > Big {
		return fmt.Sprintf("size(%d)", int(s))
	}
	return sizeNames[s]
}

// AsteroidDestroyed is published when an asteroid is soft-destroyed.
type AsteroidDestroyed struct {
	Asteroid *Asteroid
}

type Asteroid struct {
	body
	size      Size
	spin      float64 // radians per second
	rotation  float64
	publisher event.Publisher
}

func (a *Asteroid) Size() Size        { return a.size }
func (a *Asteroid) Rotation() float64 { return a.rotation }

// Heading returns the direction of travel in radians.
func (a *Asteroid) Heading() float64 { return Heading(a.velocity) }

func (a *Asteroid) Update(dt time.Duration) {
	s := dt.Seconds()
	a.position = a.position.Add(a.velocity.Mul(s))
	a.rotation += a.spin * s
}

// Destroy marks the asteroid destroyed and announces it. The asteroid stays
// in the World until a rule removes it. Destroying twice is a no-op.
func (a *Asteroid) Destroy() {
	if a.state == Destroyed {
		return
	}
	a.state = Destroyed
	a.publisher.Publish(AsteroidDestroyed{Asteroid: a})
}
