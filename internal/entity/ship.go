package entity

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kenney-asteroids/sim/internal/core/event"
)

// ShipDestroyed is published when the player ship is soft-destroyed.
type ShipDestroyed struct {
	Ship *Ship
}

// Ship is the player's ship. Steering inputs are set by the input layer
// and applied on Update.
type Ship struct {
	body
	rotation     float64 // radians, 0 = +X
	maxSpeed     float64
	acceleration float64
	maxRotation  float64 // radians per second
	thrust       bool
	turn         float64 // -1..1
	weapon       *Weapon
	publisher    event.Publisher
}

func (s *Ship) Rotation() float64 { return s.rotation }
func (s *Ship) Weapon() *Weapon   { return s.weapon }

// Thrust switches the engine on or off.
func (s *Ship) Thrust(on bool) { s.thrust = on }

// Turn sets the steering input, clamped to [-1, 1].
func (s *Ship) Turn(dir float64) { s.turn = math.Max(-1, math.Min(1, dir)) }

func (s *Ship) Update(dt time.Duration) {
	secs := dt.Seconds()
	s.weapon.Update(dt)
	if s.state == Destroyed {
		return
	}

	s.rotation += s.turn * s.maxRotation * secs
	if s.thrust {
		s.velocity = s.velocity.Add(Direction(s.rotation).Mul(s.acceleration * secs))
		if speed := s.velocity.Len(); speed > s.maxSpeed {
			s.velocity = s.velocity.Mul(s.maxSpeed / speed)
		}
	}
	s.position = s.position.Add(s.velocity.Mul(secs))
}

// Fire shoots a projectile from the ship's nose if the weapon is loaded.
func (s *Ship) Fire() bool {
	if s.state == Destroyed {
		return false
	}
	return s.weapon.Fire(s.position, s.rotation)
}

// Destroy marks the ship destroyed and announces it. Destroying twice is a no-op.
func (s *Ship) Destroy() {
	if s.state == Destroyed {
		return
	}
	s.state = Destroyed
	s.publisher.Publish(ShipDestroyed{Ship: s})
}

// Reset brings a destroyed ship back to life at rest.
func (s *Ship) Reset() {
	s.state = Alive
	s.velocity = mgl64.Vec2{}
	s.rotation = -math.Pi / 2
	s.thrust = false
	s.turn = 0
}
