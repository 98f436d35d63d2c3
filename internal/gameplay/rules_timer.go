package gameplay

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kenney-asteroids/sim/internal/core/ecs"
	"github.com/kenney-asteroids/sim/internal/core/event"
	"github.com/kenney-asteroids/sim/internal/core/timer"
	"github.com/kenney-asteroids/sim/internal/entity"
	"go.uber.org/zap"
)

func timerTagged(tag string) event.Condition[timer.Elapsed] {
	return func(ev timer.Elapsed) bool { return ev.Timer.Tag() == tag }
}

// findTimer returns the committed timer carrying tag.
func (d *Deps) findTimer(tag string) (*timer.Timer, error) {
	e, ok := d.World.First(func(e ecs.Entity) bool {
		t, ok := e.(*timer.Timer)
		return ok && t.Tag() == tag
	})
	if !ok {
		return nil, fmt.Errorf("timer %q: %w", tag, ErrMissingEntity)
	}
	return e.(*timer.Timer), nil
}

// playerShip returns the one player ship.
func (d *Deps) playerShip() (*entity.Ship, error) {
	s, ok := ecs.FirstOf[*entity.Ship](d.World)
	if !ok {
		return nil, fmt.Errorf("player ship: %w", ErrMissingEntity)
	}
	return s, nil
}

func registerTimerRules(bus *event.Bus, d *Deps) {
	sizes := []entity.Size{entity.Tiny, entity.Small, entity.Medium, entity.Big}

	event.Register(bus,
		event.Rule[timer.Elapsed]{
			Name: "next asteroid: spawn at edge",
			When: timerTagged(TagNextAsteroid),
			Then: func(timer.Elapsed) {
				d.spawn("next asteroid: spawn at edge", entity.SpawnRequest{
					Kind:     entity.AsteroidKind(sizes[d.Rand.Intn(len(sizes))]),
					Position: d.Viewport.RandomEdge(d.Rand),
					Heading:  mgl64.DegToRad(float64(d.Rand.Intn(360))),
				})
			},
		},
		event.Rule[timer.Elapsed]{
			Name: "ramp: shorten asteroid spawn interval",
			When: timerTagged(TagAsteroidRamp),
			Then: func(ev timer.Elapsed) {
				const rule = "ramp: shorten asteroid spawn interval"
				spawnTimer, err := d.findTimer(TagNextAsteroid)
				if err != nil {
					d.fail(rule, err)
					return
				}
				next, ok, err := d.Pacer.NextSpawnInterval(spawnTimer.Duration())
				if err != nil {
					d.fail(rule, err)
					return
				}
				if !ok {
					// fully ramped: the ramp timer has nothing left to do
					d.World.Remove(ev.Timer)
					return
				}
				d.World.Remove(spawnTimer)
				d.World.Add(timer.New(d.IDs.Next(), next, TagNextAsteroid, d.Publisher))
				d.Log.Debug("asteroid spawn interval ramped",
					zap.Duration("from", spawnTimer.Duration()),
					zap.Duration("to", next),
				)
			},
		},
		event.Rule[timer.Elapsed]{
			Name: "hazard: tiny asteroids converge on the player",
			When: timerTagged(TagHazard),
			Then: func(timer.Elapsed) {
				const rule = "hazard: tiny asteroids converge on the player"
				ship, err := d.playerShip()
				if err != nil {
					d.fail(rule, err)
					return
				}
				target := ship.Position()
				for _, from := range d.Viewport.EdgeMidpoints() {
					d.spawn(rule, entity.SpawnRequest{
						Kind:     entity.KindAsteroidTiny,
						Position: from,
						Heading:  entity.Heading(target.Sub(from)),
					})
				}
			},
		},
		event.Rule[timer.Elapsed]{
			Name: "next ufo: fly across",
			When: timerTagged(TagNextUfo),
			Then: func(timer.Elapsed) {
				y := d.Rand.Float64() * d.Viewport.Height
				from, heading := mgl64.Vec2{0, y}, 0.0
				if d.Rand.Intn(2) == 0 {
					from, heading = mgl64.Vec2{d.Viewport.Width, y}, math.Pi
				}
				d.spawn("next ufo: fly across", entity.SpawnRequest{
					Kind:     entity.KindUfo,
					Position: from,
					Heading:  heading,
				})
			},
		},
	)
}
