package gameplay

import (
	"github.com/kenney-asteroids/sim/internal/core/event"
	"github.com/kenney-asteroids/sim/internal/entity"
)

// Destroyed entities are only removed here, one dispatch pass after the
// destruction, so every rule reacting to the destruction still sees them.
// Removing from the World also drops them from the collision registry.
func registerEntityRules(bus *event.Bus, d *Deps) {
	event.Register(bus, event.Rule[event.EntityCreated]{
		Name: "entity created: add to world",
		Then: func(ev event.EntityCreated) { d.World.Add(ev.Entity) },
	})
	event.Register(bus, event.Rule[entity.AsteroidDestroyed]{
		Name: "asteroid destroyed: remove",
		Then: func(ev entity.AsteroidDestroyed) { d.World.Remove(ev.Asteroid) },
	})
	event.Register(bus, event.Rule[entity.UfoDestroyed]{
		Name: "ufo destroyed: remove",
		Then: func(ev entity.UfoDestroyed) { d.World.Remove(ev.Ufo) },
	})
	event.Register(bus, event.Rule[entity.ProjectileExpired]{
		Name: "projectile expired: remove",
		Then: func(ev entity.ProjectileExpired) { d.World.Remove(ev.Projectile) },
	})
	event.Register(bus, event.Rule[entity.ShipDestroyed]{
		Name: "ship destroyed: respawn at centre",
		When: func(ev entity.ShipDestroyed) bool { return d.World.Contains(ev.Ship.ID()) },
		Then: func(ev entity.ShipDestroyed) {
			ev.Ship.SetPosition(d.Viewport.Center())
			ev.Ship.Reset()
		},
	})
}
