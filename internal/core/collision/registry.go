package collision

import "github.com/kenney-asteroids/sim/internal/core/ecs"

// Registry is the set of bodies taking part in collision checks. It keeps
// registration order so scans are stable from tick to tick. Attached to the
// World as a Tracker, it follows World membership on every Commit.
type Registry struct {
	bodies []ecs.Body
	index  map[ecs.EntityID]int
}

func NewRegistry() *Registry {
	return &Registry{
		bodies: make([]ecs.Body, 0, 128),
		index:  make(map[ecs.EntityID]int, 128),
	}
}

// Register adds a body. Already-registered bodies are ignored.
func (r *Registry) Register(b ecs.Body) {
	if _, ok := r.index[b.ID()]; ok {
		return
	}
	r.index[b.ID()] = len(r.bodies)
	r.bodies = append(r.bodies, b)
}

// Unregister removes a body. Unknown ids are ignored.
func (r *Registry) Unregister(id ecs.EntityID) {
	i, ok := r.index[id]
	if !ok {
		return
	}
	delete(r.index, id)
	copy(r.bodies[i:], r.bodies[i+1:])
	r.bodies[len(r.bodies)-1] = nil
	r.bodies = r.bodies[:len(r.bodies)-1]
	for j := i; j < len(r.bodies); j++ {
		r.index[r.bodies[j].ID()] = j
	}
}

// Track registers e if it has the Body role.
func (r *Registry) Track(e ecs.Entity) {
	if b, ok := e.(ecs.Body); ok {
		r.Register(b)
	}
}

func (r *Registry) Untrack(id ecs.EntityID) {
	r.Unregister(id)
}

func (r *Registry) Len() int {
	return len(r.bodies)
}

func (r *Registry) Contains(id ecs.EntityID) bool {
	_, ok := r.index[id]
	return ok
}

// Bodies returns a snapshot of the registered bodies.
func (r *Registry) Bodies() []ecs.Body {
	out := make([]ecs.Body, len(r.bodies))
	copy(out, r.bodies)
	return out
}
