package collision

import "github.com/kenney-asteroids/sim/internal/core/ecs"

// BodiesCollide is published once per overlapping pair per tick. The
// participant order is stable but carries no meaning.
type BodiesCollide struct {
	A ecs.Body
	B ecs.Body
}

// Match resolves the pair into an (X, Y) pair regardless of which side each
// participant was published on. ok is false when the pair is not an X and a Y.
func Match[X, Y any](ev BodiesCollide) (x X, y Y, ok bool) {
	if x, ok = ev.A.(X); ok {
		if y, ok = ev.B.(Y); ok {
			return x, y, true
		}
	}
	if x, ok = ev.B.(X); ok {
		if y, ok = ev.A.(Y); ok {
			return x, y, true
		}
	}
	var zx X
	var zy Y
	return zx, zy, false
}
