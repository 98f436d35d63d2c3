package collision

import "github.com/kenney-asteroids/sim/internal/core/ecs"

// Intersects reports whether two circular bodies overlap. Bodies exactly
// touching (distance equal to the sum of radii) do not collide.
func Intersects(a, b ecs.Body) bool {
	reach := a.Radius() + b.Radius()
	d := a.Position().Sub(b.Position())
	return d.Dot(d) < reach*reach
}

// Collidable reports whether a body may take part in a check: soft-destroyed
// entities are skipped.
func Collidable(b ecs.Body) bool {
	if d, ok := b.(ecs.Destructible); ok {
		return !d.Destroyed()
	}
	return true
}

// Detect scans every unordered pair (i < j) of bodies once and calls emit
// for each overlapping pair, with the lower-index body first.
func Detect(bodies []ecs.Body, emit func(a, b ecs.Body)) int {
	live := make([]ecs.Body, 0, len(bodies))
	for _, b := range bodies {
		if Collidable(b) {
			live = append(live, b)
		}
	}

	hits := 0
	for i := 0; i < len(live); i++ {
		for j := i + 1; j < len(live); j++ {
			if Intersects(live[i], live[j]) {
				emit(live[i], live[j])
				hits++
			}
		}
	}
	return hits
}
