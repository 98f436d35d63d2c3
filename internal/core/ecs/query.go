package ecs

// EachOf visits every committed entity that satisfies the role T, in commit order.
func EachOf[T any](w *World, fn func(T)) {
	for _, e := range w.entities {
		if v, ok := e.(T); ok {
			fn(v)
		}
	}
}

// FirstOf returns the first committed entity satisfying the role T.
func FirstOf[T any](w *World) (T, bool) {
	for _, e := range w.entities {
		if v, ok := e.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Tagged returns the first committed entity carrying tag.
func (w *World) Tagged(tag string) (Entity, bool) {
	return w.First(func(e Entity) bool { return e.Tags().Has(tag) })
}
