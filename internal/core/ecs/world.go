package ecs

// World owns the committed set of live entities. Add and Remove are staged
// and only take effect on Commit, so iterating the committed set during a
// tick never observes a structural change.
type World struct {
	entities []Entity
	index    map[EntityID]int

	pendingAdd    []Entity
	pendingRemove []Entity

	trackers trackers
}

func NewWorld() *World {
	return &World{
		entities:      make([]Entity, 0, 256),
		index:         make(map[EntityID]int, 256),
		pendingAdd:    make([]Entity, 0, 32),
		pendingRemove: make([]Entity, 0, 32),
	}
}

// Attach registers a side store kept in sync with the committed set.
func (w *World) Attach(t Tracker) {
	w.trackers.attach(t)
}

// Add stages entities for insertion on the next Commit.
func (w *World) Add(entities ...Entity) {
	for _, e := range entities {
		if e == nil {
			continue
		}
		w.pendingAdd = append(w.pendingAdd, e)
	}
}

// Remove stages entities for removal on the next Commit. Removing an entity
// twice, or one that was never added, is a no-op.
func (w *World) Remove(entities ...Entity) {
	for _, e := range entities {
		if e == nil {
			continue
		}
		w.pendingRemove = append(w.pendingRemove, e)
	}
}

// Clear stages removal of every committed entity.
func (w *World) Clear() {
	w.pendingRemove = append(w.pendingRemove, w.entities...)
}

// Commit applies staged removals, then staged additions. An entity both
// added and removed within the same tick is dropped if it was never
// committed, and kept untouched (trackers are not notified) if it was.
func (w *World) Commit() {
	if len(w.pendingRemove) == 0 && len(w.pendingAdd) == 0 {
		return
	}

	readded := make(map[EntityID]struct{}, len(w.pendingAdd))
	for _, e := range w.pendingAdd {
		readded[e.ID()] = struct{}{}
	}

	dropped := make(map[EntityID]struct{}, len(w.pendingRemove))
	removed := 0
	for _, e := range w.pendingRemove {
		id := e.ID()
		if _, ok := w.index[id]; !ok {
			dropped[id] = struct{}{}
			continue
		}
		if _, ok := readded[id]; ok {
			continue
		}
		delete(w.index, id)
		w.trackers.untrack(id)
		removed++
	}
	if removed > 0 {
		w.compact()
	}

	for _, e := range w.pendingAdd {
		id := e.ID()
		if _, ok := dropped[id]; ok {
			continue
		}
		if _, ok := w.index[id]; ok {
			continue // duplicate add, or a committed entity removed and re-added
		}
		w.index[id] = len(w.entities)
		w.entities = append(w.entities, e)
		w.trackers.track(e)
	}

	w.pendingRemove = w.pendingRemove[:0]
	w.pendingAdd = w.pendingAdd[:0]
}

// compact rebuilds the committed slice from the surviving index entries,
// preserving commit order.
func (w *World) compact() {
	kept := w.entities[:0]
	for _, e := range w.entities {
		if _, ok := w.index[e.ID()]; ok {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(w.entities); i++ {
		w.entities[i] = nil
	}
	w.entities = kept
	for i, e := range w.entities {
		w.index[e.ID()] = i
	}
}

// Len returns the number of committed entities.
func (w *World) Len() int {
	return len(w.entities)
}

func (w *World) Contains(id EntityID) bool {
	_, ok := w.index[id]
	return ok
}

func (w *World) Get(id EntityID) (Entity, bool) {
	i, ok := w.index[id]
	if !ok {
		return nil, false
	}
	return w.entities[i], true
}

// Entities returns a snapshot of the committed set in commit order.
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.entities))
	copy(out, w.entities)
	return out
}

// Each visits the committed set in commit order. Add and Remove calls made
// by fn are staged and do not affect the current iteration.
func (w *World) Each(fn func(Entity)) {
	for _, e := range w.entities {
		fn(e)
	}
}

// First returns the first committed entity matching pred.
func (w *World) First(pred func(Entity) bool) (Entity, bool) {
	for _, e := range w.entities {
		if pred(e) {
			return e, true
		}
	}
	return nil, false
}
