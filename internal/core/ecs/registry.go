package ecs

// Tracker is a side store that mirrors World membership. The World notifies
// every attached tracker on Commit, so callers never have to remember to
// update both stores.
type Tracker interface {
	Track(e Entity)
	Untrack(id EntityID)
}

// trackers fans World membership changes out to every attached side store.
type trackers struct {
	list []Tracker
}

func (r *trackers) attach(t Tracker) {
	r.list = append(r.list, t)
}

func (r *trackers) track(e Entity) {
	for _, t := range r.list {
		t.Track(e)
	}
}

func (r *trackers) untrack(id EntityID) {
	for _, t := range r.list {
		t.Untrack(id)
	}
}
