package event

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Event is an immutable value describing something that happened.
// Rules are resolved by the event's concrete runtime type.
type Event any

// Publisher is the only view most components need of the bus.
type Publisher interface {
	Publish(ev Event)
}

// Bus is a double-buffered rule dispatcher. Events published in pass N are
// dispatched in pass N+1; events published while a pass is running are
// deferred to the following pass, so there are never same-pass cascades.
type Bus struct {
	front []Event
	back  []Event
	rules map[reflect.Type][]rule
	log   *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		front: make([]Event, 0, 64),
		back:  make([]Event, 0, 64),
		rules: make(map[reflect.Type][]rule),
		log:   log,
	}
}

// Publish queues an event for the next Dispatch. It never dispatches synchronously.
func (b *Bus) Publish(ev Event) {
	if ev == nil {
		return
	}
	b.back = append(b.back, ev)
}

// Pending returns the number of events waiting for the next Dispatch.
func (b *Bus) Pending() int {
	return len(b.back)
}

// Dispatch drains the queued events in publish order. For each event every
// matching rule's condition is evaluated first; then the action of each rule
// whose condition held is invoked. Events with no matching rules are ignored.
func (b *Bus) Dispatch() {
	b.front, b.back = b.back, b.front[:0]
	if len(b.front) == 0 {
		return
	}

	fired := 0
	matched := make([]rule, 0, 8)
	for i, ev := range b.front {
		rules := b.rules[reflect.TypeOf(ev)]
		matched = matched[:0]
		for _, r := range rules {
			if r.cond(ev) {
				matched = append(matched, r)
			}
		}
		for _, r := range matched {
			r.act(ev)
		}
		fired += len(matched)
		b.front[i] = nil
	}

	b.log.Debug("rules dispatched",
		zap.Int("events", len(b.front)),
		zap.Int("fired", fired),
		zap.Int("deferred", len(b.back)),
	)
	b.front = b.front[:0]
}

func (b *Bus) add(t reflect.Type, r rule) {
	b.rules[t] = append(b.rules[t], r)
	b.log.Debug("rule registered", zap.String("event", t.String()), zap.String("rule", r.name))
}

// typeKey returns the reflect.Type used to key events of type T.
// T must be a concrete type: an interface type would never match a
// published event's runtime type.
func typeKey[T any]() reflect.Type {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Interface {
		panic(fmt.Sprintf("event: rule bound to interface type %s", t))
	}
	return t
}
