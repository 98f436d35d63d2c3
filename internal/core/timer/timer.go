package timer

import (
	"time"

	"github.com/kenney-asteroids/sim/internal/core/ecs"
	"github.com/kenney-asteroids/sim/internal/core/event"
)

// Elapsed is published each time a timer's countdown reaches zero.
type Elapsed struct {
	Timer *Timer
}

// Timer is a repeating countdown entity. Its duration is fixed at
// construction; changing cadence means replacing the timer.
type Timer struct {
	id        ecs.EntityID
	tag       string
	tags      ecs.Tags
	duration  time.Duration
	remaining time.Duration
	publisher event.Publisher
}

// MinDuration is the shortest cadence a timer runs at.
const MinDuration = time.Millisecond

// New creates a timer that elapses every duration. Durations below
// MinDuration are raised to it.
func New(id ecs.EntityID, duration time.Duration, tag string, publisher event.Publisher) *Timer {
	if duration < MinDuration {
		duration = MinDuration
	}
	return &Timer{
		id:        id,
		tag:       tag,
		tags:      ecs.NewTags(tag),
		duration:  duration,
		remaining: duration,
		publisher: publisher,
	}
}

func (t *Timer) ID() ecs.EntityID         { return t.id }
func (t *Timer) Tags() ecs.Tags           { return t.tags }
func (t *Timer) Tag() string              { return t.tag }
func (t *Timer) Duration() time.Duration  { return t.duration }
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Update counts down by dt. On reaching zero it publishes Elapsed and resets
// to the full duration; any overshoot is discarded, so a single large step
// elapses the timer once.
func (t *Timer) Update(dt time.Duration) {
	t.remaining -= dt
	if t.remaining > 0 {
		return
	}
	t.remaining = t.duration
	t.publisher.Publish(Elapsed{Timer: t})
}
