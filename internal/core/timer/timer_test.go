package timer

import (
	"testing"
	"time"

	"github.com/kenney-asteroids/sim/internal/core/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	events []event.Event
}

func (c *capture) Publish(ev event.Event) { c.events = append(c.events, ev) }

func TestTimer_ElapsesAndRepeats(t *testing.T) {
	pub := &capture{}
	tm := New(1, 3*time.Second, "next-asteroid", pub)

	tm.Update(2 * time.Second)
	assert.Empty(t, pub.events)
	assert.Equal(t, time.Second, tm.Remaining())

	tm.Update(time.Second)
	require.Len(t, pub.events, 1)
	ev, ok := pub.events[0].(Elapsed)
	require.True(t, ok)
	assert.Same(t, tm, ev.Timer)
	assert.Equal(t, 3*time.Second, tm.Remaining())

	for i := 0; i < 3; i++ {
		tm.Update(time.Second)
	}
	assert.Len(t, pub.events, 2)
}

func TestTimer_LargeStepElapsesOnce(t *testing.T) {
	pub := &capture{}
	tm := New(1, time.Second, "x", pub)

	tm.Update(5 * time.Second)
	assert.Len(t, pub.events, 1)
	assert.Equal(t, time.Second, tm.Remaining())
}

func TestTimer_TagAndDurationAreFixed(t *testing.T) {
	tm := New(7, 2800*time.Millisecond, "next-asteroid", &capture{})
	assert.Equal(t, "next-asteroid", tm.Tag())
	assert.True(t, tm.Tags().Has("next-asteroid"))
	assert.Equal(t, 2800*time.Millisecond, tm.Duration())
	assert.EqualValues(t, 7, tm.ID())
}

func TestTimer_NonPositiveDurationIsClamped(t *testing.T) {
	pub := &capture{}
	for _, d := range []time.Duration{0, -time.Second} {
		tm := New(1, d, "next-asteroid", pub)
		assert.Equal(t, MinDuration, tm.Duration())
		assert.Equal(t, MinDuration, tm.Remaining())
	}

	tm := New(2, 0, "next-asteroid", pub)
	tm.Update(MinDuration)
	assert.Len(t, pub.events, 1)
	assert.Equal(t, MinDuration, tm.Remaining())
}
