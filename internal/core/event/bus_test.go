package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ping struct{ n int }
type pong struct{ n int }

func TestBus_PublishIsDeferred(t *testing.T) {
	b := NewBus(nil)
	calls := 0
	Register(b, Rule[ping]{Then: func(ping) { calls++ }})

	b.Publish(ping{1})
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, b.Pending())

	b.Dispatch()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, b.Pending())
}

func TestBus_DispatchPreservesPublishOrderAcrossTypes(t *testing.T) {
	b := NewBus(nil)
	var order []string
	Register(b, Rule[ping]{Then: func(ev ping) { order = append(order, "ping") }})
	Register(b, Rule[pong]{Then: func(ev pong) { order = append(order, "pong") }})

	b.Publish(ping{})
	b.Publish(pong{})
	b.Publish(ping{})
	b.Dispatch()

	assert.Equal(t, []string{"ping", "pong", "ping"}, order)
}

func TestBus_EventsPublishedDuringDispatchWaitForNextPass(t *testing.T) {
	b := NewBus(nil)
	pongs := 0
	Register(b, Rule[ping]{Then: func(ev ping) { b.Publish(pong{ev.n}) }})
	Register(b, Rule[pong]{Then: func(pong) { pongs++ }})

	b.Publish(ping{1})
	b.Dispatch()
	assert.Equal(t, 0, pongs)
	assert.Equal(t, 1, b.Pending())

	b.Dispatch()
	assert.Equal(t, 1, pongs)
}

func TestBus_SelfRepublishDoesNotLoop(t *testing.T) {
	b := NewBus(nil)
	calls := 0
	Register(b, Rule[ping]{Then: func(ev ping) {
		calls++
		b.Publish(ev)
	}})

	b.Publish(ping{})
	for i := 0; i < 3; i++ {
		b.Dispatch()
	}
	assert.Equal(t, 3, calls)
}

func TestBus_ConditionGatesAction(t *testing.T) {
	b := NewBus(nil)
	var got []int
	Register(b, Rule[ping]{
		When: func(ev ping) bool { return ev.n%2 == 0 },
		Then: func(ev ping) { got = append(got, ev.n) },
	})

	for i := 0; i < 5; i++ {
		b.Publish(ping{i})
	}
	b.Dispatch()
	assert.Equal(t, []int{0, 2, 4}, got)
}

func TestBus_ConditionsEvaluatedBeforeActions(t *testing.T) {
	b := NewBus(nil)
	lives := 1
	removed := false
	Register(b,
		Rule[ping]{
			Name: "lose life",
			When: func(ping) bool { return lives > 0 },
			Then: func(ping) { lives-- },
		},
		Rule[ping]{
			Name: "remove",
			When: func(ping) bool { return lives <= 0 },
			Then: func(ping) { removed = true },
		},
	)

	b.Publish(ping{})
	b.Dispatch()
	assert.Equal(t, 0, lives)
	assert.False(t, removed)

	b.Publish(ping{})
	b.Dispatch()
	assert.True(t, removed)
}

func TestBus_UnmatchedEventIsNoop(t *testing.T) {
	b := NewBus(nil)
	b.Publish(pong{})
	b.Publish(nil)
	assert.Equal(t, 1, b.Pending())
	assert.NotPanics(t, b.Dispatch)
	assert.Equal(t, 0, b.Pending())
}

func TestBus_PointerAndValueTypesAreDistinct(t *testing.T) {
	b := NewBus(nil)
	values, pointers := 0, 0
	Register(b, Rule[ping]{Then: func(ping) { values++ }})
	Register(b, Rule[*ping]{Then: func(*ping) { pointers++ }})

	b.Publish(ping{})
	b.Publish(&ping{})
	b.Dispatch()
	assert.Equal(t, 1, values)
	assert.Equal(t, 1, pointers)
}

func TestRegister_InterfaceTypePanics(t *testing.T) {
	b := NewBus(nil)
	assert.Panics(t, func() {
		Register(b, Rule[Publisher]{Then: func(Publisher) {}})
	})
}

func TestRuleCountAndCombinators(t *testing.T) {
	b := NewBus(nil)
	even := Condition[ping](func(ev ping) bool { return ev.n%2 == 0 })
	big := Condition[ping](func(ev ping) bool { return ev.n > 10 })

	Register(b,
		Rule[ping]{Name: "all", When: All(even, big), Then: func(ping) {}},
		Rule[ping]{Name: "nil action skipped"},
	)
	require.Equal(t, 1, RuleCount[ping](b))
	assert.Equal(t, 0, RuleCount[pong](b))

	assert.True(t, All(even, big)(ping{12}))
	assert.False(t, All(even, big)(ping{4}))
	assert.True(t, Any(even, big)(ping{4}))
	assert.False(t, Any(even, big)(ping{3}))
	assert.True(t, Not(even)(ping{3}))
}
