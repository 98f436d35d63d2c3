package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type probe struct {
	name string
	prio Priority
	log  *[]string
	dt   time.Duration
}

func (p *probe) Priority() Priority { return p.prio }
func (p *probe) Update(dt time.Duration) {
	p.dt = dt
	*p.log = append(*p.log, p.name)
}

func TestRunner_DescendingPriority(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&probe{name: "commit", prio: PriorityCommit, log: &log})
	r.Register(&probe{name: "dispatch", prio: PriorityDispatch, log: &log})
	r.Register(&probe{name: "update", prio: PriorityUpdate, log: &log})
	r.Register(&probe{name: "collision", prio: PriorityCollision, log: &log})

	r.Tick(16 * time.Millisecond)
	assert.Equal(t, []string{"update", "collision", "dispatch", "commit"}, log)
}

func TestRunner_TiesKeepRegistrationOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	for _, name := range []string{"a", "b", "c"} {
		r.Register(&probe{name: name, prio: 10, log: &log})
	}
	r.Register(&probe{name: "first", prio: 20, log: &log})

	r.Tick(time.Millisecond)
	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"first", "a", "b", "c", "first", "a", "b", "c"}, log)
}

func TestRunner_PassesElapsedTime(t *testing.T) {
	var log []string
	p := &probe{name: "p", log: &log}
	r := NewRunner()
	r.Register(p)

	r.Tick(33 * time.Millisecond)
	assert.Equal(t, 33*time.Millisecond, p.dt)
	assert.Len(t, r.Systems(), 1)
}
