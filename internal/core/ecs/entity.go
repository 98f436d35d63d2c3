package ecs

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on release to invalidate stale refs.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// Entity is anything participating in the simulation.
type Entity interface {
	ID() EntityID
	Tags() Tags
}

// Updatable entities are advanced once per tick.
type Updatable interface {
	Update(dt time.Duration)
}

// Body is an entity with a position and a circular collision extent.
type Body interface {
	Entity
	Position() mgl64.Vec2
	Radius() float64
}

// Destructible reports the soft-destroyed state of an entity.
// Destroyed bodies stop taking part in collision checks.
type Destructible interface {
	Destroyed() bool
}

// Tags is a free-form set of capability labels.
type Tags map[string]struct{}

func NewTags(tags ...string) Tags {
	t := make(Tags, len(tags))
	for _, tag := range tags {
		t[tag] = struct{}{}
	}
	return t
}

func (t Tags) Has(tag string) bool {
	_, ok := t[tag]
	return ok
}

// IDPool manages entity id allocation with generational indices and a free list.
type IDPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewIDPool() *IDPool {
	return &IDPool{
		generations: make([]uint32, 1, 256),
		freeList:    make([]uint32, 0, 64),
		nextIndex:   1, // index 0 is reserved so the zero EntityID is never handed out
	}
}

func (p *IDPool) Next() EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return NewEntityID(idx, p.generations[idx])
}

func (p *IDPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Release returns an id's index to the free list. Stale or unknown ids are ignored.
func (p *IDPool) Release(id EntityID) {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return
	}
	if p.generations[idx] != id.Generation() {
		return // already released (stale reference)
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}

// Track is a no-op; ids are allocated by Next, not by World membership.
func (p *IDPool) Track(Entity) {}

// Untrack releases the id of an entity that left the World.
func (p *IDPool) Untrack(id EntityID) { p.Release(id) }
