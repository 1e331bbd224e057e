// Package ecs is a small single-threaded entity-component store.
// Entities are generational indices into an arena, so a stale id never
// aliases an entity spawned later in the same slot.
package ecs

import "fmt"

// Entity is an opaque id: slot index in the low 32 bits, generation in the high 32.
type Entity uint64

// None is never returned by Spawn.
const None Entity = 0

func makeEntity(index, gen uint32) Entity {
	return Entity(uint64(gen)<<32 | uint64(index))
}

// Index returns the arena slot.
func (e Entity) Index() uint32 { return uint32(e) }

// Generation returns the slot generation the id was issued with.
func (e Entity) Generation() uint32 { return uint32(e >> 32) }

func (e Entity) String() string {
	return fmt.Sprintf("e%d.%d", e.Index(), e.Generation())
}

type componentStore interface {
	remove(e Entity)
}

// World owns entity lifetimes and every component store created against it.
type World struct {
	gens   []uint32 // current generation per slot, starts at 1
	alive  []bool
	free   []uint32
	count  int
	stores []componentStore
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// Spawn allocates a new entity.
func (w *World) Spawn() Entity {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.gens))
		w.gens = append(w.gens, 1)
		w.alive = append(w.alive, false)
	}
	w.alive[idx] = true
	w.count++
	return makeEntity(idx, w.gens[idx])
}

// Alive reports whether e refers to a live entity.
func (w *World) Alive(e Entity) bool {
	idx := e.Index()
	return int(idx) < len(w.gens) && w.alive[idx] && w.gens[idx] == e.Generation()
}

// Despawn removes e and all of its components.
// It returns false if e was already despawned, so removal happens at most once.
func (w *World) Despawn(e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	idx := e.Index()
	w.alive[idx] = false
	w.gens[idx]++
	w.free = append(w.free, idx)
	w.count--
	return true
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.count
}
