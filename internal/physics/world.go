package physics

import (
	"fmt"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
)

// Contact names two bodies whose colliders began overlapping during a step.
// A is the body registered first.
type Contact struct {
	A, B ecs.Entity
}

// Involves returns the other body when e is one side of the contact.
func (c Contact) Involves(e ecs.Entity) (other ecs.Entity, ok bool) {
	switch e {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return ecs.None, false
}

type pairKey struct {
	lo, hi ecs.Entity
}

func keyOf(a, b ecs.Entity) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// World holds registered bodies keyed by entity.
type World struct {
	gravity core.Vec2
	space   *resolv.Space
	bodies  map[ecs.Entity]*body
	order   []ecs.Entity
	active  map[pairKey]struct{} // pairs overlapping at the end of the last step
}

// NewWorld creates an empty physics world with the given gravity.
func NewWorld(gravity core.Vec2) *World {
	return &World{
		gravity: gravity,
		space:   resolv.NewSpace(spaceExtent, spaceExtent, cellSize, cellSize),
		bodies:  make(map[ecs.Entity]*body),
		active:  make(map[pairKey]struct{}),
	}
}

// Add registers a body for e.
func (w *World) Add(e ecs.Entity, def BodyDef) error {
	if _, exists := w.bodies[e]; exists {
		return fmt.Errorf("physics: body %v already registered", e)
	}
	b := newBody(e, def)
	w.space.Add(b.obj)
	b.sync()
	w.bodies[e] = b
	w.order = append(w.order, e)
	return nil
}

// Remove unregisters e and forgets its tracked contacts.
func (w *World) Remove(e ecs.Entity) bool {
	b, ok := w.bodies[e]
	if !ok {
		return false
	}
	w.space.Remove(b.obj)
	delete(w.bodies, e)
	for i, id := range w.order {
		if id == e {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	for k := range w.active {
		if k.lo == e || k.hi == e {
			delete(w.active, k)
		}
	}
	return true
}

// Has reports whether e has a body.
func (w *World) Has(e ecs.Entity) bool {
	_, ok := w.bodies[e]
	return ok
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Position returns the body position.
func (w *World) Position(e ecs.Entity) (core.Vec2, bool) {
	if b, ok := w.bodies[e]; ok {
		return b.Position, true
	}
	return core.Vec2{}, false
}

// SetPosition teleports a body.
func (w *World) SetPosition(e ecs.Entity, p core.Vec2) {
	if b, ok := w.bodies[e]; ok {
		b.Position = p
		b.sync()
	}
}

// Velocity returns the body velocity.
func (w *World) Velocity(e ecs.Entity) (core.Vec2, bool) {
	if b, ok := w.bodies[e]; ok {
		return b.Velocity, true
	}
	return core.Vec2{}, false
}

// SetVelocity sets the body velocity.
func (w *World) SetVelocity(e ecs.Entity, v core.Vec2) {
	if b, ok := w.bodies[e]; ok {
		if b.LockX {
			v.X = 0
		}
		b.Velocity = v
	}
}

// GravityScale returns the gravity multiplier of a body.
func (w *World) GravityScale(e ecs.Entity) (float64, bool) {
	if b, ok := w.bodies[e]; ok {
		return b.GravityScale, true
	}
	return 0, false
}

// SetGravityScale sets the gravity multiplier of a body.
func (w *World) SetGravityScale(e ecs.Entity, s float64) {
	if b, ok := w.bodies[e]; ok {
		b.GravityScale = s
	}
}

// Step integrates dynamic bodies over dt seconds and returns the contacts
// that began during this step, in registration order. A pair is reported
// again only after it has stopped overlapping for at least one step.
func (w *World) Step(dt float64) []Contact {
	for _, e := range w.order {
		b := w.bodies[e]
		if b.Kind != Dynamic {
			continue
		}
		b.Velocity = b.Velocity.Add(w.gravity.Scale(b.GravityScale * dt))
		if b.LockX {
			b.Velocity.X = 0
		}
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		b.sync()
	}

	nearby := make(map[ecs.Entity]map[*resolv.Object]struct{})
	near := func(dyn, other *body) bool {
		e := dyn.obj.Data.(ecs.Entity)
		set, ok := nearby[e]
		if !ok {
			set = make(map[*resolv.Object]struct{})
			if c := dyn.obj.Check(0, 0); c != nil {
				for _, o := range c.Objects {
					set[o] = struct{}{}
				}
			}
			nearby[e] = set
		}
		_, found := set[other.obj]
		return found
	}

	var began []Contact
	next := make(map[pairKey]struct{}, len(w.active))
	for i, ea := range w.order {
		a := w.bodies[ea]
		for _, eb := range w.order[i+1:] {
			b := w.bodies[eb]
			if !a.Groups.Interacts(b.Groups) {
				continue
			}
			switch {
			case a.Kind == Dynamic:
				if !near(a, b) {
					continue
				}
			case b.Kind == Dynamic:
				if !near(b, a) {
					continue
				}
			default:
				continue
			}
			if !a.intersects(b) {
				continue
			}
			k := keyOf(ea, eb)
			next[k] = struct{}{}
			if _, was := w.active[k]; !was {
				began = append(began, Contact{A: ea, B: eb})
			}
		}
	}
	w.active = next
	return began
}
