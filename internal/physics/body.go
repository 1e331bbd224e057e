// Package physics is a minimal 2D rigid-body service: it integrates dynamic
// bodies under gravity and reports when pairs of bodies begin to overlap.
// Shapes and intersection tests come from resolv. Contacts are detected,
// not resolved.
package physics

import (
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/ecs"
)

// BodyKind selects how a body moves.
type BodyKind int

const (
	Dynamic   BodyKind = iota // Integrated from velocity and gravity
	Kinematic                 // Moved by the caller through SetPosition
	Fixed                     // Never moves
)

// String returns a human-readable name for the kind.
func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// ShapeKind identifies a collider shape.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
)

// Shape is a collider centered on its body position.
type Shape struct {
	Kind   ShapeKind
	Radius float64 // ShapeCircle
	HalfW  float64 // ShapeBox
	HalfH  float64 // ShapeBox
}

// Circle returns a circle collider.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Cuboid returns a box collider from half extents.
func Cuboid(halfW, halfH float64) Shape {
	return Shape{Kind: ShapeBox, HalfW: halfW, HalfH: halfH}
}

// Group is a collision group bit.
type Group uint32

const (
	GroupPlayer Group = 1 << iota
	GroupLethal
	GroupOpening
)

// Groups pairs a body's own membership with the groups it can touch.
type Groups struct {
	Membership Group
	Filter     Group
}

// Interacts reports whether two bodies with these groups produce contacts.
func (g Groups) Interacts(o Groups) bool {
	return g.Membership&o.Filter != 0 && o.Membership&g.Filter != 0
}

// BodyDef describes a body to register.
type BodyDef struct {
	Kind         BodyKind
	Shape        Shape
	Position     core.Vec2
	Velocity     core.Vec2
	GravityScale float64
	Groups       Groups
	LockX        bool // Horizontal velocity is held at zero
}

// The resolv grid only covers non-negative coordinates, so world positions
// are shifted by spaceOrigin. Bodies outside the grid report no contacts.
const (
	spaceExtent = 8192
	spaceOrigin = spaceExtent / 2
	cellSize    = 64
)

// positioner is implemented by both resolv shapes used here.
type positioner interface {
	SetPosition(x, y float64)
}

type body struct {
	BodyDef
	obj   *resolv.Object
	shape positioner
}

func newBody(e ecs.Entity, def BodyDef) *body {
	w, h := def.Shape.size()
	obj := resolv.NewObject(0, 0, w, h, def.Kind.String())
	obj.Data = e

	b := &body{BodyDef: def, obj: obj}
	if def.Shape.Kind == ShapeCircle {
		c := resolv.NewCircle(0, 0, def.Shape.Radius)
		obj.SetShape(c)
		b.shape = c
	} else {
		r := resolv.NewRectangle(0, 0, w, h)
		obj.SetShape(r)
		b.shape = r
	}
	return b
}

// size returns the bounding width and height of the shape.
func (s Shape) size() (w, h float64) {
	if s.Kind == ShapeCircle {
		return 2 * s.Radius, 2 * s.Radius
	}
	return 2 * s.HalfW, 2 * s.HalfH
}

// sync moves the resolv object and its shape to the body position.
// Circles are placed by center, rectangles by their min corner.
func (b *body) sync() {
	b.obj.X = b.Position.X - b.obj.W/2 + spaceOrigin
	b.obj.Y = b.Position.Y - b.obj.H/2 + spaceOrigin
	b.obj.Update()
	if b.Shape.Kind == ShapeCircle {
		b.shape.SetPosition(b.Position.X+spaceOrigin, b.Position.Y+spaceOrigin)
	} else {
		b.shape.SetPosition(b.obj.X, b.obj.Y)
	}
}

// intersects runs the resolv narrow phase between two synced bodies.
func (b *body) intersects(o *body) bool {
	return b.obj.Shape.Intersection(0, 0, o.obj.Shape) != nil
}
