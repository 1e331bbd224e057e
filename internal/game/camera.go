package game

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Camera maps world coordinates (origin at the field center, y up) onto a
// grid of screen cells (origin top-left, y down).
type Camera struct {
	FieldW, FieldH float64
	Cols, Rows     int
}

// NewCamera creates a camera over a field of the given size.
func NewCamera(fieldW, fieldH float64) Camera {
	return Camera{FieldW: fieldW, FieldH: fieldH}
}

// Viewport returns a copy of the camera targeting a cols×rows screen.
func (c Camera) Viewport(cols, rows int) Camera {
	c.Cols, c.Rows = cols, rows
	return c
}

// Project returns the fractional cell coordinates of p.
func (c Camera) Project(p core.Vec2) (x, y float64) {
	if c.FieldW <= 0 || c.FieldH <= 0 {
		return 0, 0
	}
	x = (p.X + c.FieldW/2) / c.FieldW * float64(c.Cols)
	y = (c.FieldH/2 - p.Y) / c.FieldH * float64(c.Rows)
	return x, y
}

// Cell returns the cell containing p.
func (c Camera) Cell(p core.Vec2) (int, int) {
	x, y := c.Project(p)
	return int(math.Floor(x)), int(math.Floor(y))
}

// Rect returns the cells covered by b. Boxes thinner than a cell still cover one.
func (c Camera) Rect(b core.Box) core.Rect {
	x0, y0 := c.Project(core.V(b.Center.X-b.Half.X, b.Center.Y+b.Half.Y))
	x1, y1 := c.Project(core.V(b.Center.X+b.Half.X, b.Center.Y-b.Half.Y))
	left, top := int(math.Round(x0)), int(math.Round(y0))
	right, bottom := int(math.Round(x1)), int(math.Round(y1))
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}
	return core.NewRect(left, top, right-left, bottom-top)
}

// UnitsPerCol returns how many world units one screen column spans.
func (c Camera) UnitsPerCol() float64 {
	if c.Cols <= 0 {
		return 0
	}
	return c.FieldW / float64(c.Cols)
}
