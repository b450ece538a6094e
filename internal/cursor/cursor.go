// Package cursor models a pointer decoration: a dot pinned to the pointer
// and a ring that trails it with exponential easing.
package cursor

import "math"

const DefaultEase = 0.14

type Point struct {
	X, Y float64
}

// Cursor tracks the pointer target, the lagging ring and the press/hover
// flags hosts use to restyle the decoration.
type Cursor struct {
	Dot     Point
	Ring    Point
	Pressed bool
	Hover   bool
	Visible bool

	ease float64
}

// New centers both dot and ring in a width x height viewport.
func New(width, height, ease float64) *Cursor {
	if ease <= 0 || ease > 1 {
		ease = DefaultEase
	}
	c := Point{X: width / 2, Y: height / 2}
	return &Cursor{Dot: c, Ring: c, ease: ease}
}

func (c *Cursor) Ease() float64 { return c.ease }

// Move places the dot under the pointer immediately.
func (c *Cursor) Move(x, y float64) {
	c.Dot = Point{X: x, Y: y}
	c.Visible = true
}

// Step advances the ring one frame toward the dot.
func (c *Cursor) Step() {
	c.Ring.X += (c.Dot.X - c.Ring.X) * c.ease
	c.Ring.Y += (c.Dot.Y - c.Ring.Y) * c.ease
}

// Lag is the distance between ring and dot.
func (c *Cursor) Lag() float64 {
	return math.Hypot(c.Dot.X-c.Ring.X, c.Dot.Y-c.Ring.Y)
}
