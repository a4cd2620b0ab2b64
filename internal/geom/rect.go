// Package geom provides the rectangle and point types shared by the scene
// tree and the output lifecycle state machine.
package geom

import "fmt"

// Point represents an integer pixel position.
type Point struct {
	X, Y int
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Rect represents an axis-aligned pixel rectangle, expressed as the
// top-left corner plus width and height. X1/Y1/X2/Y2 name the corners the
// way the wayland compositor this is grounded on refers to them.
type Rect struct {
	X, Y, W, H int
}

// NewRect builds a Rect from a top-left corner and a size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// X1 returns the left edge.
func (r Rect) X1() int { return r.X }

// Y1 returns the top edge.
func (r Rect) Y1() int { return r.Y }

// X2 returns the right edge.
func (r Rect) X2() int { return r.X + r.W }

// Y2 returns the bottom edge.
func (r Rect) Y2() int { return r.Y + r.H }

// Position returns the rectangle's top-left corner.
func (r Rect) Position() Point {
	return Point{r.X, r.Y}
}

// Center returns the rectangle's midpoint, rounding toward the origin.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{r.X + d.X, r.Y + d.Y, r.W, r.H}
}

// WithPosition returns a copy of r moved to p, keeping width/height.
func (r Rect) WithPosition(p Point) Rect {
	return Rect{p.X, p.Y, r.W, r.H}
}

// Contains reports whether p falls within r (inclusive of the top-left
// edge, exclusive of the bottom-right edge, matching pixel semantics).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X1() && p.X < r.X2() && p.Y >= r.Y1() && p.Y < r.Y2()
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X1() < other.X2() && r.X2() > other.X1() &&
		r.Y1() < other.Y2() && r.Y2() > other.Y1()
}

// IsZero reports whether r has zero width and zero height; a rect with
// only one zero dimension is not zero.
func (r Rect) IsZero() bool {
	return r.W == 0 && r.H == 0
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect{%d,%d %dx%d}", r.X, r.Y, r.W, r.H)
}
