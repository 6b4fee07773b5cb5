package geom

import "fmt"

// Rect is an axis-aligned rectangle with inclusive right and bottom edges.
// The zero value is an empty rectangle at the origin.
type Rect struct {
	X, Y int
	W, H int
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// FromCorners returns the rectangle spanning both corners, inclusive.
// The corners may be given in any order.
func FromCorners(a, b Point) Rect {
	x0, x1 := min(a.X, b.X), max(a.X, b.X)
	y0, y1 := min(a.Y, b.Y), max(a.Y, b.Y)
	return Rect{X: x0, Y: y0, W: x1 - x0 + 1, H: y1 - y0 + 1}
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() int { return r.X }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() int { return r.Y }

// Right returns the x coordinate of the right edge (inclusive).
func (r Rect) Right() int { return r.X + r.W - 1 }

// Bottom returns the y coordinate of the bottom edge (inclusive).
func (r Rect) Bottom() int { return r.Y + r.H - 1 }

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point { return Point{X: r.X, Y: r.Y} }

// BottomRight returns the bottom-right corner (inclusive).
func (r Rect) BottomRight() Point { return Point{X: r.Right(), Y: r.Bottom()} }

// Center returns the midpoint of the inclusive edges, truncated toward zero.
func (r Rect) Center() Point {
	return Point{X: (r.Left() + r.Right()) / 2, Y: (r.Top() + r.Bottom()) / 2}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// SetLeft moves the left edge to x, keeping the right edge fixed.
func (r *Rect) SetLeft(x int) {
	r.W += r.X - x
	r.X = x
}

// SetTop moves the top edge to y, keeping the bottom edge fixed.
func (r *Rect) SetTop(y int) {
	r.H += r.Y - y
	r.Y = y
}

// SetWidth resizes the rectangle keeping the left edge fixed.
func (r *Rect) SetWidth(w int) { r.W = w }

// SetHeight resizes the rectangle keeping the top edge fixed.
func (r *Rect) SetHeight(h int) { r.H = h }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Normalized returns r with a non-negative width and height. A negative
// width means the right edge lies left of X; the edges are swapped so that
// the same pixels are covered. Height is handled the same way.
func (r Rect) Normalized() Rect {
	if r.W < 0 {
		right := r.Right()
		r.W = r.X - right + 1
		r.X = right
	}
	if r.H < 0 {
		bottom := r.Bottom()
		r.H = r.Y - bottom + 1
		r.Y = bottom
	}
	return r
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	if r.IsEmpty() {
		return false
	}
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Intersects reports whether r and o share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Left() <= o.Right() && o.Left() <= r.Right() &&
		r.Top() <= o.Bottom() && o.Top() <= r.Bottom()
}

// String formats the rectangle as "x,y wxh".
func (r Rect) String() string { return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.W, r.H) }
