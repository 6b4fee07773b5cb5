// Package geom provides the integer screen geometry used by the placement
// engine.
//
// # Edge Convention
//
// A [Rect] is stored as its top-left corner plus a width and height, but its
// right and bottom edges are inclusive pixel coordinates:
//
//	Right()  == X + W - 1
//	Bottom() == Y + H - 1
//
// This matches how desktop toolkits address pixels and is what the button
// arithmetic in [placement] is written against. A 100x100 rectangle at the
// origin has Right() == 99, and its Center() is (49, 49).
//
// # Edge Setters
//
// [Rect.SetLeft] and [Rect.SetTop] move one edge while keeping the opposite
// edge fixed, so they change the size. [Rect.SetWidth] and [Rect.SetHeight]
// keep the top-left corner fixed. Growing a selection outward on one side is
// therefore a single call:
//
//	r.SetLeft(r.Left() - 30) // right edge unchanged, width grows by 30
//
// [placement]: github.com/matzehuels/buttonhalo/pkg/placement
package geom
