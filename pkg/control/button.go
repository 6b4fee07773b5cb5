// Package control provides a headless control for the placement handler.
//
// A [Button] records what a widget toolkit would do with a tool button:
// where it was moved, whether it is shown, how often its show animation ran,
// and whether it was disposed. The CLI, the HTTP server and the renderers use
// it in place of real widgets.
package control

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/buttonhalo/pkg/geom"
)

// DefaultSize is the footprint of a tool button in pixels.
const DefaultSize = 24

// ErrClosed is returned when a button is closed twice.
var ErrClosed = errors.New("control: already closed")

// Button is a square control with a label.
type Button struct {
	id      uuid.UUID
	label   string
	size    int
	pos     geom.Point
	visible bool
	shows   int
	closed  bool
}

// NewButton returns a hidden button at the origin.
func NewButton(label string, size int) *Button {
	return &Button{
		id:    uuid.New(),
		label: label,
		size:  size,
	}
}

// NewSet returns count buttons of the given size. Labels are taken from
// labels in order; missing labels become "button-<index>".
func NewSet(count, size int, labels []string) []*Button {
	set := make([]*Button, count)
	for i := range set {
		label := fmt.Sprintf("button-%d", i)
		if i < len(labels) {
			label = labels[i]
		}
		set[i] = NewButton(label, size)
	}
	return set
}

// ID returns the button's unique identifier.
func (b *Button) ID() string { return b.id.String() }

// Label returns the display label.
func (b *Button) Label() string { return b.label }

// Footprint returns the button edge length.
func (b *Button) Footprint() int { return b.size }

// Position returns the top-left corner.
func (b *Button) Position() geom.Point { return b.pos }

// Bounds returns the area the button covers.
func (b *Button) Bounds() geom.Rect {
	return geom.R(b.pos.X, b.pos.Y, b.size, b.size)
}

// Move places the top-left corner at p.
func (b *Button) Move(p geom.Point) { b.pos = p }

// IsVisible reports whether the button is shown.
func (b *Button) IsVisible() bool { return b.visible }

// Hide hides the button immediately.
func (b *Button) Hide() { b.visible = false }

// AnimatedShow shows the button and counts the animation.
func (b *Button) AnimatedShow() {
	b.visible = true
	b.shows++
}

// Shows returns how many times the show animation ran.
func (b *Button) Shows() int { return b.shows }

// Closed reports whether Close was called.
func (b *Button) Closed() bool { return b.closed }

// Close disposes of the button. Closing twice returns [ErrClosed].
func (b *Button) Close() error {
	if b.closed {
		return ErrClosed
	}
	b.closed = true
	b.visible = false
	return nil
}
