package placement

import "github.com/matzehuels/buttonhalo/pkg/geom"

// Control is a square on-screen button positioned by a [Handler].
//
// All controls handed to one Handler must report the same Footprint; the
// handler reads it from the first control only.
type Control interface {
	// Footprint returns the edge length of the control in pixels.
	Footprint() int

	// Position returns the current top-left corner.
	Position() geom.Point

	// Move sets the top-left corner.
	Move(p geom.Point)

	// IsVisible reports whether the control is currently shown.
	IsVisible() bool

	// Hide makes the control invisible immediately.
	Hide()

	// AnimatedShow makes the control visible, possibly with a transition.
	AnimatedShow()

	// Close releases the control. The handler calls it when the control is
	// replaced by SetControls.
	Close() error
}
