package placement

import (
	"errors"
	"fmt"

	"github.com/matzehuels/buttonhalo/pkg/geom"
)

// Handler positions and shows a set of controls as a unit.
//
// A Handler is driven from a single UI goroutine; it is not safe for
// concurrent use.
type Handler struct {
	bounds   geom.Rect
	cfg      config
	controls []Control
	engine   *Engine
	inside   bool
	last     Result
}

// NewHandler returns a handler with no controls for the given display bound.
func NewHandler(bounds geom.Rect, opts ...Option) *Handler {
	cfg := newConfig(opts)
	return &Handler{
		bounds: bounds,
		cfg:    cfg,
		engine: newEngine(bounds, 1, cfg),
	}
}

// NewHandlerWithControls returns a handler that owns controls.
func NewHandlerWithControls(controls []Control, bounds geom.Rect, opts ...Option) *Handler {
	h := NewHandler(bounds, opts...)
	// A fresh handler has nothing to close, so SetControls cannot fail here.
	_ = h.SetControls(controls)
	return h
}

// SetControls replaces the control set. An empty set is ignored. Otherwise
// every current control is closed, the new set is adopted, and the footprint
// is read from its first control. Close errors are joined and returned; the
// new set is adopted regardless.
func (h *Handler) SetControls(controls []Control) error {
	if len(controls) == 0 {
		return nil
	}

	var errs []error
	for i, c := range h.controls {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close control %d: %w", i, err))
		}
	}

	h.controls = append([]Control(nil), controls...)
	h.engine = newEngine(h.bounds, controls[0].Footprint(), h.cfg)
	h.cfg.logger.Debug("adopted controls",
		"count", len(h.controls),
		"footprint", h.engine.Footprint(),
		"closed_errors", len(errs))

	return errors.Join(errs...)
}

// UpdatePosition moves every control to its place around selection.
func (h *Handler) UpdatePosition(selection geom.Rect) {
	h.inside = false
	if len(h.controls) == 0 {
		return
	}

	h.last = h.engine.Place(selection, len(h.controls))
	for i, p := range h.last.Positions {
		h.controls[i].Move(p)
	}
	h.inside = h.last.Inside
}

// Hide hides every control.
func (h *Handler) Hide() {
	for _, c := range h.controls {
		c.Hide()
	}
}

// Show shows every control with its animation. It does nothing when the set
// is empty or the first control is already visible.
func (h *Handler) Show() {
	if len(h.controls) == 0 || h.controls[0].IsVisible() {
		return
	}
	for _, c := range h.controls {
		c.AnimatedShow()
	}
}

// IsVisible reports whether every control is visible.
func (h *Handler) IsVisible() bool {
	for _, c := range h.controls {
		if !c.IsVisible() {
			return false
		}
	}
	return true
}

// ButtonsAreInside reports whether the last UpdatePosition packed controls
// inside the selection.
func (h *Handler) ButtonsAreInside() bool { return h.inside }

// Size returns the number of controls.
func (h *Handler) Size() int { return len(h.controls) }

// Controls returns the current controls in placement order.
func (h *Handler) Controls() []Control {
	return append([]Control(nil), h.controls...)
}

// Bounds returns the display bound.
func (h *Handler) Bounds() geom.Rect { return h.bounds }

// Engine returns the engine configured for the current control set.
func (h *Handler) Engine() *Engine { return h.engine }

// LastResult returns the placement computed by the last UpdatePosition.
func (h *Handler) LastResult() Result { return h.last }

// Contains reports whether p falls inside the box spanned by the first and
// last control, padded by Separation before them and by one extended
// footprint after them. It returns false when there are no controls.
func (h *Handler) Contains(p geom.Point) bool {
	if len(h.controls) == 0 {
		return false
	}
	first := h.controls[0].Position()
	last := h.controls[len(h.controls)-1].Position()

	topLeft := geom.Pt(min(first.X, last.X)-Separation, min(first.Y, last.Y)-Separation)
	ext := h.engine.Extended()
	bottomRight := geom.Pt(max(first.X, last.X)+ext, max(first.Y, last.Y)+ext)

	return geom.FromCorners(topLeft, bottomRight).Contains(p)
}
