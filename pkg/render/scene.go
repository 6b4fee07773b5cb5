package render

import (
	"github.com/matzehuels/buttonhalo/pkg/control"
	"github.com/matzehuels/buttonhalo/pkg/geom"
	"github.com/matzehuels/buttonhalo/pkg/placement"
)

// Scene is one placement ready for rendering.
type Scene struct {
	Name      string
	Display   geom.Rect
	Selection geom.Rect
	Footprint int
	Controls  []Control
	Inside    bool
	Rounds    []placement.Round
}

// Control is a placed control.
type Control struct {
	ID       string
	Label    string
	Position geom.Point
}

// Bounds returns the square the control covers.
func (c Control) Bounds(footprint int) geom.Rect {
	return geom.R(c.Position.X, c.Position.Y, footprint, footprint)
}

// NewScene captures buttons after a placement. The buttons must be the set
// the result was computed for.
func NewScene(name string, display, selection geom.Rect, buttons []*control.Button, res placement.Result) Scene {
	s := Scene{
		Name:      name,
		Display:   display,
		Selection: selection,
		Inside:    res.Inside,
		Rounds:    res.Rounds,
		Controls:  make([]Control, len(buttons)),
	}
	if len(buttons) > 0 {
		s.Footprint = buttons[0].Footprint()
	}
	for i, b := range buttons {
		s.Controls[i] = Control{ID: b.ID(), Label: b.Label(), Position: b.Position()}
	}
	return s
}

// Extent returns the smallest rectangle holding the selection, every
// control, and every working area.
func (s Scene) Extent() geom.Rect {
	lo, hi := s.Selection.TopLeft(), s.Selection.BottomRight()
	grow := func(r geom.Rect) {
		if r.IsEmpty() {
			return
		}
		lo = geom.Pt(min(lo.X, r.Left()), min(lo.Y, r.Top()))
		hi = geom.Pt(max(hi.X, r.Right()), max(hi.Y, r.Bottom()))
	}
	for _, c := range s.Controls {
		grow(c.Bounds(s.Footprint))
	}
	for _, r := range s.Rounds {
		grow(r.Area)
	}
	return geom.FromCorners(lo, hi)
}
