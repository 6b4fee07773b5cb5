package scenario

import (
	"fmt"

	"github.com/matzehuels/buttonhalo/pkg/errors"
)

// Validate checks the scenario and returns the first problem found as a
// coded error.
func (s *Scenario) Validate() error {
	code := errors.ErrCodeInvalidScenario

	if err := errors.ValidateRange(code, "display.width", s.Display.Width, 1, MaxDisplayEdge); err != nil {
		return err
	}
	if err := errors.ValidateRange(code, "display.height", s.Display.Height, 1, MaxDisplayEdge); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    int
	}{
		{"display.x", s.Display.X},
		{"display.y", s.Display.Y},
		{"selection.x", s.Selection.X},
		{"selection.y", s.Selection.Y},
	} {
		if err := errors.ValidateRange(code, f.name, f.v, -MaxDisplayEdge, MaxDisplayEdge); err != nil {
			return err
		}
	}
	if s.Selection.Width < 0 || s.Selection.Height < 0 {
		return errors.New(code, "selection size %dx%d is negative", s.Selection.Width, s.Selection.Height)
	}
	if err := errors.ValidateRange(code, "selection.width", s.Selection.Width, 0, MaxDisplayEdge); err != nil {
		return err
	}
	if err := errors.ValidateRange(code, "selection.height", s.Selection.Height, 0, MaxDisplayEdge); err != nil {
		return err
	}

	n := s.Controls.Len()
	if n == 0 {
		return errors.New(errors.ErrCodeEmptyControlSet, "scenario %q has no controls", s.Name)
	}
	if err := errors.ValidateRange(code, "controls.count", n, 1, MaxControls); err != nil {
		return err
	}
	if err := errors.ValidateRange(code, "controls.size", s.Controls.Size, 1, MaxControlSize); err != nil {
		return err
	}
	for i, label := range s.Controls.Labels {
		if err := errors.ValidateLabel(label); err != nil {
			return errors.Wrap(code, err, "controls.labels[%d]", i)
		}
	}

	if len(s.Drag) > MaxDragSteps {
		return errors.New(code, "drag path has %d steps (max %d)", len(s.Drag), MaxDragSteps)
	}
	for i, st := range s.Drag {
		for _, d := range []int{st.DX, st.DY, st.DW, st.DH} {
			if d < -MaxDisplayEdge || d > MaxDisplayEdge {
				return errors.New(code, "drag[%d] moves %d px (max %d)", i, d, MaxDisplayEdge)
			}
		}
	}
	return nil
}

// String summarises the scenario for log lines.
func (s *Scenario) String() string {
	return fmt.Sprintf("%s: %d controls of %dpx, selection %v on %dx%d",
		s.Name, s.Controls.Len(), s.Controls.Size, s.Selection.Geom(), s.Display.Width, s.Display.Height)
}
