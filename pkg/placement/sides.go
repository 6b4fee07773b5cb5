package placement

import "strings"

// Sides records which edges of the working area are too close to the display
// bound to hold a row of controls.
type Sides struct {
	Left, Right, Top, Bottom bool
}

// OneHorizontal reports whether exactly one of left and right is blocked.
func (s Sides) OneHorizontal() bool { return s.Left != s.Right }

// Horizontal reports whether both left and right are blocked.
func (s Sides) Horizontal() bool { return s.Left && s.Right }

// All reports whether every side is blocked.
func (s Sides) All() bool { return s.Bottom && s.Horizontal() && s.Top }

// String lists the blocked sides, e.g. "left,top", or "none".
func (s Sides) String() string {
	var parts []string
	if s.Bottom {
		parts = append(parts, "bottom")
	}
	if s.Right {
		parts = append(parts, "right")
	}
	if s.Top {
		parts = append(parts, "top")
	}
	if s.Left {
		parts = append(parts, "left")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}
