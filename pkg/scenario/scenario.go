package scenario

import (
	"github.com/matzehuels/buttonhalo/pkg/control"
	"github.com/matzehuels/buttonhalo/pkg/geom"
)

// Limits enforced by Validate.
const (
	MaxDisplayEdge = 65536
	MaxControls    = 256
	MaxControlSize = 512
	MaxDragSteps   = 10000
)

// DefaultLabels names the tool buttons of a capture overlay, in the order
// they are placed.
var DefaultLabels = []string{
	"pencil", "line", "arrow", "selection", "rectangle", "circle",
	"marker", "text", "pixelate", "move", "undo", "redo",
	"copy", "save", "exit",
}

// Rect is a rectangle as written in scenario files.
type Rect struct {
	X      int `toml:"x" yaml:"x" json:"x"`
	Y      int `toml:"y" yaml:"y" json:"y"`
	Width  int `toml:"width" yaml:"width" json:"width"`
	Height int `toml:"height" yaml:"height" json:"height"`
}

// FromGeom converts a geom.Rect.
func FromGeom(r geom.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

// Geom converts to a geom.Rect.
func (r Rect) Geom() geom.Rect { return geom.R(r.X, r.Y, r.Width, r.Height) }

// Controls describes the control set. Count may be omitted when labels
// are given; the set has max(Count, len(Labels)) controls.
type Controls struct {
	Count  int      `toml:"count,omitempty" yaml:"count,omitempty" json:"count,omitempty"`
	Size   int      `toml:"size" yaml:"size" json:"size"`
	Labels []string `toml:"labels,omitempty" yaml:"labels,omitempty" json:"labels,omitempty"`
}

// Len returns the number of controls.
func (c Controls) Len() int { return max(c.Count, len(c.Labels)) }

// Step is one frame of a drag path, relative to the previous frame.
type Step struct {
	DX int `toml:"dx" yaml:"dx" json:"dx"`
	DY int `toml:"dy" yaml:"dy" json:"dy"`
	DW int `toml:"dw,omitempty" yaml:"dw,omitempty" json:"dw,omitempty"`
	DH int `toml:"dh,omitempty" yaml:"dh,omitempty" json:"dh,omitempty"`
}

// Scenario is a complete placement input.
type Scenario struct {
	Name       string   `toml:"name" yaml:"name" json:"name"`
	Display    Rect     `toml:"display" yaml:"display" json:"display"`
	Selection  Rect     `toml:"selection" yaml:"selection" json:"selection"`
	Controls   Controls `toml:"controls" yaml:"controls" json:"controls"`
	LegacyWrap bool     `toml:"legacy_wrap" yaml:"legacy_wrap" json:"legacy_wrap"`
	Drag       []Step   `toml:"drag,omitempty" yaml:"drag,omitempty" json:"drag,omitempty"`
}

// Default returns a centred selection on a full HD display with eight
// tool buttons.
func Default() *Scenario {
	return &Scenario{
		Name:      "default",
		Display:   Rect{Width: 1920, Height: 1080},
		Selection: Rect{X: 760, Y: 390, Width: 400, Height: 300},
		Controls: Controls{
			Size:   control.DefaultSize,
			Labels: append([]string(nil), DefaultLabels[:8]...),
		},
	}
}

// Buttons builds the control set.
func (s *Scenario) Buttons() []*control.Button {
	return control.NewSet(s.Controls.Len(), s.Controls.Size, s.Controls.Labels)
}

// Frames returns the selection for every frame of the drag path, starting
// with the initial selection. Sizes never drop below zero.
func (s *Scenario) Frames() []geom.Rect {
	frames := make([]geom.Rect, 0, len(s.Drag)+1)
	cur := s.Selection.Geom()
	frames = append(frames, cur)
	for _, st := range s.Drag {
		cur = geom.R(cur.X+st.DX, cur.Y+st.DY, max(cur.W+st.DW, 0), max(cur.H+st.DH, 0))
		frames = append(frames, cur)
	}
	return frames
}
