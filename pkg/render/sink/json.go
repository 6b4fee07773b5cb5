package sink

import (
	"encoding/json"

	"github.com/matzehuels/buttonhalo/pkg/render"
)

// jsonOutput is the JSON form of a scene.
type jsonOutput struct {
	Name      string        `json:"name,omitempty"`
	Display   jsonRect      `json:"display"`
	Selection jsonRect      `json:"selection"`
	Footprint int           `json:"footprint"`
	Inside    bool          `json:"inside"`
	Controls  []jsonControl `json:"controls"`
	Rounds    []jsonRound   `json:"rounds,omitempty"`
}

type jsonRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type jsonControl struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

type jsonRound struct {
	Area          jsonRect   `json:"area"`
	Blocked       string     `json:"blocked"`
	PerRow        int        `json:"per_row"`
	PerCol        int        `json:"per_col"`
	CornersTop    int        `json:"corners_top"`
	CornersBottom int        `json:"corners_bottom"`
	Placed        jsonPlaced `json:"placed"`
}

type jsonPlaced struct {
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Left   int `json:"left"`
	Inside int `json:"inside,omitempty"`
}

// JSONOption configures JSON rendering.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	rounds bool
	indent bool
}

// WithJSONRounds includes the per-round trace.
func WithJSONRounds() JSONOption { return func(r *jsonRenderer) { r.rounds = true } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// newJSONOutput converts a scene.
func newJSONOutput(s render.Scene, withRounds bool) jsonOutput {
	doc := jsonOutput{
		Name:      s.Name,
		Display:   toJSONRect(s.Display.X, s.Display.Y, s.Display.W, s.Display.H),
		Selection: toJSONRect(s.Selection.X, s.Selection.Y, s.Selection.W, s.Selection.H),
		Footprint: s.Footprint,
		Inside:    s.Inside,
		Controls:  make([]jsonControl, len(s.Controls)),
	}
	for i, c := range s.Controls {
		doc.Controls[i] = jsonControl{ID: c.ID, Label: c.Label, X: c.Position.X, Y: c.Position.Y}
	}
	if withRounds {
		for _, r := range s.Rounds {
			doc.Rounds = append(doc.Rounds, jsonRound{
				Area:          toJSONRect(r.Area.X, r.Area.Y, r.Area.W, r.Area.H),
				Blocked:       r.Sides.String(),
				PerRow:        r.PerRow,
				PerCol:        r.PerCol,
				CornersTop:    r.CornersTop,
				CornersBottom: r.CornersBottom,
				Placed: jsonPlaced{
					Bottom: r.Bottom, Right: r.Right, Top: r.Top, Left: r.Left, Inside: r.Inside,
				},
			})
		}
	}
	return doc
}

// RenderJSON renders the scene as JSON.
func RenderJSON(s render.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	doc := newJSONOutput(s, r.rounds)
	if r.indent {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func toJSONRect(x, y, w, h int) jsonRect {
	return jsonRect{X: x, Y: y, Width: w, Height: h}
}
