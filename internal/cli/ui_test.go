package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/buttonhalo/pkg/geom"
	"github.com/matzehuels/buttonhalo/pkg/render"
)

func TestPrinterStats(t *testing.T) {
	tests := []struct {
		name           string
		inside, cached bool
		want           []string
		notWant        string
	}{
		{"fresh outside", false, false, []string{"8 controls", "2 rounds", "fresh"}, "inside"},
		{"cached inside", true, true, []string{"inside", "cached"}, "fresh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newPrinter(&buf).stats(8, 2, tt.inside, tt.cached)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("stats output = %q, want %q", out, w)
				}
			}
			if strings.Contains(out, tt.notWant) {
				t.Errorf("stats output = %q, should not contain %q", out, tt.notWant)
			}
		})
	}
}

func TestPrinterWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf)
	p.success("Rendered %s", "corner")
	p.failure("%s: broken", "bad.toml")
	p.file("out/halo.svg")
	p.nextStep("Place its controls", "buttonhalo layout halo.toml")

	out := buf.String()
	for _, want := range []string{"Rendered corner", "bad.toml: broken", "out/halo.svg", "buttonhalo layout halo.toml"} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, want %q", out, want)
		}
	}
}

func TestPositionsTable(t *testing.T) {
	scene := render.Scene{
		Footprint: 24,
		Controls: []render.Control{
			{Label: "pencil", Position: geom.Pt(507, 605)},
			{Label: "arrow", Position: geom.Pt(537, 605)},
		},
	}
	out := positionsTable(scene)
	for _, want := range []string{"Label", "Bottom-right", "pencil", "507", "530,628"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
