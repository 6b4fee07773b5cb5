package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/buttonhalo/pkg/geom"
	"github.com/matzehuels/buttonhalo/pkg/render"
)

// ToDOT converts a scene to Graphviz DOT. Every node carries a pinned
// position so neato draws the placement as computed; y is flipped because
// Graphviz grows upwards.
func ToDOT(s render.Scene) string {
	var buf bytes.Buffer
	buf.WriteString("graph placement {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, fixedsize=true, style=filled, fillcolor=white, fontsize=8];\n")
	buf.WriteString("\n")

	sel := s.Selection
	fmt.Fprintf(&buf, "  %q [shape=box, style=dashed, label=\"\", width=%s, height=%s, pos=\"%s!\"];\n",
		"selection", inches(sel.W), inches(sel.H), dotPos(s.Display, centerOf(sel)))

	for i, c := range s.Controls {
		center := geom.Pt(c.Position.X+s.Footprint/2, c.Position.Y+s.Footprint/2)
		fmt.Fprintf(&buf, "  %q [label=%q, width=%s, pos=\"%s!\"];\n",
			fmt.Sprintf("control-%d", i), c.Label, inches(s.Footprint), dotPos(s.Display, center))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func centerOf(r geom.Rect) geom.Point {
	return geom.Pt(r.X+r.W/2, r.Y+r.H/2)
}

func dotPos(display geom.Rect, p geom.Point) string {
	return fmt.Sprintf("%d,%d", p.X-display.X, display.Y+display.H-p.Y)
}

func inches(px int) string {
	return fmt.Sprintf("%.3f", float64(max(px, 1))/72)
}

// RenderDOTSVG renders DOT source to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
