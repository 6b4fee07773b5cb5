package sink

import (
	"bytes"
	"context"
	"fmt"
	"html"

	"github.com/matzehuels/buttonhalo/pkg/geom"
	"github.com/matzehuels/buttonhalo/pkg/render"
)

const svgCSS = `
    .display { fill: #f4f4f5; stroke: #a1a1aa; }
    .selection { fill: rgba(59, 130, 246, 0.12); stroke: #3b82f6; stroke-width: 2; stroke-dasharray: 6 4; }
    .ring { fill: none; stroke: #f59e0b; stroke-width: 1; stroke-dasharray: 2 3; }
    .control { fill: #ffffff; stroke: #18181b; stroke-width: 1.5; }
    .control.inside { fill: #fee2e2; }
    .label { font: 9px sans-serif; fill: #18181b; text-anchor: middle; dominant-baseline: central; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	rings  bool
	labels bool
	crop   bool
	pad    int
}

// WithRings outlines the working area of every placement round.
func WithRings() SVGOption { return func(r *svgRenderer) { r.rings = true } }

// WithLabels prints each control's label under it.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithCrop limits the view to the scene extent plus pad pixels instead of
// the whole display.
func WithCrop(pad int) SVGOption {
	return func(r *svgRenderer) { r.crop, r.pad = true, max(pad, 0) }
}

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	view := s.Display
	if r.crop {
		e := s.Extent()
		view = geom.R(e.X-r.pad, e.Y-r.pad, e.W+2*r.pad, e.H+2*r.pad)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%d %d %d %d" width="%d" height="%d">`+"\n",
		view.X, view.Y, view.W, view.H, view.W, view.H)
	if s.Name != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(s.Name))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgCSS)

	writeRect(&buf, "display", "display", s.Display)
	if r.rings {
		for i, round := range s.Rounds {
			writeRect(&buf, fmt.Sprintf("ring-%d", i), "ring", round.Area)
		}
	}
	writeRect(&buf, "selection", "selection", s.Selection)

	class := "control"
	if s.Inside {
		class = "control inside"
	}
	radius := float64(s.Footprint) / 2
	for i, c := range s.Controls {
		cx := float64(c.Position.X) + radius
		cy := float64(c.Position.Y) + radius
		fmt.Fprintf(&buf, `  <circle id="control-%d" class="%s" cx="%.1f" cy="%.1f" r="%.1f" data-label="%s"/>`+"\n",
			i, class, cx, cy, radius, html.EscapeString(c.Label))
		if r.labels {
			fmt.Fprintf(&buf, `  <text class="label" x="%.1f" y="%.1f">%s</text>`+"\n",
				cx, cy+radius+8, html.EscapeString(c.Label))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeRect(buf *bytes.Buffer, id, class string, r geom.Rect) {
	fmt.Fprintf(buf, `  <rect id="%s" class="%s" x="%d" y="%d" width="%d" height="%d"/>`+"\n",
		id, class, r.X, r.Y, max(r.W, 0), max(r.H, 0))
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 1.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the scene as PNG via SVG conversion.
func RenderPNG(ctx context.Context, s render.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	return render.ToPNG(ctx, RenderSVG(s, r.svgOpts...), r.scale)
}

// RenderPDF renders the scene as PDF via SVG conversion.
func RenderPDF(ctx context.Context, s render.Scene, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(s, opts...))
}
