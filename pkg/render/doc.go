// Package render turns a placement into pictures and documents.
//
// # Overview
//
// A [Scene] is a snapshot of one placement: the display bound, the
// selection, every control with its label and position, and the per-round
// trace from the engine. Scenes are built with [NewScene] and handed to the
// output sinks in the [sink] subpackage:
//
//   - SVG: the display, the selection, expansion rings, and the controls
//   - JSON: the machine-readable document served by the HTTP API
//   - DOT: Graphviz source with pinned positions, rendered with neato
//   - Text: a character grid for terminal previews
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg):
//
//	svg := sink.RenderSVG(scene, sink.WithRings())
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/buttonhalo/pkg/render/sink
package render
