// Package sink writes a [render.Scene] in the supported output formats.
//
// # Formats
//
//   - SVG: [RenderSVG], hand written, no external dependencies
//   - PDF/PNG: [RenderPDF], [RenderPNG] (requires rsvg-convert)
//   - JSON: [RenderJSON], the document returned by the HTTP API
//   - DOT: [ToDOT] and [RenderDOTSVG] (Graphviz neato with pinned nodes)
//   - Text: [RenderText], a character grid for terminals
//
// # SVG Options
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithRings(),   // outline each working area
//	    sink.WithLabels(),  // print control labels
//	    sink.WithCrop(40),  // crop to the scene extent plus padding
//	)
//
// [render.Scene]: github.com/matzehuels/buttonhalo/pkg/render.Scene
package sink
