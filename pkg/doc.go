// Package pkg holds the buttonhalo libraries.
//
// # Overview
//
// buttonhalo decides where a screen-capture overlay puts its tool buttons
// around the user's selection. The pkg directory is organized as:
//
//  1. [geom] - integer points and rectangles with inclusive edges
//  2. [placement] - the placement engine and the handler that drives controls
//  3. [control] - a headless button implementation
//  4. [scenario] - placement inputs read from TOML, YAML or JSON
//  5. [render] - scenes and output sinks (SVG, PNG, PDF, JSON, DOT, text)
//  6. [pipeline] - orchestration (scenario -> placement -> artifacts)
//  7. [cache], [config], [errors], [observability], [buildinfo] - infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Scenario file
//	     ↓
//	[scenario] package (decode + validate)
//	     ↓
//	[placement] package (rounds around the selection, inside fallback)
//	     ↓
//	[render] package (scene + sinks)
//	     ↓
//	SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
//	bounds := geom.R(0, 0, 1920, 1080)
//	buttons := control.NewSet(8, control.DefaultSize, nil)
//	controls := make([]placement.Control, len(buttons))
//	for i, b := range buttons {
//	    controls[i] = b
//	}
//	h := placement.NewHandlerWithControls(controls, bounds)
//	h.UpdatePosition(geom.R(500, 500, 100, 100))
//	h.Show()
//
// [geom]: github.com/matzehuels/buttonhalo/pkg/geom
// [placement]: github.com/matzehuels/buttonhalo/pkg/placement
// [control]: github.com/matzehuels/buttonhalo/pkg/control
// [scenario]: github.com/matzehuels/buttonhalo/pkg/scenario
// [render]: github.com/matzehuels/buttonhalo/pkg/render
// [pipeline]: github.com/matzehuels/buttonhalo/pkg/pipeline
// [cache]: github.com/matzehuels/buttonhalo/pkg/cache
// [config]: github.com/matzehuels/buttonhalo/pkg/config
// [errors]: github.com/matzehuels/buttonhalo/pkg/errors
// [observability]: github.com/matzehuels/buttonhalo/pkg/observability
// [buildinfo]: github.com/matzehuels/buttonhalo/pkg/buildinfo
package pkg
