// Package pipeline runs the scenario -> placement -> artifact pipeline for
// buttonhalo.
//
// The CLI and the HTTP server share this package so both apply the same
// defaults, caching, hooks, and logging.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: build the control set, drive a placement handler with the
//     scenario's selection, and capture a [render.Scene]
//  2. Render: write the scene in each requested format (SVG, PNG, PDF,
//     JSON, DOT, Graphviz SVG)
//
// Both stages are cached by content: the layout by the scenario hash and
// layout options, artifacts by the layout hash and render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, scn, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	    Rings:   true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Replay a drag path frame by frame:
//
//	frames, err := runner.Replay(ctx, scn, opts)
//
// [render.Scene]: github.com/matzehuels/buttonhalo/pkg/render.Scene
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/buttonhalo/pkg/cache"
	"github.com/matzehuels/buttonhalo/pkg/errors"
	"github.com/matzehuels/buttonhalo/pkg/placement"
	"github.com/matzehuels/buttonhalo/pkg/render"
	"github.com/matzehuels/buttonhalo/pkg/scenario"
)

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatNeato = "neato"
)

// Formats lists the supported output formats in display order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatNeato}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:   "image/svg+xml",
	FormatPNG:   "image/png",
	FormatPDF:   "application/pdf",
	FormatJSON:  "application/json",
	FormatDOT:   "text/vnd.graphviz",
	FormatNeato: "image/svg+xml",
}

// Extensions maps each format to its file extension.
var Extensions = map[string]string{
	FormatSVG:   ".svg",
	FormatPNG:   ".png",
	FormatPDF:   ".pdf",
	FormatJSON:  ".json",
	FormatDOT:   ".dot",
	FormatNeato: ".neato.svg",
}

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 1.0

	// DefaultCrop is the padding around the scene extent when cropping.
	DefaultCrop = 40
)

// Options configures a pipeline run. The zero value is usable after
// ValidateAndSetDefaults.
type Options struct {
	// Layout options
	LegacyWrap bool `json:"legacy_wrap,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Rings   bool     `json:"rings,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Crop    bool     `json:"crop,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// TTL overrides the cache lifetimes when positive.
	TTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ScenarioHash is the content hash of the scenario.
	ScenarioHash string

	// Scene is the captured placement.
	Scene render.Scene

	// Placement is the raw engine result.
	Placement placement.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Controls   int
	Rounds     int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats...)
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateScenario checks that a scenario is present and valid.
func ValidateScenario(s *scenario.Scenario) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidInput, "scenario is required")
	}
	return s.Validate()
}

// ValidateAndSetDefaults applies defaults and validates the options.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{LegacyWrap: o.LegacyWrap}
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Rings:  o.Rings,
		Labels: o.Labels,
		Crop:   o.Crop,
		Scale:  o.Scale,
	}
}

func (o *Options) layoutTTL() time.Duration {
	if o.TTL > 0 {
		return o.TTL
	}
	return cache.TTLLayout
}

func (o *Options) artifactTTL() time.Duration {
	if o.TTL > 0 {
		return o.TTL
	}
	return cache.TTLArtifact
}
