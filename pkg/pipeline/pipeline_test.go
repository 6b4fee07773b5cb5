package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"

	"github.com/matzehuels/buttonhalo/pkg/cache"
	"github.com/matzehuels/buttonhalo/pkg/errors"
	"github.com/matzehuels/buttonhalo/pkg/geom"
	"github.com/matzehuels/buttonhalo/pkg/observability"
	"github.com/matzehuels/buttonhalo/pkg/render"
	"github.com/matzehuels/buttonhalo/pkg/scenario"
)

func testScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Name:      "centre",
		Display:   scenario.Rect{Width: 1920, Height: 1080},
		Selection: scenario.Rect{X: 500, Y: 500, Width: 100, Height: 100},
		Controls:  scenario.Controls{Count: 8, Size: 24},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"neato", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidFormat {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestFormatTables(t *testing.T) {
	for _, f := range Formats {
		if ContentTypes[f] == "" {
			t.Errorf("ContentTypes[%q] missing", f)
		}
		if Extensions[f] == "" {
			t.Errorf("Extensions[%q] missing", f)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g, want %g", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"zero", Options{}, false},
		{"all formats", Options{Formats: Formats}, false},
		{"bad format", Options{Formats: []string{"gif"}}, true},
		{"negative scale", Options{Scale: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"json"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	logger := opts.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Logger != logger {
		t.Error("second call replaced the logger")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Rings: true, Crop: true, Scale: 2}
	got := opts.ArtifactKeyOpts("png")
	want := cache.ArtifactKeyOpts{Format: "png", Rings: true, Crop: true, Scale: 2}
	if got != want {
		t.Errorf("ArtifactKeyOpts() = %+v, want %+v", got, want)
	}
}

func TestComputeLayout(t *testing.T) {
	scene, res, err := ComputeLayout(testScenario(), Options{})
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}

	want := []geom.Point{
		{X: 507, Y: 605}, {X: 537, Y: 605}, {X: 567, Y: 605},
		{X: 605, Y: 567}, {X: 605, Y: 537}, {X: 605, Y: 507},
		{X: 552, Y: 470}, {X: 522, Y: 470},
	}
	if len(res.Positions) != len(want) {
		t.Fatalf("got %d positions, want %d", len(res.Positions), len(want))
	}
	for i, p := range want {
		if res.Positions[i] != p {
			t.Errorf("Positions[%d] = %v, want %v", i, res.Positions[i], p)
		}
		if scene.Controls[i].Position != p {
			t.Errorf("scene control %d at %v, want %v", i, scene.Controls[i].Position, p)
		}
	}
	if scene.Inside || res.Inside {
		t.Error("controls should be outside")
	}
	if scene.Footprint != 24 {
		t.Errorf("Footprint = %d, want 24", scene.Footprint)
	}
}

func TestComputeLayoutInvalid(t *testing.T) {
	s := testScenario()
	s.Controls = scenario.Controls{Size: 24}
	_, _, err := ComputeLayout(s, Options{})
	if errors.GetCode(err) != errors.ErrCodeEmptyControlSet {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeEmptyControlSet)
	}

	if _, _, err := ComputeLayout(nil, Options{}); err == nil {
		t.Error("nil scenario should fail")
	}
}

func TestComputeLayoutLegacyWrap(t *testing.T) {
	s := &scenario.Scenario{
		Display:   scenario.Rect{Width: 200, Height: 200},
		Selection: scenario.Rect{Width: 200, Height: 200},
		Controls:  scenario.Controls{Count: 5, Size: 24},
	}

	_, res, err := ComputeLayout(s, Options{LegacyWrap: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []geom.Point{{X: 6, Y: 169}, {X: 36, Y: 139}, {X: 36, Y: 109}, {X: 36, Y: 79}, {X: 36, Y: 49}}
	for i, p := range want {
		if res.Positions[i] != p {
			t.Errorf("Positions[%d] = %v, want %v", i, res.Positions[i], p)
		}
	}
	if !res.Inside {
		t.Error("controls should be inside")
	}
}

func TestRenderScene(t *testing.T) {
	scene, _, err := ComputeLayout(testScenario(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := RenderScene(context.Background(), scene, Options{
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
		Rings:   true,
	})
	if err != nil {
		t.Fatalf("RenderScene() error = %v", err)
	}
	if !bytes.HasPrefix(artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg output = %.40q", artifacts[FormatSVG])
	}
	if !bytes.Contains(artifacts[FormatSVG], []byte(`class="ring"`)) {
		t.Error("svg output should outline rounds")
	}
	if !json.Valid(artifacts[FormatJSON]) {
		t.Error("json output is not valid JSON")
	}
	if !bytes.HasPrefix(artifacts[FormatDOT], []byte("graph placement {")) {
		t.Errorf("dot output = %.40q", artifacts[FormatDOT])
	}
}

func TestRenderSceneCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RenderScene(ctx, testScene(t), Options{}); err == nil {
		t.Error("canceled context should fail")
	}
}

func testScene(t *testing.T) render.Scene {
	t.Helper()
	scene, _, err := ComputeLayout(testScenario(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	return scene
}

type countingHooks struct {
	observability.NoopCacheHooks
	mu     sync.Mutex
	hits   map[string]int
	misses map[string]int
}

func newCountingHooks() *countingHooks {
	return &countingHooks{hits: map[string]int{}, misses: map[string]int{}}
}

func (h *countingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[keyType]++
}

func (h *countingHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses[keyType]++
}

func TestRunnerExecuteCaches(t *testing.T) {
	hooks := newCountingHooks()
	defer observability.Register(hooks)()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatDOT}}

	first, err := runner.Execute(ctx, testScenario(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}

	second, err := runner.Execute(ctx, testScenario(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}
	if first.ScenarioHash != second.ScenarioHash {
		t.Errorf("ScenarioHash changed: %s != %s", first.ScenarioHash, second.ScenarioHash)
	}
	for i, p := range first.Placement.Positions {
		if second.Scene.Controls[i].Position != p {
			t.Errorf("cached control %d at %v, want %v", i, second.Scene.Controls[i].Position, p)
		}
	}

	if hooks.hits["layout"] != 1 || hooks.misses["layout"] != 1 {
		t.Errorf("layout hits/misses = %d/%d, want 1/1", hooks.hits["layout"], hooks.misses["layout"])
	}
	if hooks.hits["artifact"] != 2 || hooks.misses["artifact"] != 2 {
		t.Errorf("artifact hits/misses = %d/%d, want 2/2", hooks.hits["artifact"], hooks.misses["artifact"])
	}
}

func TestRunnerRefresh(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()

	if _, err := runner.Execute(ctx, testScenario(), Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := runner.Execute(ctx, testScenario(), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v, refresh should bypass reads", res.CacheInfo)
	}
}

func TestRunnerLayoutKeyedByOptions(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()

	if _, _, err := runner.Layout(ctx, testScenario(), Options{}); err != nil {
		t.Fatal(err)
	}
	_, _, hit, err := runner.LayoutWithCacheInfo(ctx, testScenario(), Options{LegacyWrap: true})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("legacy wrap layout should not reuse the default entry")
	}
}

func TestRunnerExecuteInvalid(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), testScenario(), Options{Formats: []string{"gif"}})
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestRunnerLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "centre.toml")
	if err := testScenario().Save(path); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	s, err := runner.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Controls.Len() != 8 {
		t.Errorf("Controls.Len() = %d, want 8", s.Controls.Len())
	}

	_, err = runner.Load(context.Background(), filepath.Join(t.TempDir(), "missing.toml"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestRunnerReplay(t *testing.T) {
	s := testScenario()
	s.Drag = []scenario.Step{{DX: 10}, {DY: -10, DW: 20}}

	frames, err := NewRunner(nil, nil, nil).Replay(context.Background(), s, Options{})
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}

	tests := []struct {
		frame int
		sel   geom.Rect
		first geom.Point
	}{
		{0, geom.R(500, 500, 100, 100), geom.Pt(507, 605)},
		{1, geom.R(510, 500, 100, 100), geom.Pt(517, 605)},
	}
	for _, tt := range tests {
		f := frames[tt.frame]
		if f.Selection != tt.sel {
			t.Errorf("frame %d Selection = %v, want %v", tt.frame, f.Selection, tt.sel)
		}
		if f.Positions[0] != tt.first {
			t.Errorf("frame %d Positions[0] = %v, want %v", tt.frame, f.Positions[0], tt.first)
		}
	}
	if got, want := frames[2].Selection, geom.R(510, 490, 120, 100); got != want {
		t.Errorf("frame 2 Selection = %v, want %v", got, want)
	}
}
