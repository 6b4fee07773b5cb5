package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/buttonhalo/pkg/cache"
	"github.com/matzehuels/buttonhalo/pkg/geom"
	"github.com/matzehuels/buttonhalo/pkg/observability"
	"github.com/matzehuels/buttonhalo/pkg/placement"
	"github.com/matzehuels/buttonhalo/pkg/render"
	"github.com/matzehuels/buttonhalo/pkg/scenario"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner keeps no results between calls. Multiple goroutines can use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Frame is one step of a replayed drag path.
type Frame struct {
	Selection geom.Rect
	Positions []geom.Point
	Inside    bool
	Rounds    int
}

// Load reads a scenario file and reports it through the pipeline hooks.
func (r *Runner) Load(ctx context.Context, path string) (*scenario.Scenario, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	s, err := scenario.Load(path)
	controls := 0
	if s != nil {
		controls = s.Controls.Len()
	}
	hooks.OnLoadComplete(ctx, path, controls, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded scenario", "path", path, "name", s.Name, "controls", controls)
	return s, nil
}

// Execute runs the complete layout -> render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, s *scenario.Scenario, opts Options) (*Result, error) {
	if err := ValidateScenario(s); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		ScenarioHash: cache.Hash(s.Canonical()),
		Artifacts:    make(map[string][]byte),
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	scene, res, layoutHit, err := r.LayoutWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Scene = scene
	result.Placement = res
	result.Stats.Controls = len(res.Positions)
	result.Stats.Rounds = len(res.Rounds)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("placed controls",
		"controls", result.Stats.Controls,
		"rounds", result.Stats.Rounds,
		"inside", res.Inside,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo places controls with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, s *scenario.Scenario, opts Options) (render.Scene, placement.Result, bool, error) {
	if err := ValidateScenario(s); err != nil {
		return render.Scene{}, placement.Result{}, false, err
	}
	r.applyLogger(&opts)
	opts.SetRenderDefaults()

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, s.Controls.Len())
	start := time.Now()

	keyOpts := opts.LayoutKeyOpts()
	keyOpts.LegacyWrap = keyOpts.LegacyWrap || s.LegacyWrap
	cacheKey := r.Keyer.LayoutKey(cache.Hash(s.Canonical()), keyOpts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var res placement.Result
			if err := json.Unmarshal(data, &res); err == nil && len(res.Positions) == s.Controls.Len() {
				observability.Cache().OnCacheHit(ctx, "layout")
				hooks.OnLayoutComplete(ctx, len(res.Rounds), res.Inside, time.Since(start), nil)
				return applyLayout(s, res), res, true, nil
			}
			// Unreadable entries fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	scene, res, err := ComputeLayout(s, opts)
	hooks.OnLayoutComplete(ctx, len(res.Rounds), res.Inside, time.Since(start), err)
	if err != nil {
		return render.Scene{}, placement.Result{}, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, opts.layoutTTL()); err != nil {
			r.Logger.Warn("cache write failed", "stage", "layout", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return scene, res, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, s *scenario.Scenario, opts Options) (render.Scene, placement.Result, error) {
	scene, res, _, err := r.LayoutWithCacheInfo(ctx, s, opts)
	return scene, res, err
}

// RenderWithCacheInfo renders a scene with caching and returns whether every
// artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene render.Scene, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	sceneHash := hashScene(scene)
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := RenderScene(ctx, scene, renderOpts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, opts.artifactTTL()); err != nil {
			r.Logger.Warn("cache write failed", "stage", "render", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, scene render.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, scene, opts)
	return artifacts, err
}

// Replay drives a single handler through every frame of the scenario's
// drag path, the way an overlay repositions its buttons while the user
// drags the selection. Replays are never cached.
func (r *Runner) Replay(ctx context.Context, s *scenario.Scenario, opts Options) ([]Frame, error) {
	if err := ValidateScenario(s); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	opts.SetRenderDefaults()

	buttons := s.Buttons()
	h := newHandler(s, buttons, opts)
	defer func() {
		for _, b := range buttons {
			_ = b.Close()
		}
	}()

	selections := s.Frames()
	frames := make([]Frame, 0, len(selections))
	for i, sel := range selections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h.UpdatePosition(sel)
		if i == 0 {
			h.Show()
		}
		res := h.LastResult()
		frames = append(frames, Frame{
			Selection: sel,
			Positions: res.Positions,
			Inside:    h.ButtonsAreInside(),
			Rounds:    len(res.Rounds),
		})
	}

	r.Logger.Debug("replayed drag", "frames", len(frames), "controls", h.Size())
	return frames, nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashScene hashes everything a renderer reads except control IDs, which
// are fresh for every control set.
func hashScene(s render.Scene) string {
	controls := make([]render.Control, len(s.Controls))
	for i, c := range s.Controls {
		controls[i] = render.Control{Label: c.Label, Position: c.Position}
	}
	s.Controls = controls
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
