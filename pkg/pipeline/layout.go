package pipeline

import (
	"github.com/matzehuels/buttonhalo/pkg/control"
	"github.com/matzehuels/buttonhalo/pkg/placement"
	"github.com/matzehuels/buttonhalo/pkg/render"
	"github.com/matzehuels/buttonhalo/pkg/scenario"
)

// ComputeLayout places the scenario's controls around its selection and
// captures the outcome as a scene. It does not touch the cache.
func ComputeLayout(s *scenario.Scenario, opts Options) (render.Scene, placement.Result, error) {
	if err := ValidateScenario(s); err != nil {
		return render.Scene{}, placement.Result{}, err
	}
	opts.SetRenderDefaults()

	buttons := s.Buttons()
	h := newHandler(s, buttons, opts)
	h.UpdatePosition(s.Selection.Geom())
	h.Show()

	res := h.LastResult()
	return render.NewScene(s.Name, s.Display.Geom(), s.Selection.Geom(), buttons, res), res, nil
}

// applyLayout moves buttons to cached positions and rebuilds the scene.
func applyLayout(s *scenario.Scenario, res placement.Result) render.Scene {
	buttons := s.Buttons()
	for i, b := range buttons {
		if i < len(res.Positions) {
			b.Move(res.Positions[i])
		}
	}
	return render.NewScene(s.Name, s.Display.Geom(), s.Selection.Geom(), buttons, res)
}

func newHandler(s *scenario.Scenario, buttons []*control.Button, opts Options) *placement.Handler {
	controls := make([]placement.Control, len(buttons))
	for i, b := range buttons {
		controls[i] = b
	}
	return placement.NewHandlerWithControls(controls, s.Display.Geom(), placementOptions(s, opts)...)
}

func placementOptions(s *scenario.Scenario, opts Options) []placement.Option {
	popts := []placement.Option{placement.WithLogger(opts.Logger.WithPrefix("placement"))}
	if s.LegacyWrap || opts.LegacyWrap {
		popts = append(popts, placement.WithLegacyInsideWrap())
	}
	return popts
}
