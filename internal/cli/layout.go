package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/buttonhalo/pkg/geom"
	"github.com/matzehuels/buttonhalo/pkg/pipeline"
	"github.com/matzehuels/buttonhalo/pkg/render/sink"
)

// layoutFlags holds the flags for the layout command.
type layoutFlags struct {
	json       bool
	drag       bool
	legacyWrap bool
	noCache    bool
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [scenario]",
		Short: "Place controls around a selection and print their positions",
		Long: `Place controls around a selection and print their positions.

The scenario is a TOML, YAML or JSON file (see 'scenario init'). Without a
scenario the configured display and control set are used with a centred
selection.

With --drag the scenario's drag steps are replayed through one handler and
every frame is reported.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), path, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "print the placement as JSON")
	cmd.Flags().BoolVar(&flags.drag, "drag", false, "replay the scenario's drag steps")
	cmd.Flags().BoolVar(&flags.legacyWrap, "legacy-wrap", false, "use the legacy inside-row wrap predicate")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the scenario, places its controls, and prints the result.
func (c *CLI) runLayout(ctx context.Context, w io.Writer, path string, flags layoutFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	s, err := c.loadScenario(ctx, runner, path)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}

	opts := c.pipelineOptions()
	opts.LegacyWrap = flags.legacyWrap

	if flags.drag {
		frames, err := runner.Replay(ctx, s, opts)
		if err != nil {
			return fmt.Errorf("replay drag: %w", err)
		}
		return writeFrames(w, frames, flags.json)
	}

	prog := newProgress(loggerFromContext(ctx), "layout")
	scene, res, hit, err := runner.LayoutWithCacheInfo(ctx, s, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done("controls", len(res.Positions), "cached", hit)

	if flags.json {
		data, err := sink.RenderJSON(scene, sink.WithJSONRounds(), sink.WithJSONIndent())
		if err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}

	p := newPrinter(w)
	p.keyValue("Scenario", s.Name)
	p.keyValue("Selection", s.Selection.Geom().String())
	p.stats(len(res.Positions), len(res.Rounds), res.Inside, hit)
	fmt.Fprintln(w, positionsTable(scene))
	return nil
}

// frameJSON is the --drag --json output for one frame.
type frameJSON struct {
	Frame     int          `json:"frame"`
	Selection geom.Rect    `json:"selection"`
	Positions []geom.Point `json:"positions"`
	Inside    bool         `json:"inside"`
	Rounds    int          `json:"rounds"`
}

func writeFrames(w io.Writer, frames []pipeline.Frame, asJSON bool) error {
	if asJSON {
		out := make([]frameJSON, len(frames))
		for i, f := range frames {
			out[i] = frameJSON{Frame: i, Selection: f.Selection, Positions: f.Positions, Inside: f.Inside, Rounds: f.Rounds}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for i, f := range frames {
		inside := ""
		if f.Inside {
			inside = " " + StyleWarning.Render("inside")
		}
		fmt.Fprintf(w, "%s %s%s\n", StyleNumber.Render(fmt.Sprintf("%3d", i)), StyleValue.Render(f.Selection.String()), inside)
		for j, p := range f.Positions {
			fmt.Fprintf(w, "      %s %s\n", StyleDim.Render(fmt.Sprintf("%2d", j)), p)
		}
	}
	return nil
}
