package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/buttonhalo/pkg/errors"
	"github.com/matzehuels/buttonhalo/pkg/pipeline"
)

// renderFlags holds the flags for the render command.
type renderFlags struct {
	output     string
	formats    string
	rings      bool
	labels     bool
	crop       bool
	scale      float64
	legacyWrap bool
	noCache    bool
	refresh    bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	flags := renderFlags{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [scenario]",
		Short: "Render a placement to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a placement to SVG, PNG, PDF, JSON or DOT.

Formats (comma-separated with -f):
  svg    standalone SVG of display, selection and controls
  png    SVG rasterized with rsvg-convert
  pdf    SVG converted with rsvg-convert
  json   positions, working areas and placement rounds
  dot    Graphviz source with pinned positions
  neato  the DOT source laid out by Graphviz as SVG

With one format, -o names the output file. With several, -o is the base
path and each format adds its own extension.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), path, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, neato")
	cmd.Flags().BoolVar(&flags.rings, "rings", false, "outline the working area of every placement round")
	cmd.Flags().BoolVar(&flags.labels, "labels", false, "print control labels")
	cmd.Flags().BoolVar(&flags.crop, "crop", false, "crop to the selection and controls")
	cmd.Flags().Float64Var(&flags.scale, "scale", flags.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&flags.legacyWrap, "legacy-wrap", false, "use the legacy inside-row wrap predicate")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runRender loads the scenario and writes every requested artifact.
func (c *CLI) runRender(ctx context.Context, w io.Writer, path string, flags renderFlags) error {
	opts := c.pipelineOptions()
	opts.Formats = parseFormats(flags.formats)
	opts.Rings = flags.rings
	opts.Labels = flags.labels
	opts.Crop = flags.crop
	opts.Scale = flags.scale
	opts.LegacyWrap = flags.legacyWrap
	opts.Refresh = flags.refresh
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	s, err := c.loadScenario(ctx, runner, path)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}

	var spin *spinner
	if slices.ContainsFunc(opts.Formats, needsConverter) {
		spin = newSpinner(ctx, os.Stderr, "Converting "+strings.Join(opts.Formats, ", "))
		spin.start()
	}
	prog := newProgress(loggerFromContext(ctx), "render")
	result, err := runner.Execute(ctx, s, opts)
	if spin != nil {
		spin.stop()
	}
	if err != nil {
		return err
	}
	prog.done("scenario", s.Name, "formats", len(result.Artifacts))

	p := newPrinter(w)
	p.success("Rendered %s", s.Name)
	if result.Placement.Inside {
		p.warning("selection leaves no room outside; controls packed inside")
	}
	p.stats(result.Stats.Controls, result.Stats.Rounds, result.Placement.Inside,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)

	base := basePath(flags.output, path, s.Name)
	for _, format := range opts.Formats {
		out := outputPath(flags.output, base, format, len(opts.Formats))
		if err := writeArtifact(out, result.Artifacts[format]); err != nil {
			return err
		}
		p.file(out)
	}
	return nil
}

// needsConverter reports whether format is produced by an external tool.
func needsConverter(format string) bool {
	return format == pipeline.FormatPNG || format == pipeline.FormatPDF || format == pipeline.FormatNeato
}

// basePath derives the output base path. With no output it strips the
// extension from the scenario path, or uses the scenario name.
func basePath(output, input, name string) string {
	if output == "" {
		if input == "" {
			if errors.ValidateFilename(name) != nil {
				return "placement"
			}
			return name
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	// Longest match first so ".neato.svg" wins over ".svg".
	trimmed := output
	for _, ext := range pipeline.Extensions {
		if strings.HasSuffix(output, ext) && len(output)-len(ext) < len(trimmed) {
			trimmed = strings.TrimSuffix(output, ext)
		}
	}
	return trimmed
}

// outputPath returns the file a format is written to.
func outputPath(output, base, format string, formats int) string {
	if output != "" && formats == 1 {
		return output
	}
	return base + pipeline.Extensions[format]
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
