package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/buttonhalo/pkg/render"
	"github.com/matzehuels/buttonhalo/pkg/render/sink"
)

// RenderScene writes the scene in every requested format. It does not touch
// the cache.
func RenderScene(ctx context.Context, scene render.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(ctx, scene, format, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, scene render.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(scene, svgOptions(opts)...), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, scene,
			sink.WithPNGSVGOptions(svgOptions(opts)...),
			sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, scene, svgOptions(opts)...)
	case FormatJSON:
		jopts := []sink.JSONOption{sink.WithJSONIndent()}
		if opts.Rings {
			jopts = append(jopts, sink.WithJSONRounds())
		}
		return sink.RenderJSON(scene, jopts...)
	case FormatDOT:
		return []byte(sink.ToDOT(scene)), nil
	case FormatNeato:
		return sink.RenderDOTSVG(ctx, sink.ToDOT(scene))
	default:
		return nil, ValidateFormat(format)
	}
}

func svgOptions(opts Options) []sink.SVGOption {
	var o []sink.SVGOption
	if opts.Rings {
		o = append(o, sink.WithRings())
	}
	if opts.Labels {
		o = append(o, sink.WithLabels())
	}
	if opts.Crop {
		o = append(o, sink.WithCrop(DefaultCrop))
	}
	return o
}
