package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/arcstrata/pkg/graph"
	"github.com/matzehuels/arcstrata/pkg/observability"
	"github.com/matzehuels/arcstrata/pkg/render/nodelink"
	"github.com/matzehuels/arcstrata/pkg/render/textarc"
)

// RenderOptions configures rendering.
type RenderOptions struct {
	// Labels writes edge labels onto text arcs.
	Labels bool
	// Detailed adds strata and offsets to DOT/SVG labels.
	Detailed bool
	// Styles colors text output; nil renders plain text.
	Styles *textarc.Styles
}

// Render produces one output format from a layout.
func Render(ctx context.Context, l graph.Layout, format string, opts RenderOptions) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, format)

	data, err := render(ctx, l, format, opts)
	if err != nil {
		err = fmt.Errorf("render %s: %w", format, err)
	}
	hooks.OnRenderComplete(ctx, format, time.Since(start), err)
	return data, err
}

func render(ctx context.Context, l graph.Layout, format string, opts RenderOptions) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalLayout(l)
	case FormatText:
		return []byte(textarc.Render(l, textarc.Options{Labels: opts.Labels, Styles: opts.Styles})), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed}))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
