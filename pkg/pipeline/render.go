package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	errs "github.com/matzehuels/highway/pkg/errors"
	"github.com/matzehuels/highway/pkg/graph"
	"github.com/matzehuels/highway/pkg/network"
	"github.com/matzehuels/highway/pkg/observability"
	"github.com/matzehuels/highway/pkg/render/nodelink"
)

// Render draws net in the given format. title is placed above SVG and DOT
// output; JSON output is the graph document from package graph.
func Render(ctx context.Context, net *network.Network, format, title string) ([]byte, error) {
	format = strings.ToLower(format)
	if err := errs.ValidateFormat(format); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	data, err := render(ctx, net, format, title)
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}

func render(ctx context.Context, net *network.Network, format, title string) ([]byte, error) {
	switch format {
	case FormatJSON:
		g := net.Graph
		if g == nil {
			g = graph.New()
		}
		return graph.MarshalGraph(g)
	case FormatDOT:
		return []byte(nodelink.ToDOT(net, nodelink.Options{Title: title})), nil
	case FormatSVG:
		svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(net, nodelink.Options{Title: title}))
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "render svg")
		}
		return svg, nil
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "format %q", format)
	}
}

// Title returns the default diagram title for a report status.
func Title(nodes int, status network.Status) string {
	return fmt.Sprintf("%d cities: %s", nodes, status)
}
