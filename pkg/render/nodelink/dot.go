package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/highway/pkg/graph"
	"github.com/matzehuels/highway/pkg/network"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Title is drawn above the diagram when set.
	Title string

	// HighwayColor is the color of requested highways. Empty means "firebrick".
	HighwayColor string
}

// ToDOT converts a network to Graphviz DOT format.
// A network without a graph (malformed input) yields a graph with only the
// title.
func ToDOT(n *network.Network, opts Options) string {
	color := opts.HighwayColor
	if color == "" {
		color = "firebrick"
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, width=0.4, fixedsize=true];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=18;\n", opts.Title)
	}
	buf.WriteString("\n")

	if n.Graph == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	for _, v := range n.Graph.Nodes() {
		fmt.Fprintf(&buf, "  %d;\n", v)
	}

	requested := make(map[graph.Edge]bool, len(n.Requested))
	for _, e := range n.Requested {
		requested[e] = true
	}

	buf.WriteString("\n")
	for _, e := range n.Graph.Edges() {
		fmt.Fprintf(&buf, "  %d -- %d [%s];\n", e.U, e.V, edgeAttrs(e, n.Nodes, requested[e], color))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(e graph.Edge, nodes int, requested bool, color string) string {
	coastal := e.V == e.U+1 || (e.U == 1 && e.V == nodes)
	switch {
	case coastal && requested:
		return fmt.Sprintf("color=%q, penwidth=3", color)
	case coastal:
		return "color=grey60, penwidth=1"
	default:
		return fmt.Sprintf("color=%q, penwidth=3, weight=0", color)
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
