// Package nodelink renders island road networks as node-link diagrams.
//
// Cities are drawn as circles. The coastal ring is drawn as a thin grey
// cycle and the requested highways as bold edges, so crossings that make a
// network unbuildable stand out.
//
// # Usage
//
// Convert a network to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(n, nodelink.Options{Title: "buildable"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source uses the circo layout engine, which places a single cycle on
// a circle and matches how the island's coast is usually sketched.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. No external Graphviz installation is needed.
package nodelink
