// Package nodelink renders laid-out sentences as node-link diagrams.
//
// # Overview
//
// This package produces Graphviz diagrams where tokens appear as boxes in
// sentence order and dependencies as labeled arrows. It is an alternative
// to the text arc diagram when a vector image is preferred.
//
// # Usage
//
// Convert a layout to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The generated DOT pins every token to one rank (rank=same) joined by
// invisible edges, so Graphviz keeps the sentence order. Dependency edges
// do not constrain ranking. Edges laid out on a positive stratum leave
// and enter tokens from the top (compass point n), negative ones from the
// bottom (s). Root edges start at a virtual ROOT node. Alternative edges
// are dashed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
