// Package render provides output renderers for laid-out sentences.
//
// # Overview
//
// Renderers consume the serialized [graph.Layout] produced by the
// pipeline, so a layout read back from the cache or a layout file renders
// exactly like a freshly computed one. Two renderers are provided:
//
//   - Text arc diagrams for terminals (in [textarc] subpackage)
//   - Node-link diagrams via Graphviz (in [nodelink] subpackage)
//
// # Text Arc Diagrams
//
// The [textarc] subpackage draws one row per stratum, positive strata
// above the token line and negative strata below it:
//
//	out := textarc.Render(layout, textarc.Options{Labels: true})
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage emits Graphviz DOT with the tokens pinned in
// sentence order, and renders it to SVG in-process:
//
//	dot := nodelink.ToDOT(layout, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [graph.Layout]: github.com/matzehuels/arcstrata/pkg/graph.Layout
// [textarc]: github.com/matzehuels/arcstrata/pkg/render/textarc
// [nodelink]: github.com/matzehuels/arcstrata/pkg/render/nodelink
package render
