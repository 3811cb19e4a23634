package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arcstrata/pkg/depgraph"
	"github.com/matzehuels/arcstrata/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed appends the stratum and anchor offsets to edge labels and
	// the position to token labels.
	Detailed bool
}

// ToDOT converts a layout to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [fontsize=12, arrowsize=0.6];\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	hasRoot := false
	for _, e := range l.Edges {
		if e.Root {
			hasRoot = true
			break
		}
	}
	if hasRoot {
		fmt.Fprintf(&buf, "  %q [label=\"ROOT\", shape=plaintext, style=\"\"];\n", depgraph.RootID)
	}

	buf.WriteString("  { rank=same;\n")
	for _, t := range l.Tokens {
		fmt.Fprintf(&buf, "    %q [label=%q];\n", t.ID, tokenLabel(t, opts.Detailed))
	}
	buf.WriteString("  }\n")
	for i := 1; i < len(l.Tokens); i++ {
		fmt.Fprintf(&buf, "  %q -> %q [style=invis, weight=100];\n", l.Tokens[i-1].ID, l.Tokens[i].ID)
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n",
			endpoint(e, e.Source), endpoint(e, e.Target), strings.Join(edgeAttrs(e, opts.Detailed), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func tokenLabel(t graph.LayoutToken, detailed bool) string {
	if !detailed {
		return t.Form
	}
	return t.Form + "\n" + strconv.Itoa(t.Position)
}

// endpoint names a token with the compass point matching the edge's side.
// Unresolved endpoints of root edges attach to the virtual ROOT node.
func endpoint(e graph.EdgeLayout, id string) string {
	if e.Root && (id == depgraph.RootID || id == "") {
		return strconv.Quote(depgraph.RootID)
	}
	port := "n"
	if e.Strata < 0 {
		port = "s"
	}
	return strconv.Quote(id) + ":" + port
}

func edgeAttrs(e graph.EdgeLayout, detailed bool) []string {
	label := e.Label
	if detailed {
		label = fmt.Sprintf("%s [%d; %d/%d]", label, e.Strata, e.OffsetMin, e.OffsetMax)
	}
	attrs := []string{"constraint=false"}
	if label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", label))
	}
	if e.Alternative {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
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

// normalizeViewBox replaces Graphviz's point-sized root element with one
// whose width and height equal the viewBox, so the SVG scales cleanly.
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
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
