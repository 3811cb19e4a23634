// Package pkg provides the core libraries for arcstrata, an arc-diagram
// layout engine for dependency treebanks.
//
// # Overview
//
// arcstrata draws the edges of a dependency sentence as arcs over a line of
// tokens. Every arc is assigned a stratum (its height above the baseline,
// or depth below it when it would otherwise cross another arc) and an
// anchor offset at each end so that arcs sharing a token fan out instead
// of piling onto one point. The pkg directory is organized into:
//
//  1. [depgraph] - The sentence graph: ordered tokens and labeled edges
//  2. [arc] - The layout engine: geometry, crossings, strata and offsets
//  3. [graph] - Serialization: JSON, YAML, TOML and CoNLL-U documents
//  4. [pipeline] - Orchestration (read → layout → render) with caching
//  5. [render] - Text arc diagrams and Graphviz nodelink output
//
// # Architecture
//
// The typical data flow through arcstrata:
//
//	Treebank file (CoNLL-U, JSON, YAML, TOML)
//	         ↓
//	    [graph] package (decode sentences)
//	         ↓
//	    [depgraph] package (ordered tokens + edges)
//	         ↓
//	    [arc] package (strata + anchor offsets)
//	         ↓
//	    [render] packages (text, DOT, SVG) or layout JSON
//
// # Quick Start
//
//	doc, _ := graph.ReadDocumentFile("en_ewt-ud-dev.conllu", "")
//	g, _ := graph.ToDepGraph(doc.Sentences[0])
//
//	res := arc.Bind(g).Run()
//	l := graph.NewLayout(g, res)
//	fmt.Println(textarc.Render(l, textarc.Options{Labels: true}))
//
// The engine returned by [arc.Bind] listens to the graph: editing the
// graph invalidates exactly the cached geometry it affects, and the next
// Run recomputes the layout.
//
// # Main Packages
//
// [depgraph] - Ordered token list with visible and alternative edges. Every
// structural change is reported to registered listeners.
//
// [arc] - Edge geometry cache, crossing predicate, strata assigner and anchor
// offset computer. Pure computation; it neither logs nor performs I/O.
//
// [graph] - Wire types for sentences, documents and layouts, plus readers
// for every supported input format.
//
// [pipeline] - Layout runs with caching, bounded concurrency and
// observability hooks. Shared by the CLI and the HTTP service.
//
// [cache] - Layout cache backends (file, Redis, null) and key derivation.
//
// [observability] - Hook interfaces for pipeline, cache and server events.
//
// [errors] - Coded errors shared by all packages.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/arc/...       # Layout engine only
//	go test -run Example ./...  # Examples only
//
// [depgraph]: https://pkg.go.dev/github.com/matzehuels/arcstrata/pkg/depgraph
// [arc]: https://pkg.go.dev/github.com/matzehuels/arcstrata/pkg/arc
// [arc.Bind]: https://pkg.go.dev/github.com/matzehuels/arcstrata/pkg/arc#Bind
// [graph]: https://pkg.go.dev/github.com/matzehuels/arcstrata/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/arcstrata/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/arcstrata/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/arcstrata/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/arcstrata/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/arcstrata/pkg/errors
package pkg
