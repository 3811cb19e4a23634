// Package graph provides serialization types for dependency-annotated
// sentences and their arc layouts.
//
// This package defines the canonical file formats for arcstrata, used for
// input documents, layout files, HTTP responses and cache entries.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Sentence], [Document], [Layout]: Serialization types (this package)
//   - pkg/depgraph.Graph: Internal sentence graph
//   - pkg/arc.Result: Internal layout result
//
// Use [ToDepGraph] / [FromDepGraph] and [NewLayout] to convert between them.
//
// # Input Formats
//
// Documents are read from four formats, chosen by file extension or by
// name (see [DetectFormat]):
//
//	json    {"sentences": [...]} or a single sentence object
//	yaml    the same structure in YAML
//	toml    [[sentences]] tables
//	conllu  Universal Dependencies CoNLL-U
//
// A sentence in JSON:
//
//	{
//	  "id": "s1",
//	  "tokens": [{"id": "1", "form": "Dogs"}, {"id": "2", "form": "bark"}],
//	  "edges": [
//	    {"id": "e1", "source": "2", "target": "1", "label": "nsubj"},
//	    {"id": "e2", "source": "ROOT", "target": "2", "label": "root"}
//	  ]
//	}
//
// Missing token IDs default to their 1-based index and missing edge IDs to
// "e" followed by their 1-based index.
//
// # CoNLL-U
//
// HEAD/DEPREL columns become ordinary edges, with head 0 attached to
// [depgraph.RootID]. Entries of the enhanced DEPS column that differ from
// the basic relation become alternative edges, hidden until alternatives
// are shown. Multiword-token ranges and empty nodes are skipped. The
// sent_id and text comments populate [Sentence.ID] and [Sentence.Text].
//
// # Layout Serialization
//
// A [Layout] lists every laid-out edge with its geometry, stratum and
// anchor offsets, plus the edges that were excluded as dangling.
//
//	data, _ := graph.MarshalLayout(l)
//	l, _ = graph.UnmarshalLayout(data)
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph
