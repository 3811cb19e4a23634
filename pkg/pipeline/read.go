package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/matzehuels/arcstrata/pkg/graph"
	"github.com/matzehuels/arcstrata/pkg/observability"
)

// ReadFile reads a document from path. An empty format is detected from
// the file extension.
func ReadFile(ctx context.Context, path, format string) (*graph.Document, error) {
	if format == "" {
		f, err := graph.DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = f
	}
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnReadStart(ctx, format)

	doc, err := graph.ReadDocumentFile(path, format)
	n := 0
	if doc != nil {
		n = len(doc.Sentences)
	}
	hooks.OnReadComplete(ctx, format, n, time.Since(start), err)
	return doc, err
}

// Read decodes a document in the given format from r.
func Read(ctx context.Context, r io.Reader, format string) (*graph.Document, error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnReadStart(ctx, format)

	doc, err := graph.ReadDocument(r, format)
	n := 0
	if doc != nil {
		n = len(doc.Sentences)
	}
	hooks.OnReadComplete(ctx, format, n, time.Since(start), err)
	return doc, err
}
