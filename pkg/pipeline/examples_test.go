package pipeline

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arcstrata/pkg/cache"
	"github.com/matzehuels/arcstrata/pkg/graph"
)

const treebankDir = "../../examples/treebanks"

func readSample(t *testing.T, name string) *graph.Document {
	t.Helper()
	doc, err := ReadFile(context.Background(), filepath.Join(treebankDir, name), "")
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return doc
}

func TestSampleTreebanks(t *testing.T) {
	tests := []struct {
		file      string
		sentences int
	}{
		{"sample.conllu", 3},
		{"sample.json", 2},
		{"sample.yaml", 1},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			doc := readSample(t, tt.file)
			if len(doc.Sentences) != tt.sentences {
				t.Fatalf("got %d sentences, want %d", len(doc.Sentences), tt.sentences)
			}

			runner := NewRunner(cache.NewNullCache(), nil, log.New(io.Discard))
			res, err := runner.LayoutDocument(context.Background(), doc, Options{})
			if err != nil {
				t.Fatalf("LayoutDocument: %v", err)
			}
			dogs := res.Layouts[0]
			if dogs.SentenceID != "dogs" || dogs.MaxStrata != 2 {
				t.Errorf("dogs: id = %q, max strata = %d", dogs.SentenceID, dogs.MaxStrata)
			}
		})
	}
}

func TestSampleNonProjective(t *testing.T) {
	doc := readSample(t, "sample.conllu")
	rep := Check(doc.Sentences[1], false)
	if rep.SentenceID != "hearing" {
		t.Fatalf("sentence = %q", rep.SentenceID)
	}
	if rep.Crossings == 0 {
		t.Error("nmod(hearing, issue) crosses obl:tmod(scheduled, today)")
	}
	if rep.Below == 0 {
		t.Error("a crossing edge must be placed below the tokens")
	}
	if rep.Invalid != "" || len(rep.Dangling) != 0 {
		t.Errorf("unexpected problems: %+v", rep)
	}
}

func TestSampleEnhancedEdges(t *testing.T) {
	doc := readSample(t, "sample.conllu")
	coord := doc.Sentences[2]

	basic := Check(coord, false)
	enhanced := Check(coord, true)
	if basic.Edges != 4 {
		t.Errorf("basic edges = %d, want 4", basic.Edges)
	}
	if enhanced.Edges != 6 {
		t.Errorf("enhanced edges = %d, want 6", enhanced.Edges)
	}
}

func TestSampleDangling(t *testing.T) {
	doc := readSample(t, "sample.json")
	rep := Check(doc.Sentences[1], false)
	if len(rep.Dangling) != 1 {
		t.Errorf("dangling = %v, want the edge between missing tokens 4 and 5", rep.Dangling)
	}
}
