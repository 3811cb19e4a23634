package graph

import (
	"strings"
	"testing"

	"github.com/matzehuels/arcstrata/pkg/depgraph"
	"github.com/matzehuels/arcstrata/pkg/errors"
)

const treebank = "# sent_id = ewt-1\n" +
	"# text = They buy and sell books.\n" +
	"1\tThey\tthey\tPRON\tPRP\tCase=Nom\t2\tnsubj\t2:nsubj|4:nsubj\t_\n" +
	"2\tbuy\tbuy\tVERB\tVBP\t_\t0\troot\t0:root\t_\n" +
	"3\tand\tand\tCCONJ\tCC\t_\t4\tcc\t4:cc\t_\n" +
	"4\tsell\tsell\tVERB\tVBP\t_\t2\tconj\t2:conj:and\t_\n" +
	"5\tbooks\tbook\tNOUN\tNNS\t_\t2\tobj\t2:obj|4:obj\tSpaceAfter=No\n" +
	"6\t.\t.\tPUNCT\t.\t_\t2\tpunct\t2:punct\t_\n" +
	"\n" +
	"1-2\tdon't\t_\t_\t_\t_\t_\t_\t_\t_\n" +
	"1\tdo\tdo\tAUX\tVBP\t_\t3\taux\t_\t_\n" +
	"2\tn't\tnot\tPART\tRB\t_\t3\tadvmod\t_\t_\n" +
	"3\tgo\tgo\tVERB\tVB\t_\t0\troot\t_\t_\n" +
	"3.1\tgone\t_\t_\t_\t_\t_\t_\t3:conj\t_\n"

func TestReadCoNLLU(t *testing.T) {
	doc, err := ReadCoNLLU(strings.NewReader(treebank))
	if err != nil {
		t.Fatalf("ReadCoNLLU: %v", err)
	}
	if len(doc.Sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(doc.Sentences))
	}

	s := doc.Sentences[0]
	if s.ID != "ewt-1" || s.Text != "They buy and sell books." {
		t.Errorf("comments not parsed: id=%q text=%q", s.ID, s.Text)
	}
	if len(s.Tokens) != 6 {
		t.Fatalf("got %d tokens, want 6", len(s.Tokens))
	}
	if got := s.Tokens[4].Meta[MetaMisc]; got != "SpaceAfter=No" {
		t.Errorf("misc = %v", got)
	}
	if _, ok := s.Tokens[1].Meta[MetaFeats]; ok {
		t.Error("underscore columns must be omitted from meta")
	}

	edges := map[string]Edge{}
	for _, e := range s.Edges {
		edges[e.ID] = e
	}
	if root := edges["e2"]; root.Source != depgraph.RootID || root.Label != "root" {
		t.Errorf("root edge = %+v", root)
	}
	alt, ok := edges["e1.1"]
	if !ok || !alt.Alternative || alt.Source != "4" || alt.Label != "nsubj" {
		t.Errorf("enhanced edge = %+v, %v", alt, ok)
	}
	if conj := edges["e4.1"]; !conj.Alternative || conj.Label != "conj:and" {
		t.Errorf("relabelled enhanced edge = %+v", conj)
	}
	if _, ok := edges["e3.1"]; ok {
		t.Error("enhanced edge identical to the basic one must not be duplicated")
	}

	second := doc.Sentences[1]
	if second.ID != "2" {
		t.Errorf("unnamed sentence ID = %q, want 2", second.ID)
	}
	if len(second.Tokens) != 3 {
		t.Errorf("multiword range and empty node must be skipped, got %d tokens", len(second.Tokens))
	}
}

func TestReadCoNLLUToDepGraph(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(treebank), FormatCoNLLU)
	if err != nil {
		t.Fatal(err)
	}
	g, err := ToDepGraph(doc.Sentences[0])
	if err != nil {
		t.Fatalf("ToDepGraph: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	basic := g.EdgeCount()
	g.ShowAlternatives(true)
	if g.EdgeCount() <= basic {
		t.Errorf("showing alternatives did not add edges: %d -> %d", basic, g.EdgeCount())
	}
}

func TestReadCoNLLUErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short line", "1\tx\tx\n", "line 1"},
		{"bad deps", "# c\n1\tx\tx\t_\t_\t_\t0\troot\tbroken\t_\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCoNLLU(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Fatalf("error = %v, want INVALID_FORMAT", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
