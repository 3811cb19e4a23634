package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/arcstrata/pkg/depgraph"
	"github.com/matzehuels/arcstrata/pkg/graph"
)

func sampleLayout() graph.Layout {
	return graph.Layout{
		SentenceID: "s1",
		Tokens: []graph.LayoutToken{
			{ID: "1", Form: "Dogs", Position: 0},
			{ID: "2", Form: "bark", Position: 1},
			{ID: "3", Form: "loudly", Position: 2},
		},
		Edges: []graph.EdgeLayout{
			{ID: "e1", Source: "2", Target: "1", Label: "nsubj", Min: 0, Max: 1, HDir: -1, Length: 1, Strata: 1},
			{ID: "e2", Source: depgraph.RootID, Target: "2", Label: "root", Min: 1, Max: 1, HDir: 1, Root: true, Strata: 1},
			{ID: "e3", Source: "2", Target: "3", Label: "advmod", Min: 1, Max: 2, HDir: 1, Length: 1, Strata: -1},
			{ID: "e3.1", Source: "1", Target: "3", Label: "dep", Min: 0, Max: 2, HDir: 1, Length: 2, Strata: 2, Alternative: true},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{})

	for _, want := range []string{
		"digraph G {",
		"rank=same",
		`"1" -> "2" [style=invis, weight=100];`,
		`"2" -> "3" [style=invis, weight=100];`,
		`"ROOT" [label="ROOT"`,
		`"2":n -> "1":n [constraint=false, label="nsubj"];`,
		`"ROOT" -> "2":n [constraint=false, label="root"];`,
		`"2":s -> "3":s [constraint=false, label="advmod"];`,
		`"1":n -> "3":n [constraint=false, label="dep", style=dashed];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT should end with closing brace")
	}
}

func TestToDOTWithoutRoot(t *testing.T) {
	l := sampleLayout()
	l.Edges = l.Edges[:1]
	if strings.Contains(ToDOT(l, Options{}), `"ROOT"`) {
		t.Error("ROOT node should only appear when a root edge exists")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{Detailed: true})
	if !strings.Contains(dot, `label="advmod [-1; 0/0]"`) {
		t.Errorf("detailed edge label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `label="loudly\n2"`) {
		t.Errorf("detailed token label missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 62.00 116.00" width="62" height="116"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without viewBox should be returned unchanged")
	}
}
