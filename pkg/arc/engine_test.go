package arc

import (
	"errors"
	"reflect"
	"testing"

	"github.com/matzehuels/arcstrata/pkg/depgraph"
)

func TestGeometry(t *testing.T) {
	g := build(t, 5, edge("fwd", 1, 4), edge("back", 3, 0))
	e := New(g)

	tests := []struct {
		id   string
		want Geometry
	}{
		{"fwd", Geometry{Min: 1, Max: 4, HDir: 1, Length: 3}},
		{"back", Geometry{Min: 0, Max: 3, HDir: -1, Length: 3}},
	}
	for _, tt := range tests {
		got, err := e.Geometry(tt.id)
		if err != nil {
			t.Fatalf("Geometry(%s): %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("Geometry(%s) = %+v, want %+v", tt.id, got, tt.want)
		}
	}

	if _, err := e.Geometry("nope"); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("Geometry(nope) error = %v, want ErrUnknownEdge", err)
	}
}

func TestDanglingEdgeIsIsolated(t *testing.T) {
	g := build(t, 3, edge("ok", 0, 2))
	_ = g.AddEdge(depgraph.Edge{ID: "lost", Source: "ghost", Target: "phantom"})
	e := New(g)

	res := e.Run()
	if len(res.Dangling) != 1 || res.Dangling[0].EdgeID != "lost" {
		t.Fatalf("Dangling = %v, want [lost]", res.Dangling)
	}
	if _, ok := res.Layouts["lost"]; ok {
		t.Error("dangling edge must be excluded from layouts")
	}
	if res.Layouts["ok"].Strata != 1 {
		t.Errorf("unrelated edge strata = %d, want 1", res.Layouts["ok"].Strata)
	}

	_, err := e.Layout("lost")
	if !errors.Is(err, ErrDanglingEdge) {
		t.Errorf("Layout(lost) error = %v, want ErrDanglingEdge", err)
	}
	var de *DanglingEdgeError
	if !errors.As(err, &de) || de.Source != "ghost" {
		t.Errorf("errors.As did not yield the dangling edge: %v", err)
	}
	if _, err := e.Geometry("lost"); !errors.Is(err, ErrDanglingEdge) {
		t.Errorf("Geometry(lost) error = %v", err)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	g := build(t, 6, edge("a", 0, 3), edge("b", 1, 5), edge("c", 2, 4), edge("r", -1, 2))
	e := New(g)

	first := e.Run()
	second := e.Run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("runs differ:\n%+v\n%+v", first, second)
	}
	for _, id := range first.Order {
		l, err := e.Layout(id)
		if err != nil || l != first.Layouts[id] {
			t.Errorf("Layout(%s) = %+v, %v; want %+v", id, l, err, first.Layouts[id])
		}
	}
}

func TestLayoutIsLazy(t *testing.T) {
	g := build(t, 5, edge("A", 0, 2), edge("B", 1, 3), edge("C", 3, 4))
	e := New(g)

	if e.MaxStrata() != 0 {
		t.Fatalf("MaxStrata before any run = %d, want 0", e.MaxStrata())
	}
	l, err := e.Layout("B")
	if err != nil {
		t.Fatalf("Layout(B): %v", err)
	}
	if l.Strata != -1 || e.MaxStrata() != 1 {
		t.Errorf("Layout(B) = %+v, MaxStrata = %d", l, e.MaxStrata())
	}
}

func TestResetClearsMaxStrata(t *testing.T) {
	g := build(t, 4, edge("Z", 0, 3), edge("Y", 0, 2), edge("X", 0, 1))
	e := New(g)
	e.Run()
	if e.MaxStrata() != 3 {
		t.Fatalf("MaxStrata = %d, want 3", e.MaxStrata())
	}

	e.Reset()
	if e.MaxStrata() != 0 {
		t.Errorf("MaxStrata after Reset = %d, want 0", e.MaxStrata())
	}
	e.Run()
	e.Invalidate("X")
	if e.MaxStrata() != 0 {
		t.Errorf("MaxStrata after Invalidate = %d, want 0", e.MaxStrata())
	}
}

func TestUnboundEngineServesStaleGeometry(t *testing.T) {
	g := build(t, 4, edge("e", 0, 1))
	e := New(g)
	if _, err := e.Geometry("e"); err != nil {
		t.Fatal(err)
	}

	_ = g.SetEndpoints("e", "t0", "t3")
	if got, _ := e.Geometry("e"); got.Max != 1 {
		t.Fatalf("unbound engine should keep its snapshot until invalidated, got %+v", got)
	}
	e.Invalidate("e")
	if got, _ := e.Geometry("e"); got.Max != 3 {
		t.Errorf("Geometry after Invalidate = %+v, want Max 3", got)
	}
}

func TestBindFollowsMutations(t *testing.T) {
	g := build(t, 5, edge("A", 0, 2), edge("C", 3, 4))
	e := Bind(g)
	if e.Run().MaxStrata != 1 {
		t.Fatal("setup: expected MaxStrata 1")
	}

	_ = g.AddEdge(depgraph.Edge{ID: "B", Source: "t1", Target: "t3"})
	if e.MaxStrata() != 0 {
		t.Error("AddEdge should invalidate the bound engine")
	}
	if l, _ := e.Layout("B"); l.Strata != -1 {
		t.Errorf("strata(B) = %d, want -1", l.Strata)
	}

	// Inserting a token before everything shifts every position.
	_ = g.InsertNode(0, depgraph.Node{ID: "t-new"})
	geom, err := e.Geometry("A")
	if err != nil {
		t.Fatal(err)
	}
	if geom.Min != 1 || geom.Max != 3 {
		t.Errorf("Geometry(A) after insert = %+v, want 1..3", geom)
	}

	_ = g.RemoveEdge("B")
	if _, err := e.Layout("B"); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("Layout of removed edge error = %v", err)
	}
}

func TestBindAlternatives(t *testing.T) {
	g := build(t, 4, edge("base", 0, 2))
	_ = g.AddEdge(depgraph.Edge{ID: "alt", Source: "t1", Target: "t3", Alternative: true})
	e := Bind(g)

	if res := e.Run(); len(res.Layouts) != 1 {
		t.Fatalf("hidden alternative laid out: %+v", res.Layouts)
	}
	g.ShowAlternatives(true)
	res := e.Run()
	if res.Layouts["alt"].Strata != -1 {
		t.Errorf("strata(alt) = %d, want -1", res.Layouts["alt"].Strata)
	}
}

func TestEngineCrosses(t *testing.T) {
	g := build(t, 5, edge("A", 0, 2), edge("B", 1, 3))
	e := New(g)
	ok, err := e.Crosses("A", "B")
	if err != nil || !ok {
		t.Errorf("Crosses(A, B) = %v, %v; want true", ok, err)
	}
	if _, err := e.Crosses("A", "missing"); !errors.Is(err, ErrUnknownEdge) {
		t.Errorf("Crosses with unknown edge error = %v", err)
	}
}
