package arc

import (
	"errors"
	"fmt"

	"github.com/matzehuels/arcstrata/pkg/depgraph"
)

var (
	// ErrDanglingEdge is matched by every [*DanglingEdgeError].
	ErrDanglingEdge = errors.New("dangling edge")

	// ErrUnknownEdge is returned when an edge ID is not in the snapshot.
	ErrUnknownEdge = errors.New("unknown edge")
)

// DanglingEdgeError reports an edge neither of whose endpoints resolves to
// a token position.
type DanglingEdgeError struct {
	EdgeID string
	Source string
	Target string
}

func (e *DanglingEdgeError) Error() string {
	return fmt.Sprintf("dangling edge %s: neither %q nor %q is a token", e.EdgeID, e.Source, e.Target)
}

// Is makes errors.Is(err, ErrDanglingEdge) hold.
func (e *DanglingEdgeError) Is(target error) bool { return target == ErrDanglingEdge }

// Geometry is the position-derived shape of an edge.
type Geometry struct {
	Min    int  // Lesser endpoint position
	Max    int  // Greater endpoint position
	HDir   int  // +1 when the source precedes the target, else -1
	Length int  // Max - Min; 0 for root and self edges
	Root   bool // Exactly one endpoint resolved
}

// Degenerate reports whether the edge spans a single position.
func (g Geometry) Degenerate() bool { return g.Min == g.Max }

// slots returns the half-open doubled slot range claimed by the edge.
func (g Geometry) slots() (lo, hi int) {
	if g.Degenerate() {
		return 2*g.Min + 1, 2*g.Min + 2
	}
	return 2*g.Min + 1, 2*g.Max + 1
}

// Source provides the snapshot an Engine lays out. *depgraph.Graph
// satisfies it.
type Source interface {
	OrderedNodes() []depgraph.Node
	Edges() []depgraph.Edge
}

// snapshot is the frozen view of a Source taken on first access after an
// invalidation.
type snapshot struct {
	positions map[string]int
	edges     []depgraph.Edge
	byID      map[string]int
}

func takeSnapshot(src Source) *snapshot {
	nodes := src.OrderedNodes()
	edges := src.Edges()
	s := &snapshot{
		positions: make(map[string]int, len(nodes)),
		edges:     edges,
		byID:      make(map[string]int, len(edges)),
	}
	for i, n := range nodes {
		s.positions[n.ID] = i
	}
	for i, e := range edges {
		s.byID[e.ID] = i
	}
	return s
}

// resolve computes the geometry of one edge against the snapshot positions.
func (s *snapshot) resolve(e depgraph.Edge) (Geometry, error) {
	src, okS := s.positions[e.Source]
	dst, okT := s.positions[e.Target]
	switch {
	case !okS && !okT:
		return Geometry{}, &DanglingEdgeError{EdgeID: e.ID, Source: e.Source, Target: e.Target}
	case !okS:
		return Geometry{Min: dst, Max: dst, HDir: 1, Root: true}, nil
	case !okT:
		return Geometry{Min: src, Max: src, HDir: 1, Root: true}, nil
	}
	g := Geometry{Min: min(src, dst), Max: max(src, dst), HDir: 1}
	if src > dst {
		g.HDir = -1
	}
	g.Length = g.Max - g.Min
	return g, nil
}
