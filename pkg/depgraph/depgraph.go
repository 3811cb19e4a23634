package depgraph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// RootID is the conventional endpoint ID for attachment to the implicit
// sentence root. It can never be used as an ordinary token ID.
const RootID = "ROOT"

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] and [Graph.InsertNode]
	// when the node ID is empty or equal to [RootID].
	ErrInvalidNodeID = errors.New("invalid node ID")

	// ErrDuplicateNodeID is returned when a node with the same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned when a node ID is not present in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidEdgeID is returned by [Graph.AddEdge] when the edge ID is empty.
	ErrInvalidEdgeID = errors.New("edge ID must not be empty")

	// ErrDuplicateEdgeID is returned by [Graph.AddEdge] when an edge with the
	// same ID already exists, visible or not.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")

	// ErrUnknownEdge is returned when an edge ID is not present in the graph.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrPositionOutOfRange is returned by [Graph.InsertNode] when the
	// requested position is outside 0..NodeCount().
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrDanglingEdge is returned by [Graph.Validate] when neither endpoint
	// of a visible edge resolves to a token.
	ErrDanglingEdge = errors.New("dangling edge")
)

// Metadata stores arbitrary key-value pairs attached to tokens or edges,
// such as CoNLL-U lemma and part-of-speech columns. Metadata maps are never
// nil once added to a graph.
type Metadata map[string]any

// Node is a token of the sentence.
type Node struct {
	ID       string   // Unique token identifier
	Form     string   // Surface form shown under the arcs
	Position int      // Dense 0-based index, maintained by the graph
	Meta     Metadata // Arbitrary key-value metadata
}

// Edge is a directed, labeled dependency between two tokens. Source is the
// head and Target the dependent.
type Edge struct {
	ID     string
	Source string
	Target string
	Label  string

	// Alternative edges are hidden until [Graph.ShowAlternatives] is enabled.
	Alternative bool

	Meta Metadata
}

// Listener receives invalidation notices after structural mutations.
// Invalidate names the edges whose geometry may have changed; Reset means
// every cached value derived from the graph is stale.
type Listener interface {
	Invalidate(edgeIDs ...string)
	Reset()
}

// Graph is the dependency graph of a single sentence.
//
// The zero value is not usable; create graphs with [New].
type Graph struct {
	id        string
	nodes     []*Node          // ordered by position
	index     map[string]*Node // id -> node
	edges     []Edge           // insertion order, alternatives included
	showAlt   bool
	listeners []Listener
}

// New creates an empty graph for the sentence with the given ID.
func New(id string) *Graph {
	return &Graph{
		id:    id,
		index: make(map[string]*Node),
	}
}

// ID returns the sentence ID.
func (g *Graph) ID() string { return g.id }

// Subscribe registers a listener for invalidation notices.
func (g *Graph) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
}

func (g *Graph) notify(ids ...string) {
	if len(ids) == 0 {
		return
	}
	for _, l := range g.listeners {
		l.Invalidate(ids...)
	}
}

func (g *Graph) reset() {
	for _, l := range g.listeners {
		l.Reset()
	}
}

// AddNode appends a token at the end of the sentence. The node's Position
// field is ignored and set to the next free index.
func (g *Graph) AddNode(n Node) error {
	return g.InsertNode(len(g.nodes), n)
}

// InsertNode inserts a token at position at and renumbers every token that
// follows it. Returns [ErrPositionOutOfRange] when at is not in
// 0..NodeCount().
func (g *Graph) InsertNode(at int, n Node) error {
	if n.ID == "" || n.ID == RootID {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if at < 0 || at > len(g.nodes) {
		return fmt.Errorf("%w: %d", ErrPositionOutOfRange, at)
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes = slices.Insert(g.nodes, at, node)
	g.index[node.ID] = node
	g.renumber(at)
	g.reset()
	return nil
}

// RemoveNode removes a token together with every edge attached to it and
// renumbers the tokens that follow.
func (g *Graph) RemoveNode(id string) error {
	node, ok := g.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	at := node.Position
	g.nodes = slices.Delete(g.nodes, at, at+1)
	delete(g.index, id)
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool {
		return e.Source == id || e.Target == id
	})
	g.renumber(at)
	g.reset()
	return nil
}

func (g *Graph) renumber(from int) {
	for i := from; i < len(g.nodes); i++ {
		g.nodes[i].Position = i
	}
}

// AddEdge adds an edge. Endpoints are not checked: an edge to [RootID] is a
// root edge, and an edge with no resolvable endpoint is reported later as
// dangling rather than rejected here.
func (g *Graph) AddEdge(e Edge) error {
	if e.ID == "" {
		return ErrInvalidEdgeID
	}
	if g.edgeIndex(e.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateEdgeID, e.ID)
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	g.edges = append(g.edges, e)
	if g.visible(e) {
		g.notify(e.ID)
	}
	return nil
}

// RemoveEdge removes the edge with the given ID.
func (g *Graph) RemoveEdge(id string) error {
	i := g.edgeIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownEdge, id)
	}
	e := g.edges[i]
	g.edges = slices.Delete(g.edges, i, i+1)
	if g.visible(e) {
		g.notify(id)
	}
	return nil
}

// SetEndpoints re-attaches an existing edge to new endpoints.
func (g *Graph) SetEndpoints(id, source, target string) error {
	i := g.edgeIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownEdge, id)
	}
	g.edges[i].Source = source
	g.edges[i].Target = target
	if g.visible(g.edges[i]) {
		g.notify(id)
	}
	return nil
}

// ShowAlternatives toggles whether alternative edges are part of the
// visible set. Listeners are notified with the IDs of every alternative
// edge that appears or disappears.
func (g *Graph) ShowAlternatives(show bool) {
	if g.showAlt == show {
		return
	}
	g.showAlt = show
	var ids []string
	for _, e := range g.edges {
		if e.Alternative {
			ids = append(ids, e.ID)
		}
	}
	g.notify(ids...)
}

// AlternativesShown reports whether alternative edges are visible.
func (g *Graph) AlternativesShown() bool { return g.showAlt }

func (g *Graph) visible(e Edge) bool { return g.showAlt || !e.Alternative }

func (g *Graph) edgeIndex(id string) int {
	return slices.IndexFunc(g.edges, func(e Edge) bool { return e.ID == id })
}

// OrderedNodes returns a copy of the tokens in position order.
func (g *Graph) OrderedNodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = *n
	}
	return out
}

// Edges returns a copy of the visible edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if g.visible(e) {
			out = append(out, e)
		}
	}
	return out
}

// AllEdges returns a copy of every edge, hidden alternatives included.
func (g *Graph) AllEdges() []Edge { return slices.Clone(g.edges) }

// Node returns the token with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Edge returns the edge with the given ID, visible or not.
func (g *Graph) Edge(id string) (Edge, bool) {
	i := g.edgeIndex(id)
	if i < 0 {
		return Edge{}, false
	}
	return g.edges[i], true
}

// Position returns the position of the token with the given ID.
func (g *Graph) Position(id string) (int, bool) {
	n, ok := g.index[id]
	if !ok {
		return 0, false
	}
	return n.Position, true
}

// NodeCount returns the number of tokens.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of visible edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, e := range g.edges {
		if g.visible(e) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the graph without its listeners.
func (g *Graph) Clone() *Graph {
	c := New(g.id)
	c.showAlt = g.showAlt
	for _, n := range g.nodes {
		cp := *n
		cp.Meta = maps.Clone(n.Meta)
		c.nodes = append(c.nodes, &cp)
		c.index[cp.ID] = &cp
	}
	c.edges = make([]Edge, len(g.edges))
	for i, e := range g.edges {
		e.Meta = maps.Clone(e.Meta)
		c.edges[i] = e
	}
	return c
}

// Validate checks that positions are dense and that every visible edge has
// at least one resolvable endpoint. All dangling edges are reported in a
// single joined error.
func (g *Graph) Validate() error {
	for i, n := range g.nodes {
		if n.Position != i {
			return fmt.Errorf("node %s: position %d, want %d", n.ID, n.Position, i)
		}
	}
	var errs []error
	for _, e := range g.Edges() {
		_, okS := g.index[e.Source]
		_, okT := g.index[e.Target]
		if !okS && !okT {
			errs = append(errs, fmt.Errorf("%w: %s (%s -> %s)", ErrDanglingEdge, e.ID, e.Source, e.Target))
		}
	}
	return errors.Join(errs...)
}

// NodeIDs returns the token IDs in position order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}
