// Package depgraph provides the sentence-level dependency graph consumed by
// the arc layout engine.
//
// # Overview
//
// A [Graph] holds the tokens of one sentence in a fixed left-to-right order
// together with labeled, directed edges between them. Each token carries a
// dense 0-based [Node.Position] which the graph maintains itself: inserting
// or removing a token renumbers every token that follows it.
//
//	g := depgraph.New("s1")
//	_ = g.AddNode(depgraph.Node{ID: "1", Form: "Dogs"})
//	_ = g.AddNode(depgraph.Node{ID: "2", Form: "bark"})
//	_ = g.AddEdge(depgraph.Edge{ID: "e1", Source: "2", Target: "1", Label: "nsubj"})
//	_ = g.AddEdge(depgraph.Edge{ID: "e2", Source: depgraph.RootID, Target: "2", Label: "root"})
//
// # Root and Dangling Edges
//
// Edge endpoints are not required to name ordinary tokens. An endpoint equal
// to [RootID] (or any other unknown ID) attaches the edge to an implicit
// sentence root; the layout treats such an edge as anchored at the one
// endpoint that does resolve. An edge whose endpoints both fail to resolve is
// dangling and is reported by [Graph.Validate] and by the layout engine.
//
// # Alternative Edges
//
// Edges flagged [Edge.Alternative] are hidden from [Graph.Edges] until
// [Graph.ShowAlternatives] splices them into the visible set. CoNLL-U
// enhanced dependencies are loaded this way.
//
// # Invalidation
//
// Cached layout data derived from a graph is only valid for the snapshot it
// was computed from. Every structural mutation notifies the registered
// [Listener]s, either with the affected edge IDs or with a full reset, so a
// bound layout engine never serves stale geometry.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Listeners are called
// synchronously from the mutating method.
package depgraph
