// Package arc computes stacked arc-diagram layouts for dependency graphs.
//
// # Overview
//
// Tokens sit on a horizontal baseline in a fixed order and every edge is
// drawn as an arc between its two tokens. The layout assigns each edge a
// signed integer stratum: the magnitude is the arc's height above (or
// below) the baseline and the sign selects the side. Edges that
// geometrically interleave never share a stratum, while nested and
// disjoint edges are packed as tightly as a single greedy pass allows.
//
// The computation runs in stages, each exposed for testing:
//
//   - Geometry: endpoint positions, span bounds and direction ([Geometry])
//   - Crossing: the pure interleave predicate ([Crosses])
//   - Strata: greedy lane assignment over doubled position slots
//   - Offsets: per-anchor nudges for edges ending on the same token
//
// # Usage
//
// Bind an [Engine] to a [depgraph.Graph] so that graph mutations invalidate
// the engine's caches, then read results:
//
//	e := arc.Bind(g)
//	res := e.Run()
//	for _, id := range res.Order {
//	    l := res.Layouts[id]
//	    fmt.Println(id, l.Strata, l.OffsetMin, l.OffsetMax)
//	}
//	fmt.Println("canvas height:", e.MaxStrata())
//
// [Engine.Layout] and [Engine.Geometry] compute lazily, so calling them
// without an explicit [Engine.Run] is also fine.
//
// # Slots
//
// Occupancy is tracked on doubled positions. An ordinary edge spanning
// positions min..max claims the half-open slot range [2·min+1, 2·max+1), so
// two edges that only share a token never claim a common slot. Root edges
// and other zero-length edges claim the single slot 2·min+1.
//
// # Root Edges
//
// An edge with exactly one resolvable endpoint attaches to the implicit
// sentence root and is anchored at that endpoint. Root and self-referential
// edges have length zero, sort first and are placed on stratum +1.
//
// # Errors
//
// An edge whose endpoints both fail to resolve is dangling. It is excluded
// from the layout and reported in [Result.Dangling]; unrelated edges are
// laid out normally.
//
// # Concurrency
//
// An Engine is single-threaded. It owns its caches and must not be used
// from several goroutines at once; lay out independent sentences on
// independent engines instead.
package arc
