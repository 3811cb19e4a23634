package arc

// Crosses reports whether two edges interleave: exactly one endpoint of a
// lies strictly inside (b.Min, b.Max) while the other lies strictly outside
// [b.Min, b.Max]. A shared endpoint is neither inside nor outside, so edges
// meeting at a token never cross on that account alone.
//
// Crosses is symmetric and irreflexive but not transitive.
func Crosses(a, b Geometry) bool {
	return straddles(a.Min, a.Max, b) || straddles(a.Max, a.Min, b)
}

func straddles(in, out int, g Geometry) bool {
	return g.Min < in && in < g.Max && (out < g.Min || out > g.Max)
}

// CountCrossings returns the number of interleaving pairs among the
// resolvable edges of the engine's current snapshot.
func (e *Engine) CountCrossings() int {
	items, _ := e.resolveAll()
	n := 0
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if Crosses(items[i].geom, items[j].geom) {
				n++
			}
		}
	}
	return n
}
