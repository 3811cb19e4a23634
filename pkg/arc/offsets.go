package arc

// assignOffsets nudges edges that share an anchor token with an edge
// stacked above them. For each edge, every stratum strictly between the
// baseline and its own is inspected; a different edge found there whose
// own min (or max) anchor is the same token gets its OffsetMin (or
// OffsetMax) incremented.
func assignOffsets(items []placed, geoms map[string]Geometry, layouts map[string]*Layout, occ occupancy) {
	for _, it := range items {
		k := layouts[it.id].Strata
		step := 1
		if k < 0 {
			step = -1
		}
		minSlot, maxSlot := 2*it.geom.Min+1, 2*it.geom.Max
		for s := step; s != k; s += step {
			if other, ok := occ.at(s, minSlot); ok && other != it.id && geoms[other].Min == it.geom.Min {
				layouts[other].OffsetMin++
			}
			if other, ok := occ.at(s, maxSlot); ok && other != it.id && geoms[other].Max == it.geom.Max {
				layouts[other].OffsetMax++
			}
		}
	}
}
