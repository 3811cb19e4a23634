package arc

import (
	"cmp"
	"slices"
)

// occupancy maps a signed stratum to the doubled slots claimed on it and
// the edge holding each slot.
type occupancy map[int]map[int]string

func (o occupancy) at(k, slot int) (string, bool) {
	id, ok := o[k][slot]
	return id, ok
}

func (o occupancy) claim(k, lo, hi int, id string) {
	row := o[k]
	if row == nil {
		row = make(map[int]string, hi-lo)
		o[k] = row
	}
	for s := lo; s < hi; s++ {
		row[s] = id
	}
}

// overlapping returns the distinct edges holding any slot of [lo, hi) on
// stratum k, in slot order.
func (o occupancy) overlapping(k, lo, hi int) []string {
	row := o[k]
	if len(row) == 0 {
		return nil
	}
	var ids []string
	for s := lo; s < hi; s++ {
		if id, ok := row[s]; ok && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// placed is a resolvable edge awaiting or holding a stratum.
type placed struct {
	id   string
	geom Geometry
}

// sortByLength orders edges shortest first. The sort is stable, so edges of
// equal length keep their input order; zero-length root and self edges
// always come first.
func sortByLength(items []placed) {
	slices.SortStableFunc(items, func(a, b placed) int {
		return cmp.Compare(a.geom.Length, b.geom.Length)
	})
}

// assignStrata walks items in order and gives each a nonzero stratum such
// that no two crossing edges share one. It returns the stratum per edge ID
// and leaves the final slot claims in occ for the offset pass.
func assignStrata(items []placed, occ occupancy) map[string]int {
	geoms := make(map[string]Geometry, len(items))
	for _, it := range items {
		geoms[it.id] = it.geom
	}
	strata := make(map[string]int, len(items))
	for _, it := range items {
		strata[it.id] = place(it, geoms, occ)
	}
	return strata
}

// place finds and claims the stratum for a single edge.
//
// Zero-length edges go to stratum 1 unconditionally: their single slot can
// never interleave with another edge. Ordinary edges climb the positive
// side while every overlapping occupant is merely nested, and switch to the
// negative side as soon as an overlapping occupant crosses them. On the
// negative side any overlap pushes the edge further out.
func place(it placed, geoms map[string]Geometry, occ occupancy) int {
	lo, hi := it.geom.slots()
	if it.geom.Degenerate() {
		occ.claim(1, lo, hi, it.id)
		return 1
	}

	for k := 1; ; k++ {
		occupants := occ.overlapping(k, lo, hi)
		if len(occupants) == 0 {
			occ.claim(k, lo, hi, it.id)
			return k
		}
		if slices.ContainsFunc(occupants, func(id string) bool { return Crosses(it.geom, geoms[id]) }) {
			break
		}
	}

	for k := -1; ; k-- {
		if len(occ.overlapping(k, lo, hi)) == 0 {
			occ.claim(k, lo, hi, it.id)
			return k
		}
	}
}
