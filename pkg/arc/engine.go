package arc

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/arcstrata/pkg/depgraph"
)

// Layout is the computed placement of one edge.
type Layout struct {
	// Strata is the signed lane: magnitude is the distance from the
	// baseline, sign is the side. 0 means unassigned.
	Strata int
	// OffsetMin and OffsetMax separate this edge from edges stacked above
	// it that end on the same min or max token.
	OffsetMin int
	OffsetMax int
}

// Result is the outcome of one layout run.
type Result struct {
	// Order lists laid-out edge IDs in processing order (shortest first).
	Order []string
	// Layouts and Geometries are keyed by edge ID and omit dangling edges.
	Layouts    map[string]Layout
	Geometries map[string]Geometry
	// MaxStrata is the largest |Strata| assigned.
	MaxStrata int
	// Dangling lists edges excluded from the layout, in input order.
	Dangling []*DanglingEdgeError
}

// Engine lays out the edges of a [Source] and caches per-edge geometry and
// layout until invalidated.
//
// The zero value is not usable; create engines with [New] or [Bind].
type Engine struct {
	src  Source
	snap *snapshot

	geoms     map[string]Geometry
	layouts   map[string]*Layout
	order     []string
	dangling  []*DanglingEdgeError
	maxStrata int
	fresh     bool
}

// New creates an engine over src. The caller is responsible for calling
// [Engine.Invalidate] or [Engine.Reset] after mutating src.
func New(src Source) *Engine {
	return &Engine{
		src:   src,
		geoms: make(map[string]Geometry),
	}
}

// Bind creates an engine over g and subscribes it to g's invalidation
// notices, so mutations through g never leave stale results behind.
func Bind(g *depgraph.Graph) *Engine {
	e := New(g)
	g.Subscribe(e)
	return e
}

// Invalidate drops the cached geometry of the named edges and all cached
// layouts, and resets the max-stratum counter. Layouts are dropped wholesale
// because any edge change can move the strata of unrelated edges. Calling
// Invalidate with no IDs is the same as [Engine.Reset].
func (e *Engine) Invalidate(edgeIDs ...string) {
	if len(edgeIDs) == 0 {
		e.Reset()
		return
	}
	for _, id := range edgeIDs {
		delete(e.geoms, id)
	}
	e.snap = nil
	e.dropLayouts()
}

// Reset drops every cached value.
func (e *Engine) Reset() {
	clear(e.geoms)
	e.snap = nil
	e.dropLayouts()
}

func (e *Engine) dropLayouts() {
	e.layouts = nil
	e.order = nil
	e.dangling = nil
	e.maxStrata = 0
	e.fresh = false
}

func (e *Engine) snapshot() *snapshot {
	if e.snap == nil {
		e.snap = takeSnapshot(e.src)
	}
	return e.snap
}

// Geometry returns the memoized geometry of an edge. It fails with
// [ErrUnknownEdge] for IDs outside the snapshot and with a
// [*DanglingEdgeError] when neither endpoint resolves.
func (e *Engine) Geometry(id string) (Geometry, error) {
	if g, ok := e.geoms[id]; ok {
		return g, nil
	}
	snap := e.snapshot()
	i, ok := snap.byID[id]
	if !ok {
		return Geometry{}, fmt.Errorf("%w: %s", ErrUnknownEdge, id)
	}
	g, err := snap.resolve(snap.edges[i])
	if err != nil {
		return Geometry{}, err
	}
	e.geoms[id] = g
	return g, nil
}

// Crosses reports whether the two named edges interleave.
func (e *Engine) Crosses(a, b string) (bool, error) {
	ga, err := e.Geometry(a)
	if err != nil {
		return false, err
	}
	gb, err := e.Geometry(b)
	if err != nil {
		return false, err
	}
	return Crosses(ga, gb), nil
}

// Layout returns the layout of an edge, running the layout first if the
// cache is stale.
func (e *Engine) Layout(id string) (Layout, error) {
	if !e.fresh {
		e.compute()
	}
	if l, ok := e.layouts[id]; ok {
		return *l, nil
	}
	for _, d := range e.dangling {
		if d.EdgeID == id {
			return Layout{}, d
		}
	}
	return Layout{}, fmt.Errorf("%w: %s", ErrUnknownEdge, id)
}

// MaxStrata returns the largest |Strata| of the last run, or 0 if nothing
// has been laid out since the last invalidation.
func (e *Engine) MaxStrata() int { return e.maxStrata }

// Run lays out every edge of the snapshot. On an unchanged, uninvalidated
// snapshot it returns the cached outcome, so repeated runs are identical.
func (e *Engine) Run() *Result {
	if !e.fresh {
		e.compute()
	}
	res := &Result{
		Order:      slices.Clone(e.order),
		Layouts:    make(map[string]Layout, len(e.layouts)),
		Geometries: make(map[string]Geometry, len(e.order)),
		MaxStrata:  e.maxStrata,
		Dangling:   slices.Clone(e.dangling),
	}
	for id, l := range e.layouts {
		res.Layouts[id] = *l
		res.Geometries[id] = e.geoms[id]
	}
	return res
}

// resolveAll returns the resolvable edges of the snapshot in input order and
// the dangling ones separately.
func (e *Engine) resolveAll() ([]placed, []*DanglingEdgeError) {
	snap := e.snapshot()
	items := make([]placed, 0, len(snap.edges))
	var dangling []*DanglingEdgeError
	for _, edge := range snap.edges {
		g, err := e.Geometry(edge.ID)
		if err != nil {
			var d *DanglingEdgeError
			if errors.As(err, &d) {
				dangling = append(dangling, d)
			}
			continue
		}
		items = append(items, placed{id: edge.ID, geom: g})
	}
	return items, dangling
}

func (e *Engine) compute() {
	items, dangling := e.resolveAll()
	sortByLength(items)

	occ := make(occupancy)
	strata := assignStrata(items, occ)

	e.layouts = make(map[string]*Layout, len(items))
	e.order = make([]string, len(items))
	e.maxStrata = 0
	for i, it := range items {
		k := strata[it.id]
		e.layouts[it.id] = &Layout{Strata: k}
		e.order[i] = it.id
		e.maxStrata = max(e.maxStrata, abs(k))
	}
	assignOffsets(items, e.geoms, e.layouts, occ)

	e.dangling = dangling
	e.fresh = true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
