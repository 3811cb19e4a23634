package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/arcstrata/pkg/arc"
	"github.com/matzehuels/arcstrata/pkg/errors"
	"github.com/matzehuels/arcstrata/pkg/graph"
	"github.com/matzehuels/arcstrata/pkg/observability"
)

// ComputeLayout lays out one sentence without consulting any cache.
// Dangling edges do not fail the layout; they are listed in
// [graph.Layout.Dangling].
func ComputeLayout(ctx context.Context, s graph.Sentence, alternatives bool) (graph.Layout, error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, s.ID, len(s.Edges))

	g, err := graph.ToDepGraph(s)
	if err != nil {
		hooks.OnLayoutComplete(ctx, s.ID, 0, time.Since(start), err)
		return graph.Layout{}, err
	}
	g.ShowAlternatives(alternatives)

	res := arc.Bind(g).Run()
	l := graph.NewLayout(g, res)
	l.Text = s.Text
	for _, d := range l.Dangling {
		hooks.OnDanglingEdge(ctx, s.ID, d.ID)
	}

	hooks.OnLayoutComplete(ctx, s.ID, l.MaxStrata, time.Since(start), nil)
	return l, nil
}

// Report summarizes the structural health of one sentence.
type Report struct {
	SentenceID string   `json:"sentence_id"`
	Tokens     int      `json:"tokens"`
	Edges      int      `json:"edges"`
	Crossings  int      `json:"crossings"`
	MaxStrata  int      `json:"max_strata"`
	Below      int      `json:"below"`
	Dangling   []string `json:"dangling,omitempty"`
	Invalid    string   `json:"invalid,omitempty"`
}

// Check lays out s and reports crossing pairs, edges pushed below the
// token line and dangling edges. A sentence that cannot be built is
// reported with Invalid set instead of failing the whole check.
func Check(s graph.Sentence, alternatives bool) Report {
	rep := Report{SentenceID: s.ID, Tokens: len(s.Tokens)}

	g, err := graph.ToDepGraph(s)
	if err != nil {
		rep.Invalid = err.Error()
		return rep
	}
	g.ShowAlternatives(alternatives)

	engine := arc.Bind(g)
	res := engine.Run()
	rep.Edges = g.EdgeCount()
	rep.Crossings = engine.CountCrossings()
	rep.MaxStrata = res.MaxStrata
	for _, l := range res.Layouts {
		if l.Strata < 0 {
			rep.Below++
		}
	}
	for _, d := range res.Dangling {
		rep.Dangling = append(rep.Dangling, d.EdgeID)
	}
	if err := g.Validate(); err != nil && len(rep.Dangling) == 0 {
		rep.Invalid = err.Error()
	}
	return rep
}

// StrictError returns the error a strict check fails with, or nil when
// every report is clean. Dangling edges take precedence and carry
// [errors.ErrCodeDanglingEdge]; invalid sentences alone carry
// [errors.ErrCodeInvalidInput].
func StrictError(reports []Report) error {
	var dangling, invalid []string
	for _, r := range reports {
		switch {
		case len(r.Dangling) > 0:
			dangling = append(dangling, r.SentenceID)
		case r.Invalid != "":
			invalid = append(invalid, r.SentenceID)
		}
	}
	switch {
	case len(dangling) > 0:
		return errors.New(errors.ErrCodeDanglingEdge, "dangling edges in %d sentence(s): %s",
			len(dangling), strings.Join(dangling, ", "))
	case len(invalid) > 0:
		return errors.New(errors.ErrCodeInvalidInput, "invalid structure in %d sentence(s): %s",
			len(invalid), strings.Join(invalid, ", "))
	}
	return nil
}
