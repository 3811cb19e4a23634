package graph

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/matzehuels/arcstrata/pkg/arc"
	"github.com/matzehuels/arcstrata/pkg/depgraph"
	"github.com/matzehuels/arcstrata/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Input document formats.
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatTOML   = "toml"
	FormatCoNLLU = "conllu"
)

// Metadata keys filled from CoNLL-U columns.
const (
	MetaLemma = "lemma"
	MetaUPOS  = "upos"
	MetaXPOS  = "xpos"
	MetaFeats = "feats"
	MetaMisc  = "misc"
)

// =============================================================================
// Sentence - Input Serialization
// =============================================================================

// Document is a sequence of sentences, typically one treebank file.
type Document struct {
	Sentences []Sentence `json:"sentences" yaml:"sentences" toml:"sentences"`
}

// Sentence is the serialization format for one dependency-annotated
// sentence.
type Sentence struct {
	ID     string  `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Text   string  `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	Tokens []Token `json:"tokens" yaml:"tokens" toml:"tokens"`
	Edges  []Edge  `json:"edges,omitempty" yaml:"edges,omitempty" toml:"edges,omitempty"`
}

// Token is a word of the sentence. Tokens are listed in sentence order.
type Token struct {
	ID   string         `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Form string         `json:"form" yaml:"form" toml:"form"`
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
}

// Edge is a labeled dependency from Source (head) to Target (dependent).
type Edge struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Source      string `json:"source" yaml:"source" toml:"source"`
	Target      string `json:"target" yaml:"target" toml:"target"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Alternative bool   `json:"alternative,omitempty" yaml:"alternative,omitempty" toml:"alternative,omitempty"`
}

// =============================================================================
// Layout - Output Serialization
// =============================================================================

// Layout is the serialization format of one laid-out sentence.
type Layout struct {
	SentenceID   string         `json:"sentence_id,omitempty"`
	Text         string         `json:"text,omitempty"`
	MaxStrata    int            `json:"max_strata"`
	Alternatives bool           `json:"alternatives,omitempty"`
	Tokens       []LayoutToken  `json:"tokens"`
	Edges        []EdgeLayout   `json:"edges"`
	Dangling     []DanglingEdge `json:"dangling,omitempty"`
}

// LayoutToken is a token with its resolved position.
type LayoutToken struct {
	ID       string `json:"id"`
	Form     string `json:"form"`
	Position int    `json:"position"`
}

// EdgeLayout carries everything a renderer needs to draw one arc.
type EdgeLayout struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Label       string `json:"label,omitempty"`
	Alternative bool   `json:"alternative,omitempty"`

	Min    int  `json:"min"`
	Max    int  `json:"max"`
	HDir   int  `json:"hdir"`
	Length int  `json:"length"`
	Root   bool `json:"root,omitempty"`

	Strata    int `json:"strata"`
	OffsetMin int `json:"offset_min"`
	OffsetMax int `json:"offset_max"`
}

// DanglingEdge names an edge excluded from the layout.
type DanglingEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// =============================================================================
// Sentence ↔ depgraph Conversion
// =============================================================================

// ToDepGraph builds the internal graph for a sentence. Missing token and
// edge IDs are filled in by index. Duplicate IDs are reported with
// [errors.ErrCodeDuplicateID].
func ToDepGraph(s Sentence) (*depgraph.Graph, error) {
	g := depgraph.New(s.ID)
	for i, t := range s.Tokens {
		id := t.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		if err := errors.ValidateID("token", id); err != nil {
			return nil, err
		}
		if err := g.AddNode(depgraph.Node{ID: id, Form: t.Form, Meta: cloneMeta(t.Meta)}); err != nil {
			return nil, conversionError(err, "token %s", id)
		}
	}
	for i, e := range s.Edges {
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("e%d", i+1)
		}
		err := g.AddEdge(depgraph.Edge{
			ID:          id,
			Source:      e.Source,
			Target:      e.Target,
			Label:       e.Label,
			Alternative: e.Alternative,
		})
		if err != nil {
			return nil, conversionError(err, "edge %s", id)
		}
	}
	return g, nil
}

// FromDepGraph converts a graph back to its serialization format. Hidden
// alternative edges are included with their flag set.
func FromDepGraph(g *depgraph.Graph) Sentence {
	s := Sentence{ID: g.ID()}
	for _, n := range g.OrderedNodes() {
		s.Tokens = append(s.Tokens, Token{ID: n.ID, Form: n.Form, Meta: cloneMeta(n.Meta)})
	}
	for _, e := range g.AllEdges() {
		s.Edges = append(s.Edges, Edge{
			ID:          e.ID,
			Source:      e.Source,
			Target:      e.Target,
			Label:       e.Label,
			Alternative: e.Alternative,
		})
	}
	return s
}

// NewLayout combines a graph and a layout result into the serialization
// format. Edges appear in the graph's visible edge order.
func NewLayout(g *depgraph.Graph, res *arc.Result) Layout {
	l := Layout{
		SentenceID:   g.ID(),
		MaxStrata:    res.MaxStrata,
		Alternatives: g.AlternativesShown(),
		Tokens:       make([]LayoutToken, 0, g.NodeCount()),
		Edges:        make([]EdgeLayout, 0, len(res.Layouts)),
	}
	for _, n := range g.OrderedNodes() {
		l.Tokens = append(l.Tokens, LayoutToken{ID: n.ID, Form: n.Form, Position: n.Position})
	}
	for _, e := range g.Edges() {
		el, ok := res.Layouts[e.ID]
		if !ok {
			continue
		}
		geom := res.Geometries[e.ID]
		l.Edges = append(l.Edges, EdgeLayout{
			ID:          e.ID,
			Source:      e.Source,
			Target:      e.Target,
			Label:       e.Label,
			Alternative: e.Alternative,
			Min:         geom.Min,
			Max:         geom.Max,
			HDir:        geom.HDir,
			Length:      geom.Length,
			Root:        geom.Root,
			Strata:      el.Strata,
			OffsetMin:   el.OffsetMin,
			OffsetMax:   el.OffsetMax,
		})
	}
	for _, d := range res.Dangling {
		l.Dangling = append(l.Dangling, DanglingEdge{ID: d.EdgeID, Source: d.Source, Target: d.Target})
	}
	return l
}

func conversionError(err error, format string, args ...any) error {
	code := errors.ErrCodeInvalidInput
	if stderrors.Is(err, depgraph.ErrDuplicateNodeID) || stderrors.Is(err, depgraph.ErrDuplicateEdgeID) {
		code = errors.ErrCodeDuplicateID
	}
	return errors.Wrap(code, err, format, args...)
}

func cloneMeta(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
