package graph

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/arcstrata/pkg/depgraph"
	"github.com/matzehuels/arcstrata/pkg/errors"
)

const conlluColumns = 10

// CoNLL-U column indexes.
const (
	colID = iota
	colForm
	colLemma
	colUPOS
	colXPOS
	colFeats
	colHead
	colDeprel
	colDeps
	colMisc
)

// ReadCoNLLU parses a CoNLL-U treebank. Sentences are separated by blank
// lines. Sentences without a sent_id comment are numbered from 1.
func ReadCoNLLU(r io.Reader) (*Document, error) {
	doc := &Document{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var cur *Sentence
	flush := func() {
		if cur == nil {
			return
		}
		if len(cur.Tokens) > 0 {
			if cur.ID == "" {
				cur.ID = fmt.Sprintf("%d", len(doc.Sentences)+1)
			}
			doc.Sentences = append(doc.Sentences, *cur)
		}
		cur = nil
	}

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			flush()
			continue
		}
		if cur == nil {
			cur = &Sentence{}
		}
		if strings.HasPrefix(text, "#") {
			parseComment(cur, text)
			continue
		}
		if err := parseTokenLine(cur, text); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "conllu line %d", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read conllu")
	}
	flush()
	return doc, nil
}

func parseComment(s *Sentence, text string) {
	key, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(text, "#")), "=")
	if !ok {
		return
	}
	switch strings.TrimSpace(key) {
	case "sent_id":
		s.ID = strings.TrimSpace(value)
	case "text":
		s.Text = strings.TrimSpace(value)
	}
}

func parseTokenLine(s *Sentence, text string) error {
	cols := strings.Split(text, "\t")
	if len(cols) != conlluColumns {
		return fmt.Errorf("expected %d tab-separated columns, got %d", conlluColumns, len(cols))
	}
	id := cols[colID]
	// Multiword ranges (1-2) and empty nodes (3.1) carry no basic relation.
	if strings.ContainsAny(id, "-.") {
		return nil
	}

	meta := map[string]any{}
	for key, col := range map[string]int{
		MetaLemma: colLemma,
		MetaUPOS:  colUPOS,
		MetaXPOS:  colXPOS,
		MetaFeats: colFeats,
		MetaMisc:  colMisc,
	} {
		if v := cols[col]; v != "_" && v != "" {
			meta[key] = v
		}
	}
	if len(meta) == 0 {
		meta = nil
	}
	s.Tokens = append(s.Tokens, Token{ID: id, Form: cols[colForm], Meta: meta})

	head, rel := cols[colHead], cols[colDeprel]
	if head != "_" {
		s.Edges = append(s.Edges, Edge{
			ID:     "e" + id,
			Source: headID(head),
			Target: id,
			Label:  rel,
		})
	}

	deps := cols[colDeps]
	if deps == "_" || deps == "" {
		return nil
	}
	k := 0
	for _, dep := range strings.Split(deps, "|") {
		h, r, ok := strings.Cut(dep, ":")
		if !ok {
			return fmt.Errorf("malformed DEPS entry %q", dep)
		}
		// Enhanced heads on empty nodes have no token to attach to.
		if strings.Contains(h, ".") {
			continue
		}
		if h == head && r == rel {
			continue
		}
		k++
		s.Edges = append(s.Edges, Edge{
			ID:          fmt.Sprintf("e%s.%d", id, k),
			Source:      headID(h),
			Target:      id,
			Label:       r,
			Alternative: true,
		})
	}
	return nil
}

func headID(head string) string {
	if head == "0" {
		return depgraph.RootID
	}
	return head
}
