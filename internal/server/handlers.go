package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/arcstrata/pkg/buildinfo"
	"github.com/matzehuels/arcstrata/pkg/errors"
	"github.com/matzehuels/arcstrata/pkg/graph"
	"github.com/matzehuels/arcstrata/pkg/pipeline"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// handleLayout lays out the single sentence in the request body.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.layoutOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}

	doc, err := s.readBody(w, r, graph.FormatJSON)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(doc.Sentences) != 1 {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "expected one sentence, got %d", len(doc.Sentences)))
		return
	}

	l, hit, err := s.runner.LayoutSentence(r.Context(), doc.Sentences[0], opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := pipeline.Render(r.Context(), l, format, pipeline.RenderOptions{Labels: true})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleDocument lays out every sentence of a document.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	opts, err := s.layoutOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := s.readBody(w, r, r.URL.Query().Get("input"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.runner.LayoutDocument(r.Context(), doc, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	w.Header().Set("X-Cache-Hits", strconv.Itoa(res.CacheInfo.Hits))
	w.WriteHeader(http.StatusOK)
	_ = graph.WriteLayouts(w, res.Layouts)
}

// handleCheck reports crossings and dangling edges for every sentence.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	opts, err := s.layoutOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := s.readBody(w, r, r.URL.Query().Get("input"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	reports := make([]pipeline.Report, len(doc.Sentences))
	for i, sent := range doc.Sentences {
		reports[i] = pipeline.Check(sent, opts.Alternatives)
	}
	if v := r.URL.Query().Get("strict"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "strict: %q is not a boolean", v))
			return
		}
		if err := pipeline.StrictError(reports); strict && err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (s *Server) layoutOptions(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{
		Alternatives: s.opts.Alternatives,
		Concurrency:  s.opts.Concurrency,
	}
	if v := r.URL.Query().Get("alternatives"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "alternatives: %q is not a boolean", v)
		}
		opts.Alternatives = b
	}
	if v := r.URL.Query().Get("refresh"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "refresh: %q is not a boolean", v)
		}
		opts.Refresh = b
	}
	return opts, nil
}

// readBody decodes the request body as a document. An empty format means
// JSON.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request, format string) (*graph.Document, error) {
	if format == "" {
		format = graph.FormatJSON
	}
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	defer body.Close()
	return pipeline.Read(r.Context(), body, format)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
