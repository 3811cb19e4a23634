// Package pipeline provides the read → layout → render pipeline for
// arcstrata.
//
// This package is shared by the CLI and the HTTP service. By centralizing
// caching, batching and logging here, every entry point lays out a
// sentence the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Read: Decode a document (JSON, YAML, TOML or CoNLL-U)
//  2. Layout: Assign strata and anchor offsets to every edge
//  3. Render: Produce JSON, a text arc diagram, DOT or SVG
//
// Each stage can be run independently.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := pipeline.ReadFile(ctx, "en_ewt-ud-dev.conllu", "")
//	result, err := runner.LayoutDocument(ctx, doc, pipeline.Options{Alternatives: true})
//	for _, l := range result.Layouts {
//	    out, _ := pipeline.Render(ctx, l, pipeline.FormatText, pipeline.RenderOptions{})
//	    fmt.Println(string(out))
//	}
//
// Layouts are cached under a hash of the sentence content and the
// options, so a cached layout is reused only for identical input.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arcstrata/pkg/cache"
	"github.com/matzehuels/arcstrata/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Service
// =============================================================================

const (
	// DefaultConcurrency is the number of sentences laid out in parallel.
	DefaultConcurrency = 4

	// MaxConcurrency caps Options.Concurrency.
	MaxConcurrency = 64

	// DefaultTTL is how long layouts stay in the cache.
	DefaultTTL = 7 * 24 * time.Hour
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures layout runs.
type Options struct {
	// Alternatives shows alternative edges before layout.
	Alternatives bool `json:"alternatives,omitempty"`
	// Refresh ignores cached layouts (fresh results are still stored).
	Refresh bool `json:"refresh,omitempty"`
	// Concurrency bounds parallel sentence layouts in LayoutDocument.
	Concurrency int `json:"concurrency,omitempty"`
	// TTL is the cache lifetime of computed layouts.
	TTL time.Duration `json:"ttl,omitempty"`

	// Logger overrides the runner's logger (not serialized).
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills zero fields with defaults.
func (o *Options) SetDefaults() {
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Concurrency > MaxConcurrency {
		o.Concurrency = MaxConcurrency
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Alternatives: o.Alternatives}
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: json, text, dot, svg)", format)
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Stats summarizes a document run.
type Stats struct {
	Sentences int
	Edges     int
	Dangling  int
	MaxStrata int
	Duration  time.Duration
}

// CacheInfo counts cache hits and misses across a document run.
type CacheInfo struct {
	Hits   int
	Misses int
}
