// Package cache stores computed arc layouts between runs.
//
// A [Cache] is a byte-oriented key/value store with optional expiry. Three
// backends are provided:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (layout service)
//   - [NullCache]: stores nothing (--no-cache, tests)
//
// Keys are produced by a [Keyer] from a hash of the sentence content and
// the options that affect the layout, so a cached entry is only ever
// reused for an identical input.
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(sentenceJSON), cache.LayoutKeyOpts{Alternatives: true})
package cache

import (
	"context"
	"time"
)

// AlgorithmVersion identifies the current layout algorithm. It is part of
// every layout key so entries written by an older algorithm are never read.
const AlgorithmVersion = "strata/v1"

// Cache is a key/value store for serialized layouts.
type Cache interface {
	// Get returns the value for key. A miss is reported as hit == false
	// with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts holds the options that change a layout's outcome.
type LayoutKeyOpts struct {
	Alternatives bool   `json:"alternatives"`
	Algorithm    string `json:"algorithm"`
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(sentenceHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form "layout:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey hashes the sentence hash together with opts. An empty
// Algorithm defaults to [AlgorithmVersion].
func (DefaultKeyer) LayoutKey(sentenceHash string, opts LayoutKeyOpts) string {
	if opts.Algorithm == "" {
		opts.Algorithm = AlgorithmVersion
	}
	return kindKey("layout", sentenceHash, opts)
}
