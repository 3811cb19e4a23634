// Package observability lets callers watch arcstrata at work without tying
// the library to a metrics or tracing backend.
//
// Three hook sets exist: [PipelineHooks] for reading, layout and rendering,
// [CacheHooks] for layout cache traffic and [ServerHooks] for HTTP requests.
// Each defaults to a no-op. A program installs its own implementations once
// at startup; [LogHooks] writes every event to a charmbracelet logger:
//
//	h := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(h)
//	observability.SetCacheHooks(h)
//
// Library code fetches the current set at the call site:
//
//	observability.Pipeline().OnLayoutStart(ctx, sentenceID, len(edges))
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the layout pipeline.
type PipelineHooks interface {
	// Read events
	OnReadStart(ctx context.Context, format string)
	OnReadComplete(ctx context.Context, format string, sentences int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, sentenceID string, edgeCount int)
	OnLayoutComplete(ctx context.Context, sentenceID string, maxStrata int, duration time.Duration, err error)

	// OnDanglingEdge records an edge excluded from a layout.
	OnDanglingEdge(ctx context.Context, sentenceID, edgeID string)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the layout HTTP service.
type ServerHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, requestID, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, requestID, method, path string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnReadStart(context.Context, string)                                 {}
func (NoopPipelineHooks) OnReadComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnDanglingEdge(context.Context, string, string)                      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, time.Duration, error)      {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks ignores every server event.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// hookSet is replaced as a whole on every change, so readers never take a
// lock and always see a consistent set.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	server   ServerHooks
}

var (
	current atomic.Pointer[hookSet]
	writeMu sync.Mutex
)

func init() { Reset() }

// update applies fn to a copy of the current set and publishes it.
func update(fn func(*hookSet)) {
	writeMu.Lock()
	defer writeMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetPipelineHooks installs h for all later pipeline events. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(s *hookSet) { s.pipeline = h })
	}
}

// SetCacheHooks installs h for all later cache events. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetServerHooks installs h for all later server events. nil is ignored.
func SetServerHooks(h ServerHooks) {
	if h != nil {
		update(func(s *hookSet) { s.server = h })
	}
}

func Pipeline() PipelineHooks { return current.Load().pipeline }
func Cache() CacheHooks       { return current.Load().cache }
func Server() ServerHooks     { return current.Load().server }

// Reset puts the no-op hooks back. Tests call it in cleanup.
func Reset() {
	writeMu.Lock()
	defer writeMu.Unlock()
	current.Store(&hookSet{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		server:   NoopServerHooks{},
	})
}
