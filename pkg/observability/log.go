package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// [PipelineHooks], [CacheHooks] and [ServerHooks].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger with an "event" prefix.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("event")}
}

func (h *LogHooks) OnReadStart(_ context.Context, format string) {
	h.logger.Debug("read start", "format", format)
}

func (h *LogHooks) OnReadComplete(_ context.Context, format string, sentences int, d time.Duration, err error) {
	h.logger.Debug("read done", "format", format, "sentences", sentences, "duration", d, "err", err)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, sentenceID string, edgeCount int) {
	h.logger.Debug("layout start", "sentence", sentenceID, "edges", edgeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, sentenceID string, maxStrata int, d time.Duration, err error) {
	h.logger.Debug("layout done", "sentence", sentenceID, "max_strata", maxStrata, "duration", d, "err", err)
}

func (h *LogHooks) OnDanglingEdge(_ context.Context, sentenceID, edgeID string) {
	h.logger.Debug("dangling edge", "sentence", sentenceID, "edge", edgeID)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render start", "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	h.logger.Debug("render done", "format", format, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, requestID, method, path string) {
	h.logger.Debug("request", "id", requestID, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, requestID, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "id", requestID, "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
