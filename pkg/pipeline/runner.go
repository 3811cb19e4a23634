package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/arcstrata/pkg/cache"
	"github.com/matzehuels/arcstrata/pkg/errors"
	"github.com/matzehuels/arcstrata/pkg/graph"
	"github.com/matzehuels/arcstrata/pkg/observability"
)

const keyTypeLayout = "layout"

// Runner encapsulates pipeline execution with caching.
// Both CLI and service use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// DocumentResult holds the layouts of a document in input order.
type DocumentResult struct {
	Layouts   []graph.Layout
	Stats     Stats
	CacheInfo CacheInfo
}

// LayoutSentence lays out one sentence, consulting the cache first unless
// opts.Refresh is set. It reports whether the layout came from the cache.
func (r *Runner) LayoutSentence(ctx context.Context, s graph.Sentence, opts Options) (graph.Layout, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	hooks := observability.Cache()

	hash, err := cache.HashValue(s)
	if err != nil {
		return graph.Layout{}, false, errors.Wrap(errors.ErrCodeInternal, err, "hash sentence %s", s.ID)
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "sentence", s.ID, "err", err)
		}
		if err == nil && hit {
			if l, err := graph.UnmarshalLayout(data); err == nil {
				hooks.OnCacheHit(ctx, keyTypeLayout)
				return l, true, nil
			}
		}
		hooks.OnCacheMiss(ctx, keyTypeLayout)
	}

	l, err := ComputeLayout(ctx, s, opts.Alternatives)
	if err != nil {
		return graph.Layout{}, false, err
	}
	for _, d := range l.Dangling {
		opts.Logger.Warn("dangling edge excluded from layout",
			"sentence", s.ID, "edge", d.ID, "source", d.Source, "target", d.Target)
	}

	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "sentence", s.ID, "err", err)
		} else {
			hooks.OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}
	return l, false, nil
}

// LayoutDocument lays out every sentence of doc with at most
// opts.Concurrency sentences in flight. Layouts are returned in input
// order. The first failing sentence cancels the rest.
func (r *Runner) LayoutDocument(ctx context.Context, doc *graph.Document, opts Options) (*DocumentResult, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	start := time.Now()

	layouts := make([]graph.Layout, len(doc.Sentences))
	hits := make([]bool, len(doc.Sentences))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, s := range doc.Sentences {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			l, hit, err := r.LayoutSentence(gctx, s, opts)
			if err != nil {
				code := errors.GetCode(err)
				if code == "" {
					code = errors.ErrCodeInternal
				}
				return errors.Wrap(code, err, "sentence %d (%s)", i+1, s.ID)
			}
			layouts[i], hits[i] = l, hit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &DocumentResult{Layouts: layouts}
	for i, l := range layouts {
		res.Stats.Edges += len(l.Edges)
		res.Stats.Dangling += len(l.Dangling)
		res.Stats.MaxStrata = max(res.Stats.MaxStrata, l.MaxStrata)
		if hits[i] {
			res.CacheInfo.Hits++
		} else {
			res.CacheInfo.Misses++
		}
	}
	res.Stats.Sentences = len(layouts)
	res.Stats.Duration = time.Since(start)

	opts.Logger.Info("laid out document",
		"sentences", res.Stats.Sentences,
		"edges", res.Stats.Edges,
		"max_strata", res.Stats.MaxStrata,
		"cached", res.CacheInfo.Hits,
		"duration", res.Stats.Duration)
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
