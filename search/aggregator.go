package search

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Mentallyspammed1/neonsearch/driver"
)

// ErrNoActiveSources is returned when every requested source is unknown
// or disabled. The one caller-visible failure the engine produces.
var ErrNoActiveSources = errors.New("no active video sources available")

// Aggregator fans a query out to every active source concurrently,
// waits for all of them, merges, shuffles, paginates and caches the
// result.
type Aggregator struct {
	registry *driver.Registry
	fetcher  *Fetcher
	cache    *Cache
	logger   *zap.Logger

	// rng interleaves sources in the merged list; injected so tests can
	// seed it. Guarded because rand.Rand is not safe for concurrent use.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewAggregator wires the engine together. A nil rng gets a
// time-seeded one.
func NewAggregator(registry *driver.Registry, fetcher *Fetcher, cache *Cache, rng *rand.Rand, logger *zap.Logger) *Aggregator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Aggregator{
		registry: registry,
		fetcher:  fetcher,
		cache:    cache,
		rng:      rng,
		logger:   logger,
	}
}

// Search runs one aggregated query. The requested source set (or every
// registered source for the "all" sentinel) is intersected with the
// enabled flags; an empty intersection fails with ErrNoActiveSources.
// All active pipelines run concurrently and the response is assembled
// only after every one of them has finished.
func (a *Aggregator) Search(ctx context.Context, req Request) (*Response, error) {
	req.normalize()

	requested := a.expandSources(req.Sources)
	if cached, ok := a.cache.Get(req.Query, requested, req.Page); ok {
		a.logger.Info("cache hit", zap.String("query", req.Query))
		return cached, nil
	}

	active := a.activeSources(requested)
	if len(active) == 0 {
		return nil, ErrNoActiveSources
	}

	// Fan-out: one task per active source. Pipelines never fail, so the
	// group exists purely as the join barrier.
	perSource := make([][]driver.Video, len(active))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range active {
		d, ok := a.registry.Get(id)
		if !ok {
			continue
		}
		g.Go(func() error {
			perSource[i] = a.fetcher.SearchSource(gctx, d, req.Type, req.Query, req.Page, req.Limit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var combined []driver.Video
	for _, records := range perSource {
		combined = append(combined, records...)
	}

	// Shuffle interleaves sources evenly; this is a fairness policy,
	// not a relevance ranking.
	a.rngMu.Lock()
	a.rng.Shuffle(len(combined), func(i, j int) {
		combined[i], combined[j] = combined[j], combined[i]
	})
	a.rngMu.Unlock()

	start := (req.Page - 1) * req.Limit
	end := start + req.Limit
	if start > len(combined) {
		start = len(combined)
	}
	if end > len(combined) {
		end = len(combined)
	}

	resp := &Response{
		Results:         slices.Clone(combined[start:end]),
		Total:           len(combined),
		Page:            req.Page,
		SourcesSearched: active,
	}
	if resp.Results == nil {
		resp.Results = []driver.Video{}
	}

	a.cache.Set(req.Query, requested, req.Page, resp)

	a.logger.Info("search completed",
		zap.String("query", req.Query),
		zap.Int("sources", len(active)),
		zap.Int("total", resp.Total),
		zap.Int("returned", len(resp.Results)))
	return resp, nil
}

// expandSources resolves the "all" sentinel (or an empty set) to every
// registered source id.
func (a *Aggregator) expandSources(requested []string) []string {
	if len(requested) == 0 || slices.Contains(requested, SourceAll) {
		return a.registry.IDs()
	}
	return requested
}

// activeSources filters the requested set down to known, enabled ones.
func (a *Aggregator) activeSources(requested []string) []string {
	var active []string
	for _, id := range requested {
		if a.registry.Enabled(id) {
			active = append(active, id)
		}
	}
	return active
}
