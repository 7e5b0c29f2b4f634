
// Package pipeline orchestrates a refresh cycle: per-source cache-or-
// scrape with stale fallback, unit normalization and the final priority
// merge.
package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"minirates/internal/cache"
	"minirates/internal/catalog"
	"minirates/internal/scrape"
)

// maxConcurrentSources bounds how many source fetches run at once.
const maxConcurrentSources = 4

// Scraper produces one source's categorized catalog. It never fails; a
// broken source yields an empty timestamped catalog.
type Scraper interface {
	Name() string
	ScrapeAll(ctx context.Context) catalog.Catalog
}

// History records merged catalogs for sparkline consumers. Optional.
type History interface {
	Record(ctx context.Context, m catalog.Merged) error
}

// Source pairs a configuration with its scraper. Slice order is merge
// priority, highest first.
type Source struct {
	Config  scrape.SourceConfig
	Scraper Scraper
}

// Service is the catalog fetch entrypoint. It owns no cross-call state
// beyond the on-disk caches, so every call is independently resumable
// from whatever is on disk.
type Service struct {
	sources []Source
	store   *cache.Store
	canon   catalog.Unit
	history History
	log     *logrus.Logger

	group singleflight.Group
}

func New(sources []Source, store *cache.Store, canon catalog.Unit, history History, log *logrus.Logger) *Service {
	return &Service{
		sources: sources,
		store:   store,
		canon:   canon,
		history: history,
		log:     log,
	}
}

// GetCatalog returns the unified catalog for the current refresh cycle.
// force bypasses every per-source TTL check and re-scrapes all enabled
// sources. It never fails: with every source down and no caches the
// result is an empty catalog with a synthesized current timestamp.
//
// Concurrent callers are coalesced into a single refresh so two cycles
// never touch the same cache file at once.
func (s *Service) GetCatalog(ctx context.Context, force bool) catalog.Merged {
	key := "refresh"
	if force {
		key = "refresh-force"
	}
	v, _, _ := s.group.Do(key, func() (any, error) {
		return s.refresh(ctx, force), nil
	})
	return v.(catalog.Merged)
}

func (s *Service) refresh(ctx context.Context, force bool) catalog.Merged {
	results := make([]catalog.SourceResult, len(s.sources))

	// Sources are independent: each owns its cache file, so they can
	// fetch in parallel. The merge below is the only sync point.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSources)
	for i, src := range s.sources {
		g.Go(func() error {
			results[i] = catalog.SourceResult{
				Source:  src.Config.Name,
				Catalog: s.fetchOne(gctx, src, force),
			}
			return nil
		})
	}
	_ = g.Wait()

	merged := catalog.Merge(results)
	s.log.Infof("refresh done: %d items merged", merged.Len())

	if s.history != nil && !merged.IsEmpty() {
		if err := s.history.Record(ctx, merged); err != nil {
			s.log.Warnf("history: %v", err)
		}
	}
	return merged
}

// fetchOne resolves one source's catalog, normalized to the canonical
// unit: fresh cache, else scrape-and-save, else stale cache, else empty.
func (s *Service) fetchOne(ctx context.Context, src Source, force bool) catalog.Catalog {
	cfg := src.Config

	if !force {
		if c, ok := s.store.Load(cfg.CacheFile, cfg.TTL); ok {
			s.log.Debugf("%s: cache hit", cfg.Name)
			return catalog.Normalize(c, cfg.NativeUnit, s.canon)
		}
	}

	fresh := src.Scraper.ScrapeAll(ctx)
	if !fresh.IsEmpty() {
		s.store.Save(cfg.CacheFile, fresh)
		return catalog.Normalize(fresh, cfg.NativeUnit, s.canon)
	}

	if c, ok := s.store.LoadStale(cfg.CacheFile); ok {
		s.log.Warnf("%s: scrape empty, serving stale cache", cfg.Name)
		return catalog.Normalize(c, cfg.NativeUnit, s.canon)
	}

	s.log.Warnf("%s: scrape empty and no cache available", cfg.Name)
	return fresh
}
