package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"newswire/internal/domain/entity"
	"newswire/internal/observability/metrics"
	"newswire/internal/repository"
)

// DefaultContentParallelism bounds concurrent content fetches per source.
const DefaultContentParallelism = 4

// Dispatcher receives the per-cycle batch of freshly inserted articles.
type Dispatcher interface {
	Dispatch(ctx context.Context, fresh []*entity.Article)
}

// Service runs ingestion cycles: list each source, fetch content, funnel
// everything through the dedupe gate and hand the fresh batch to the
// dispatcher once per cycle. Cycles are single-flight: the service
// refuses to start a cycle while another is running, regardless of the
// caller's scheduling.
type Service struct {
	adapters           []SourceAdapter
	articles           repository.ArticleRepository
	dispatcher         Dispatcher
	contentParallelism int
	logger             *slog.Logger

	// cycleMu serializes cycles. Scheduled runs already go through
	// cron's SkipIfStillRunning chain; this also covers out-of-band
	// runs such as the startup cycle.
	cycleMu sync.Mutex
}

// NewService creates an ingestion Service. Adapters are processed in the
// given order on every cycle.
func NewService(
	adapters []SourceAdapter,
	articles repository.ArticleRepository,
	dispatcher Dispatcher,
	contentParallelism int,
	logger *slog.Logger,
) *Service {
	if contentParallelism < 1 {
		contentParallelism = DefaultContentParallelism
	}
	return &Service{
		adapters:           adapters,
		articles:           articles,
		dispatcher:         dispatcher,
		contentParallelism: contentParallelism,
		logger:             logger,
	}
}

// CycleStats summarizes one ingestion cycle.
type CycleStats struct {
	Listed        int
	Inserted      int
	Duplicated    int
	FailedSources int

	// Skipped is set when the cycle did not run because another one
	// was still in progress. All other fields are zero.
	Skipped bool
}

// RunCycle executes one full ingestion cycle over all adapters. A call
// arriving while another cycle is still running returns immediately
// with Skipped set instead of overlapping it.
//
// Failure policy per source: a listing failure skips the source for this
// cycle; a content-fetch failure stores the article with empty content
// rather than dropping it (losing a summary is recoverable, losing the
// dedupe record would re-notify next cycle); a store failure abandons
// the rest of that source's listing. No failure crosses source
// boundaries, and none is retried within the cycle.
func (s *Service) RunCycle(ctx context.Context) CycleStats {
	if !s.cycleMu.TryLock() {
		s.logger.Warn("ingestion cycle already running, skipping")
		return CycleStats{Skipped: true}
	}
	defer s.cycleMu.Unlock()

	started := time.Now()
	var stats CycleStats
	var fresh []*entity.Article

	for _, adapter := range s.adapters {
		source := adapter.Source()
		log := s.logger.With(slog.String("source", source.String()))

		raws, err := adapter.ListRecent(ctx)
		if err != nil {
			log.Error("listing fetch failed, skipping source this cycle",
				slog.String("error", err.Error()))
			metrics.RecordFetchError(source.String(), "listing")
			stats.FailedSources++
			continue
		}
		stats.Listed += len(raws)

		contents := s.fetchContents(ctx, adapter, raws)

		inserted, duplicated, batch, err := s.storeListing(ctx, source, raws, contents)
		stats.Inserted += inserted
		stats.Duplicated += duplicated
		fresh = append(fresh, batch...)
		metrics.RecordIngested(source.String(), inserted, duplicated)
		if err != nil {
			log.Error("store failed, abandoning rest of listing",
				slog.String("error", err.Error()))
			metrics.RecordFetchError(source.String(), "store")
			stats.FailedSources++
			continue
		}

		log.Info("source ingested",
			slog.Int("listed", len(raws)),
			slog.Int("inserted", inserted),
			slog.Int("duplicated", duplicated))
	}

	if len(fresh) > 0 && s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, fresh)
	}

	metrics.RecordCycle(stats.FailedSources, time.Since(started))
	s.logger.Info("ingestion cycle finished",
		slog.Int("listed", stats.Listed),
		slog.Int("inserted", stats.Inserted),
		slog.Int("duplicated", stats.Duplicated),
		slog.Int("failed_sources", stats.FailedSources),
		slog.Duration("took", time.Since(started)))

	return stats
}

// fetchContents fetches article bodies with bounded parallelism, keeping
// results aligned with the listing order. A failed fetch yields the
// empty placeholder, never an error.
func (s *Service) fetchContents(ctx context.Context, adapter SourceAdapter, raws []RawArticle) []string {
	contents := make([]string, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.contentParallelism)
	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			started := time.Now()
			content, err := adapter.FetchContent(gctx, raw.Link)
			metrics.RecordContentFetch(time.Since(started))
			if err != nil {
				s.logger.Warn("content fetch failed, storing placeholder",
					slog.String("source", adapter.Source().String()),
					slog.String("link", raw.Link),
					slog.String("error", err.Error()))
				metrics.RecordFetchError(adapter.Source().String(), "content")
				return nil
			}
			contents[i] = content
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = g.Wait()

	return contents
}

// storeListing funnels one source's listing through the dedupe gate in
// listing order, collecting the articles inserted this cycle.
func (s *Service) storeListing(
	ctx context.Context,
	source entity.Source,
	raws []RawArticle,
	contents []string,
) (inserted, duplicated int, fresh []*entity.Article, err error) {
	for i, raw := range raws {
		fields := repository.ArticleFields{
			Title:          raw.Title,
			PhotoURL:       raw.PhotoURL,
			Link:           raw.Link,
			Tag:            raw.Tag,
			PublishedAtRaw: raw.PublishedAtRaw,
			Content:        contents[i],
		}

		art, isNew, insertErr := s.articles.TryInsert(ctx, source, fields)
		if insertErr != nil {
			return inserted, duplicated, fresh, fmt.Errorf("%w: %v", ErrStore, insertErr)
		}
		if isNew {
			inserted++
			fresh = append(fresh, art)
		} else {
			duplicated++
		}
	}
	return inserted, duplicated, fresh, nil
}
