package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"barcode_lookup/internal/metrics"
)

// StaleReporter counts cache rows past the staleness threshold. It never
// refreshes them; stale rows are only re-fetched on demand.
type StaleReporter struct {
	cache      ExternalCacheStore
	metrics    *metrics.Metrics
	logger     *slog.Logger
	staleAfter time.Duration

	now func() time.Time
}

func NewStaleReporter(cache ExternalCacheStore, m *metrics.Metrics, logger *slog.Logger, staleAfter time.Duration) *StaleReporter {
	return &StaleReporter{
		cache:      cache,
		metrics:    m,
		logger:     logger.With("component", "stale_report"),
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

func (r *StaleReporter) Name() string {
	return "stale_cache_report"
}

func (r *StaleReporter) Run(ctx context.Context) error {
	cutoff := r.now().Add(-r.staleAfter)

	count, err := r.cache.CountStale(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("count stale rows: %w", err)
	}

	r.metrics.StaleCacheRows.Set(float64(count))
	r.logger.Info("stale cache rows", "count", count, "cutoff", cutoff)

	return nil
}
