package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"barcode_lookup/internal/config"
	"barcode_lookup/internal/domain"
	"barcode_lookup/internal/metrics"
)

const (
	stageCanonical = "canonical"
	stageCache     = "cache"
)

// LookupService resolves scanned barcodes against the canonical store, the
// external cache and finally the external provider, in that order.
type LookupService struct {
	foods     CanonicalFoodStore
	cache     ExternalCacheStore
	source    ProductSource
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	config    config.LookupConfig

	flight singleflight.Group
	now    func() time.Time
}

// externalResult is shared by callers joined on one external fetch.
type externalResult struct {
	product *domain.ExternalProduct
	row     *domain.CacheRow
	reason  string
}

func NewLookupService(
	foods CanonicalFoodStore,
	cache ExternalCacheStore,
	source ProductSource,
	publisher Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg config.LookupConfig,
) *LookupService {
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = domain.DefaultStaleAfter
	}
	return &LookupService{
		foods:     foods,
		cache:     cache,
		source:    source,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With("component", "lookup", "source", source.Name()),
		config:    cfg,
		now:       time.Now,
	}
}

// HandleScannedBarcode runs one lookup pass for a raw code. Every anticipated
// failure is expressed in the outcome kind; nothing is returned as an error.
func (s *LookupService) HandleScannedBarcode(ctx context.Context, raw string) *domain.LookupOutcome {
	outcome := s.lookup(ctx, raw)
	outcome.RawCode = raw

	s.metrics.LookupOutcomes.WithLabelValues(string(outcome.Kind)).Inc()
	s.logger.Debug("lookup finished",
		"raw_code", raw,
		"barcode", outcome.Barcode,
		"outcome", outcome.Kind,
		"stale", outcome.IsStale,
	)

	return outcome
}

func (s *LookupService) lookup(ctx context.Context, raw string) *domain.LookupOutcome {
	barcode, err := domain.NormalizeBarcode(raw)
	if err != nil {
		reason := err.Error()
		var invalid *domain.InvalidBarcodeError
		if errors.As(err, &invalid) {
			reason = invalid.Reason
		}
		return &domain.LookupOutcome{Kind: domain.OutcomeInvalidBarcode, Reason: reason}
	}

	if food := s.probeCanonical(ctx, barcode); food != nil {
		return &domain.LookupOutcome{
			Kind:    domain.OutcomeFoundCanonical,
			Barcode: barcode,
			Food:    food,
		}
	}

	if row := s.probeCache(ctx, barcode); row != nil {
		s.recordScan(ctx, row)
		return &domain.LookupOutcome{
			Kind:     domain.OutcomeFoundCache,
			Barcode:  barcode,
			CacheRow: row,
			IsStale:  domain.IsStale(row.LastFetchedAt, s.now(), s.config.StaleAfter),
		}
	}

	result := s.fetchExternal(ctx, barcode)
	if result.product == nil {
		return &domain.LookupOutcome{
			Kind:    domain.OutcomeNotFound,
			Barcode: barcode,
			Reason:  result.reason,
		}
	}

	return &domain.LookupOutcome{
		Kind:     domain.OutcomeFoundExternal,
		Barcode:  barcode,
		Product:  result.product,
		CacheRow: result.row,
	}
}

func (s *LookupService) probeCanonical(ctx context.Context, barcode domain.Barcode) *domain.CanonicalFood {
	food, err := s.foods.LookupByBarcode(ctx, barcode)
	if err != nil {
		s.failOpen(stageCanonical, barcode, err)
		return nil
	}
	if food == nil {
		return nil
	}
	if !food.MatchesBarcode(barcode) {
		s.logger.Warn("canonical record rejected",
			"barcode", barcode,
			"food_id", food.ID,
			"is_custom", food.IsCustom,
		)
		return nil
	}
	return food
}

func (s *LookupService) probeCache(ctx context.Context, barcode domain.Barcode) *domain.CacheRow {
	row, err := s.cache.Lookup(ctx, barcode, s.source.Name())
	if err != nil {
		s.failOpen(stageCache, barcode, err)
		return nil
	}
	return row
}

// failOpen records a store error that is treated as a miss.
func (s *LookupService) failOpen(stage string, barcode domain.Barcode, err error) {
	s.metrics.StoreFailOpen.WithLabelValues(stage).Inc()
	s.logger.Warn("store lookup failed, treating as miss",
		"stage", stage,
		"barcode", barcode,
		"error", err,
	)
}

// recordScan bumps the popularity counter. Failure never affects the lookup.
func (s *LookupService) recordScan(ctx context.Context, row *domain.CacheRow) {
	count, err := s.cache.IncrementScanCount(ctx, row.ID)
	if err != nil {
		s.metrics.ScanCountFailures.Inc()
		s.logger.Warn("failed to increment scan count",
			"cache_id", row.ID,
			"error", err,
		)
		return
	}
	row.TimesScanned = count
}

// fetchExternal runs the provider fetch. With single-flight enabled the shared
// fetch is detached from any one caller's cancellation and bounded by the
// client timeout; each caller stops waiting when its own context ends.
func (s *LookupService) fetchExternal(ctx context.Context, barcode domain.Barcode) *externalResult {
	if !s.config.SingleFlightEnabled() {
		return s.fetchAndCache(ctx, barcode)
	}

	shared := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(barcode.String(), func() (any, error) {
		return s.fetchAndCache(shared, barcode), nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			s.logger.Debug("joined in-flight fetch", "barcode", barcode)
		}
		return res.Val.(*externalResult)
	case <-ctx.Done():
		return &externalResult{reason: ctx.Err().Error()}
	}
}

func (s *LookupService) fetchAndCache(ctx context.Context, barcode domain.Barcode) *externalResult {
	start := time.Now()
	result, err := s.source.FetchByBarcode(ctx, barcode)
	elapsed := time.Since(start).Seconds()

	switch {
	case err != nil:
		s.metrics.ExternalFetchSeconds.WithLabelValues(s.source.Name(), "error").Observe(elapsed)
		s.logger.Warn("external fetch failed", "barcode", barcode, "error", err)
		return &externalResult{reason: err.Error()}
	case !result.Found():
		s.metrics.ExternalFetchSeconds.WithLabelValues(s.source.Name(), "not_found").Observe(elapsed)
		reason := "product not found"
		if result != nil && result.Reason != "" {
			reason = result.Reason
		}
		return &externalResult{reason: reason}
	}

	s.metrics.ExternalFetchSeconds.WithLabelValues(s.source.Name(), "found").Observe(elapsed)

	return &externalResult{
		product: result.Product,
		row:     s.writeThrough(ctx, result.Product),
	}
}

// writeThrough stores a fetched product. When the write fails the row that
// would have been written is returned unpersisted so the caller still gets a
// usable result.
func (s *LookupService) writeThrough(ctx context.Context, product *domain.ExternalProduct) *domain.CacheRow {
	candidate := domain.NewCacheRow(s.source.Name(), product, 1, s.now())

	saved, err := s.cache.Upsert(ctx, candidate)
	if err != nil {
		s.metrics.CacheWriteFailures.Inc()
		s.logger.Error("cache write failed, returning unpersisted row",
			"barcode", product.Barcode,
			"error", err,
		)
		return candidate
	}

	s.publish(ctx, &domain.Event{
		Type:       domain.EventProductCached,
		Barcode:    saved.Barcode,
		Source:     saved.Source,
		CacheRowID: saved.ID,
		Timestamp:  s.now().UTC(),
	})

	return saved
}

func (s *LookupService) publish(ctx context.Context, event *domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "type", event.Type, "error", err)
	}
}
