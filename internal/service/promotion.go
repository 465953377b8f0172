package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"barcode_lookup/internal/config"
	"barcode_lookup/internal/domain"
	"barcode_lookup/internal/metrics"
)

const (
	promotionCreated  = "created"
	promotionReused   = "reused"
	promotionRejected = "rejected"
	promotionFailed   = "failed"
)

// PromotionService turns cache rows into user-owned canonical foods.
type PromotionService struct {
	foods     CanonicalFoodStore
	cache     ExternalCacheStore
	txManager TransactionManager
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	config    config.PromotionConfig

	now func() time.Time
}

func NewPromotionService(
	foods CanonicalFoodStore,
	cache ExternalCacheStore,
	txManager TransactionManager,
	publisher Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg config.PromotionConfig,
) *PromotionService {
	return &PromotionService{
		foods:     foods,
		cache:     cache,
		txManager: txManager,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With("component", "promotion"),
		config:    cfg,
		now:       time.Now,
	}
}

// Promote creates a custom canonical food owned by userID from row and links
// the row to it. All failures are returned as *domain.PromotionError.
func (s *PromotionService) Promote(
	ctx context.Context,
	row *domain.CacheRow,
	userID uuid.UUID,
	overrides *domain.PromotionOverrides,
) (uuid.UUID, error) {
	if err := s.checkPrerequisites(row, userID); err != nil {
		s.metrics.Promotions.WithLabelValues(promotionRejected).Inc()
		return uuid.Nil, err
	}

	if s.config.ReuseExisting && row.PromotedFoodMasterID.Valid {
		s.metrics.Promotions.WithLabelValues(promotionReused).Inc()
		s.logger.Info("cache row already promoted",
			"cache_id", row.ID,
			"food_id", row.PromotedFoodMasterID.UUID,
		)
		return row.PromotedFoodMasterID.UUID, nil
	}

	food, err := domain.NewPromotedFood(row, userID, overrides, s.now().UTC())
	if err != nil {
		s.metrics.Promotions.WithLabelValues(promotionRejected).Inc()
		return uuid.Nil, err
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.foods.Insert(txCtx, food); err != nil {
			return fmt.Errorf("insert food: %w", err)
		}
		if err := s.cache.SetPromotedFoodID(txCtx, row.ID, food.ID); err != nil {
			return fmt.Errorf("link cache row: %w", err)
		}
		return nil
	})
	if err != nil {
		s.metrics.Promotions.WithLabelValues(promotionFailed).Inc()
		s.logger.Error("promotion failed",
			"cache_id", row.ID,
			"user_id", userID,
			"error", err,
		)
		return uuid.Nil, &domain.PromotionError{Reason: "store promoted food", Err: err}
	}

	if row.PromotedFoodMasterID.Valid {
		s.logger.Warn("cache row promoted again, back-reference replaced",
			"cache_id", row.ID,
			"previous_food_id", row.PromotedFoodMasterID.UUID,
			"food_id", food.ID,
		)
	}
	row.PromotedFoodMasterID = uuid.NullUUID{UUID: food.ID, Valid: true}

	s.metrics.Promotions.WithLabelValues(promotionCreated).Inc()
	s.logger.Info("cache row promoted",
		"cache_id", row.ID,
		"food_id", food.ID,
		"user_id", userID,
	)

	if s.publisher != nil {
		event := &domain.Event{
			Type:       domain.EventFoodPromoted,
			Barcode:    row.Barcode,
			Source:     row.Source,
			CacheRowID: row.ID,
			FoodID:     uuid.NullUUID{UUID: food.ID, Valid: true},
			UserID:     uuid.NullUUID{UUID: userID, Valid: true},
			Timestamp:  s.now().UTC(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish event", "type", event.Type, "error", err)
		}
	}

	return food.ID, nil
}

// PromoteByID loads the cache row by id and promotes it.
func (s *PromotionService) PromoteByID(
	ctx context.Context,
	cacheID uuid.UUID,
	userID uuid.UUID,
	overrides *domain.PromotionOverrides,
) (uuid.UUID, error) {
	row, err := s.cache.GetByID(ctx, cacheID)
	if err != nil {
		if errors.Is(err, domain.ErrCacheRowNotFound) {
			s.metrics.Promotions.WithLabelValues(promotionRejected).Inc()
			return uuid.Nil, &domain.PromotionError{Reason: "cache row " + cacheID.String(), Err: err}
		}
		s.metrics.Promotions.WithLabelValues(promotionFailed).Inc()
		return uuid.Nil, &domain.PromotionError{Reason: "load cache row", Err: err}
	}

	return s.Promote(ctx, row, userID, overrides)
}

func (s *PromotionService) checkPrerequisites(row *domain.CacheRow, userID uuid.UUID) error {
	switch {
	case row == nil:
		return &domain.PromotionError{Reason: "cache row is missing", Err: domain.ErrPromotionPrerequisite}
	case !row.Persisted:
		return &domain.PromotionError{Reason: "cache row was never stored", Err: domain.ErrPromotionPrerequisite}
	case userID == uuid.Nil:
		return &domain.PromotionError{Reason: "user id is missing", Err: domain.ErrPromotionPrerequisite}
	}
	return nil
}
