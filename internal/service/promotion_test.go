package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"barcode_lookup/internal/config"
	"barcode_lookup/internal/domain"
	"barcode_lookup/internal/metrics"
	"barcode_lookup/internal/service/mocks"
	"barcode_lookup/testdata/utils"
)

type PromotionServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	ctx  context.Context

	foods     *mocks.MockCanonicalFoodStore
	cache     *mocks.MockExternalCacheStore
	txManager *mocks.MockTransactionManager
	publisher *mocks.MockPublisher

	metrics *metrics.Metrics
	logger  *slog.Logger
	userID  uuid.UUID
	service *PromotionService
}

func (s *PromotionServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()

	s.foods = mocks.NewMockCanonicalFoodStore(s.ctrl)
	s.cache = mocks.NewMockExternalCacheStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	s.metrics = metrics.New(prometheus.NewRegistry())
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.userID = uuid.New()

	s.service = s.newService(config.PromotionConfig{})
}

func (s *PromotionServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestPromotionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PromotionServiceTestSuite))
}

func (s *PromotionServiceTestSuite) newService(cfg config.PromotionConfig) *PromotionService {
	svc := NewPromotionService(s.foods, s.cache, s.txManager, s.publisher, s.metrics, s.logger, cfg)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func (s *PromotionServiceTestSuite) row() *domain.CacheRow {
	return &domain.CacheRow{
		ID:             uuid.New(),
		Barcode:        "0036000291452",
		Source:         testSource,
		ProductName:    "Test Bar",
		Brand:          utils.Ptr("Acme"),
		EnergyKcal100g: utils.Ptr(450.0),
		Protein100g:    utils.Ptr(7.5),
		Sodium100g:     utils.Ptr(0.3),
		TimesScanned:   3,
		Persisted:      true,
	}
}

func (s *PromotionServiceTestSuite) expectTransaction() {
	s.txManager.EXPECT().WithTransaction(s.ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func (s *PromotionServiceTestSuite) TestPromote_CreatesCustomFoodAndLinksRow() {
	row := s.row()
	var inserted *domain.CanonicalFood

	s.expectTransaction()
	s.foods.EXPECT().Insert(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, food *domain.CanonicalFood) error {
			inserted = food
			return nil
		},
	)
	s.cache.EXPECT().SetPromotedFoodID(s.ctx, row.ID, gomock.Any()).Return(nil)
	s.publisher.EXPECT().Publish(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, event *domain.Event) error {
			s.Equal(domain.EventFoodPromoted, event.Type)
			s.Equal(row.ID, event.CacheRowID)
			s.Equal(s.userID, event.UserID.UUID)
			return nil
		},
	)

	foodID, err := s.service.Promote(s.ctx, row, s.userID, nil)

	s.Require().NoError(err)
	s.Require().NotNil(inserted)
	s.Equal(inserted.ID, foodID)
	s.True(inserted.IsCustom)
	s.Equal(s.userID, inserted.OwnerUserID.UUID)
	s.Equal("Test Bar", inserted.Name)
	s.Equal(100.0, inserted.ServingSize)
	s.Equal("g", inserted.ServingUnit)
	s.InDelta(300.0, inserted.SodiumMg, 1e-9)
	s.Equal(uuid.NullUUID{UUID: foodID, Valid: true}, row.PromotedFoodMasterID)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Promotions.WithLabelValues(promotionCreated)))
}

func (s *PromotionServiceTestSuite) TestPromote_AppliesOverrides() {
	row := s.row()
	overrides := &domain.PromotionOverrides{
		Name:        utils.Ptr("Protein Bar"),
		ServingSize: utils.Ptr(40.0),
	}

	s.expectTransaction()
	s.foods.EXPECT().Insert(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, food *domain.CanonicalFood) error {
			s.Equal("Protein Bar", food.Name)
			s.Equal(40.0, food.ServingSize)
			s.InDelta(180.0, food.CaloriesKcal, 1e-9)
			s.InDelta(120.0, food.SodiumMg, 1e-9)
			return nil
		},
	)
	s.cache.EXPECT().SetPromotedFoodID(s.ctx, row.ID, gomock.Any()).Return(nil)
	s.publisher.EXPECT().Publish(s.ctx, gomock.Any()).Return(nil)

	_, err := s.service.Promote(s.ctx, row, s.userID, overrides)

	s.NoError(err)
}

func (s *PromotionServiceTestSuite) TestPromote_InsertFailureIsTypedFailure() {
	row := s.row()

	s.expectTransaction()
	s.foods.EXPECT().Insert(s.ctx, gomock.Any()).Return(errors.New("unique violation"))

	foodID, err := s.service.Promote(s.ctx, row, s.userID, nil)

	s.Equal(uuid.Nil, foodID)
	var promoErr *domain.PromotionError
	s.Require().ErrorAs(err, &promoErr)
	s.Contains(err.Error(), "unique violation")
	s.False(row.PromotedFoodMasterID.Valid)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Promotions.WithLabelValues(promotionFailed)))
}

func (s *PromotionServiceTestSuite) TestPromote_LinkFailureRollsBack() {
	row := s.row()

	s.expectTransaction()
	s.foods.EXPECT().Insert(s.ctx, gomock.Any()).Return(nil)
	s.cache.EXPECT().SetPromotedFoodID(s.ctx, row.ID, gomock.Any()).Return(domain.ErrCacheRowNotFound)

	_, err := s.service.Promote(s.ctx, row, s.userID, nil)

	s.ErrorIs(err, domain.ErrCacheRowNotFound)
	s.False(row.PromotedFoodMasterID.Valid)
}

func (s *PromotionServiceTestSuite) TestPromote_MissingPrerequisites() {
	unpersisted := s.row()
	unpersisted.Persisted = false

	nameless := s.row()
	nameless.ProductName = "  "

	tests := []struct {
		name   string
		row    *domain.CacheRow
		userID uuid.UUID
		target error
	}{
		{name: "nil row", row: nil, userID: s.userID, target: domain.ErrPromotionPrerequisite},
		{name: "unpersisted row", row: unpersisted, userID: s.userID, target: domain.ErrPromotionPrerequisite},
		{name: "nil user", row: s.row(), userID: uuid.Nil, target: domain.ErrPromotionPrerequisite},
		{name: "nameless row", row: nameless, userID: s.userID, target: domain.ErrPromotionPrerequisite},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			foodID, err := s.service.Promote(s.ctx, tt.row, tt.userID, nil)

			s.Equal(uuid.Nil, foodID)
			s.ErrorIs(err, tt.target)
		})
	}
}

func (s *PromotionServiceTestSuite) TestPromote_UnsupportedServingUnit() {
	_, err := s.service.Promote(s.ctx, s.row(), s.userID, &domain.PromotionOverrides{
		ServingUnit: utils.Ptr("piece"),
	})

	s.ErrorIs(err, domain.ErrUnsupportedServingUnit)
}

func (s *PromotionServiceTestSuite) TestPromote_SecondPromotionReplacesLink() {
	row := s.row()
	previous := uuid.New()
	row.PromotedFoodMasterID = uuid.NullUUID{UUID: previous, Valid: true}

	s.expectTransaction()
	s.foods.EXPECT().Insert(s.ctx, gomock.Any()).Return(nil)
	s.cache.EXPECT().SetPromotedFoodID(s.ctx, row.ID, gomock.Any()).Return(nil)
	s.publisher.EXPECT().Publish(s.ctx, gomock.Any()).Return(nil)

	foodID, err := s.service.Promote(s.ctx, row, s.userID, nil)

	s.Require().NoError(err)
	s.NotEqual(previous, foodID)
	s.Equal(foodID, row.PromotedFoodMasterID.UUID)
}

func (s *PromotionServiceTestSuite) TestPromote_ReuseExistingShortCircuits() {
	svc := s.newService(config.PromotionConfig{ReuseExisting: true})
	row := s.row()
	existing := uuid.New()
	row.PromotedFoodMasterID = uuid.NullUUID{UUID: existing, Valid: true}

	foodID, err := svc.Promote(s.ctx, row, s.userID, nil)

	s.NoError(err)
	s.Equal(existing, foodID)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Promotions.WithLabelValues(promotionReused)))
}

func (s *PromotionServiceTestSuite) TestPromoteByID_LoadsRow() {
	row := s.row()

	s.cache.EXPECT().GetByID(s.ctx, row.ID).Return(row, nil)
	s.expectTransaction()
	s.foods.EXPECT().Insert(s.ctx, gomock.Any()).Return(nil)
	s.cache.EXPECT().SetPromotedFoodID(s.ctx, row.ID, gomock.Any()).Return(nil)
	s.publisher.EXPECT().Publish(s.ctx, gomock.Any()).Return(nil)

	foodID, err := s.service.PromoteByID(s.ctx, row.ID, s.userID, nil)

	s.NoError(err)
	s.NotEqual(uuid.Nil, foodID)
}

func (s *PromotionServiceTestSuite) TestPromoteByID_UnknownRow() {
	id := uuid.New()
	s.cache.EXPECT().GetByID(s.ctx, id).Return(nil, domain.ErrCacheRowNotFound)

	_, err := s.service.PromoteByID(s.ctx, id, s.userID, nil)

	s.ErrorIs(err, domain.ErrCacheRowNotFound)
	var promoErr *domain.PromotionError
	s.ErrorAs(err, &promoErr)
}
