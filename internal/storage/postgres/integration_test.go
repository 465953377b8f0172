//go:build integration

package postgres

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"barcode_lookup/internal/domain"
	"barcode_lookup/testdata/utils"
)

const testBarcode = domain.Barcode("0036000291452")

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_food_master.up.sql"),
			filepath.Join(migrationsPath, "002_create_external_food_cache.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM external_food_cache")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM food_master")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) newFood(isCustom bool) *domain.CanonicalFood {
	now := time.Now().Truncate(time.Microsecond)
	return &domain.CanonicalFood{
		ID:           uuid.New(),
		Name:         "Curated Bar",
		Brand:        utils.Ptr("Acme"),
		CaloriesKcal: 180,
		ProteinG:     4,
		ServingSize:  40,
		ServingUnit:  "g",
		Source:       "catalog",
		IsCustom:     isCustom,
		Barcode:      utils.Ptr(testBarcode.String()),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *PostgresIntegrationSuite) newCacheRow(source string) *domain.CacheRow {
	return domain.NewCacheRow(source, &domain.ExternalProduct{
		Barcode:     testBarcode,
		ProductName: "Test Bar",
		Nutrients: domain.Nutrients100g{
			EnergyKcal: utils.Ptr(450.0),
			SodiumMg:   utils.Ptr(500.0),
		},
		RawPayload: []byte(`{"status":1}`),
	}, 1, time.Now())
}

func (s *PostgresIntegrationSuite) TestFoodMasterStore_LookupCurated() {
	store := NewFoodMasterStore(s.db)
	food := s.newFood(false)
	s.Require().NoError(store.Insert(s.ctx, food))

	found, err := store.LookupByBarcode(s.ctx, testBarcode)
	s.NoError(err)
	s.Require().NotNil(found)
	s.Equal(food.ID, found.ID)
	s.Equal("Curated Bar", found.Name)
	s.False(found.IsCustom)
}

func (s *PostgresIntegrationSuite) TestFoodMasterStore_IgnoresCustomFoods() {
	store := NewFoodMasterStore(s.db)
	custom := s.newFood(true)
	custom.OwnerUserID = uuid.NullUUID{UUID: uuid.New(), Valid: true}
	s.Require().NoError(store.Insert(s.ctx, custom))

	found, err := store.LookupByBarcode(s.ctx, testBarcode)
	s.NoError(err)
	s.Nil(found)
}

func (s *PostgresIntegrationSuite) TestExternalCacheStore_UpsertInsertsThenIncrements() {
	store := NewExternalCacheStore(s.db)

	first, err := store.Upsert(s.ctx, s.newCacheRow("openfoodfacts"))
	s.Require().NoError(err)
	s.True(first.Persisted)
	s.Equal(int64(1), first.TimesScanned)
	s.Require().NotNil(first.LastFetchedAt)
	s.Require().NotNil(first.Sodium100g)
	s.InDelta(0.5, *first.Sodium100g, 1e-9)
	s.JSONEq(`{"status":1}`, string(first.RawPayload))

	refetch := s.newCacheRow("openfoodfacts")
	refetch.ProductName = "Renamed Bar"
	second, err := store.Upsert(s.ctx, refetch)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal(int64(2), second.TimesScanned)
	s.Equal("Renamed Bar", second.ProductName)

	var count int
	s.NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM external_food_cache"))
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestExternalCacheStore_SameBarcodeDifferentSources() {
	store := NewExternalCacheStore(s.db)

	_, err := store.Upsert(s.ctx, s.newCacheRow("openfoodfacts"))
	s.Require().NoError(err)
	_, err = store.Upsert(s.ctx, s.newCacheRow("other"))
	s.Require().NoError(err)

	var count int
	s.NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM external_food_cache WHERE barcode = $1", testBarcode.String()))
	s.Equal(2, count)

	row, err := store.Lookup(s.ctx, testBarcode, "other")
	s.NoError(err)
	s.Require().NotNil(row)
	s.Equal("other", row.Source)
}

func (s *PostgresIntegrationSuite) TestExternalCacheStore_LookupFallsBackToBarcode() {
	store := NewExternalCacheStore(s.db)
	_, err := store.Upsert(s.ctx, s.newCacheRow("legacy"))
	s.Require().NoError(err)

	row, err := store.Lookup(s.ctx, testBarcode, "openfoodfacts")
	s.NoError(err)
	s.Require().NotNil(row)
	s.Equal("legacy", row.Source)
}

func (s *PostgresIntegrationSuite) TestExternalCacheStore_LookupMiss() {
	store := NewExternalCacheStore(s.db)

	row, err := store.Lookup(s.ctx, testBarcode, "openfoodfacts")
	s.NoError(err)
	s.Nil(row)
}

func (s *PostgresIntegrationSuite) TestExternalCacheStore_IncrementScanCount() {
	store := NewExternalCacheStore(s.db)
	row, err := store.Upsert(s.ctx, s.newCacheRow("openfoodfacts"))
	s.Require().NoError(err)

	count, err := store.IncrementScanCount(s.ctx, row.ID)
	s.NoError(err)
	s.Equal(int64(2), count)

	_, err = store.IncrementScanCount(s.ctx, uuid.New())
	s.True(errors.Is(err, domain.ErrCacheRowNotFound))
}

func (s *PostgresIntegrationSuite) TestExternalCacheStore_CountStale() {
	store := NewExternalCacheStore(s.db)
	fresh, err := store.Upsert(s.ctx, s.newCacheRow("openfoodfacts"))
	s.Require().NoError(err)
	old, err := store.Upsert(s.ctx, s.newCacheRow("old"))
	s.Require().NoError(err)
	never, err := store.Upsert(s.ctx, s.newCacheRow("never"))
	s.Require().NoError(err)

	_, err = s.db.ExecContext(s.ctx, "UPDATE external_food_cache SET last_fetched_at = NOW() - INTERVAL '40 days' WHERE id = $1", old.ID)
	s.Require().NoError(err)
	_, err = s.db.ExecContext(s.ctx, "UPDATE external_food_cache SET last_fetched_at = NULL WHERE id = $1", never.ID)
	s.Require().NoError(err)

	count, err := store.CountStale(s.ctx, time.Now().Add(-domain.DefaultStaleAfter))
	s.NoError(err)
	s.Equal(int64(2), count)

	row, err := store.GetByID(s.ctx, never.ID)
	s.NoError(err)
	s.Nil(row.LastFetchedAt)
	s.NotEqual(fresh.ID, row.ID)
}

func (s *PostgresIntegrationSuite) TestPromotion_CommitLinksRow() {
	tm := NewTransactionManager(s.db)
	foods := NewFoodMasterStore(s.db)
	cache := NewExternalCacheStore(s.db)

	row, err := cache.Upsert(s.ctx, s.newCacheRow("openfoodfacts"))
	s.Require().NoError(err)

	food, err := domain.NewPromotedFood(row, uuid.New(), nil, time.Now().Truncate(time.Microsecond))
	s.Require().NoError(err)

	err = tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := foods.Insert(ctx, food); err != nil {
			return err
		}
		return cache.SetPromotedFoodID(ctx, row.ID, food.ID)
	})
	s.Require().NoError(err)

	linked, err := cache.GetByID(s.ctx, row.ID)
	s.NoError(err)
	s.True(linked.PromotedFoodMasterID.Valid)
	s.Equal(food.ID, linked.PromotedFoodMasterID.UUID)

	var isCustom bool
	s.NoError(s.db.GetContext(s.ctx, &isCustom, "SELECT is_custom FROM food_master WHERE id = $1", food.ID))
	s.True(isCustom)
}

func (s *PostgresIntegrationSuite) TestTransaction_Rollback() {
	tm := NewTransactionManager(s.db)
	foods := NewFoodMasterStore(s.db)
	cache := NewExternalCacheStore(s.db)

	food := s.newFood(true)
	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := foods.Insert(ctx, food); err != nil {
			return err
		}
		return cache.SetPromotedFoodID(ctx, uuid.New(), food.ID)
	})
	s.True(errors.Is(err, domain.ErrCacheRowNotFound))

	var count int
	s.NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM food_master WHERE id = $1", food.ID))
	s.Equal(0, count)
}
