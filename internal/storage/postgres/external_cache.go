package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"barcode_lookup/internal/domain"
)

const cacheColumns = `
	id, barcode, source, source_id, product_name, brand,
	energy_kcal_100g, protein_100g, carbs_100g, fat_100g, saturated_fat_100g,
	sugar_100g, fiber_100g, sodium_100g, serving_size, raw_payload,
	created_at, updated_at, last_fetched_at, times_scanned, promoted_food_master_id`

// ExternalCacheStore persists memoized external product lookups.
type ExternalCacheStore struct {
	db *sqlx.DB
}

func NewExternalCacheStore(db *sqlx.DB) *ExternalCacheStore {
	return &ExternalCacheStore{db: db}
}

// Lookup finds the row for (barcode, source). When that query fails or
// matches nothing it falls back to any row with the barcode, since older rows
// may carry a different source tag. Returns nil when both miss.
func (s *ExternalCacheStore) Lookup(ctx context.Context, barcode domain.Barcode, source string) (*domain.CacheRow, error) {
	exec := GetExecutor(ctx, s.db)

	var row domain.CacheRow
	compositeErr := sqlx.GetContext(ctx, exec, &row,
		`SELECT`+cacheColumns+` FROM external_food_cache WHERE barcode = $1 AND source = $2`,
		barcode.String(), source,
	)
	if compositeErr == nil {
		row.Persisted = true
		return &row, nil
	}
	if errors.Is(compositeErr, sql.ErrNoRows) {
		compositeErr = nil
	}

	err := sqlx.GetContext(ctx, exec, &row,
		`SELECT`+cacheColumns+`
		FROM external_food_cache
		WHERE barcode = $1
		ORDER BY last_fetched_at DESC NULLS LAST
		LIMIT 1`,
		barcode.String(),
	)
	switch {
	case err == nil:
		row.Persisted = true
		return &row, nil
	case errors.Is(err, sql.ErrNoRows):
		if compositeErr != nil {
			return nil, fmt.Errorf("composite lookup: %w", compositeErr)
		}
		return nil, nil
	default:
		return nil, errors.Join(compositeErr, err)
	}
}

func (s *ExternalCacheStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CacheRow, error) {
	var row domain.CacheRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row,
		`SELECT`+cacheColumns+` FROM external_food_cache WHERE id = $1`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCacheRowNotFound
	}
	if err != nil {
		return nil, err
	}
	row.Persisted = true
	return &row, nil
}

// Upsert writes row keyed by (barcode, source). A new row starts at one scan;
// an existing row is overwritten with the fetched data and its counter bumped.
func (s *ExternalCacheStore) Upsert(ctx context.Context, row *domain.CacheRow) (*domain.CacheRow, error) {
	query := `
		INSERT INTO external_food_cache (
			id, barcode, source, source_id, product_name, brand,
			energy_kcal_100g, protein_100g, carbs_100g, fat_100g, saturated_fat_100g,
			sugar_100g, fiber_100g, sodium_100g, serving_size, raw_payload,
			created_at, updated_at, last_fetched_at, times_scanned
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			NOW(), NOW(), NOW(), 1
		)
		ON CONFLICT (barcode, source) DO UPDATE SET
			source_id = EXCLUDED.source_id,
			product_name = EXCLUDED.product_name,
			brand = EXCLUDED.brand,
			energy_kcal_100g = EXCLUDED.energy_kcal_100g,
			protein_100g = EXCLUDED.protein_100g,
			carbs_100g = EXCLUDED.carbs_100g,
			fat_100g = EXCLUDED.fat_100g,
			saturated_fat_100g = EXCLUDED.saturated_fat_100g,
			sugar_100g = EXCLUDED.sugar_100g,
			fiber_100g = EXCLUDED.fiber_100g,
			sodium_100g = EXCLUDED.sodium_100g,
			serving_size = EXCLUDED.serving_size,
			raw_payload = EXCLUDED.raw_payload,
			updated_at = NOW(),
			last_fetched_at = NOW(),
			times_scanned = external_food_cache.times_scanned + 1
		RETURNING` + cacheColumns

	// lib/pq sends []byte as bytea, which jsonb rejects.
	payload := string(row.RawPayload)
	if payload == "" {
		payload = "{}"
	}

	var saved domain.CacheRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &saved, query,
		row.ID,
		row.Barcode,
		row.Source,
		row.SourceID,
		row.ProductName,
		row.Brand,
		row.EnergyKcal100g,
		row.Protein100g,
		row.Carbs100g,
		row.Fat100g,
		row.SaturatedFat100g,
		row.Sugar100g,
		row.Fiber100g,
		row.Sodium100g,
		row.ServingSize,
		payload,
	)
	if err != nil {
		return nil, err
	}
	saved.Persisted = true
	return &saved, nil
}

// IncrementScanCount bumps times_scanned and returns the new value.
func (s *ExternalCacheStore) IncrementScanCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &count, `
		UPDATE external_food_cache
		SET times_scanned = times_scanned + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING times_scanned`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrCacheRowNotFound
	}
	return count, err
}

func (s *ExternalCacheStore) SetPromotedFoodID(ctx context.Context, id, foodID uuid.UUID) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		UPDATE external_food_cache
		SET promoted_food_master_id = $2, updated_at = NOW()
		WHERE id = $1`, id, foodID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCacheRowNotFound
	}
	return nil
}

// CountStale counts rows never fetched or last fetched before cutoff.
func (s *ExternalCacheStore) CountStale(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &count, `
		SELECT COUNT(*) FROM external_food_cache
		WHERE last_fetched_at IS NULL OR last_fetched_at < $1`, cutoff,
	)
	return count, err
}
