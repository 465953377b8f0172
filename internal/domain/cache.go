package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultStaleAfter is the age after which a cache row is reported stale.
const DefaultStaleAfter = 30 * 24 * time.Hour

// CacheRow is a memoized external lookup keyed by (barcode, source).
// Nutrient values are per 100g and sodium is in grams, as delivered by the
// provider; see ExternalProduct for the milligram form.
type CacheRow struct {
	ID                   uuid.UUID       `db:"id" json:"id"`
	Barcode              string          `db:"barcode" json:"barcode"`
	Source               string          `db:"source" json:"source"`
	SourceID             *string         `db:"source_id" json:"source_id,omitempty"`
	ProductName          string          `db:"product_name" json:"product_name"`
	Brand                *string         `db:"brand" json:"brand,omitempty"`
	EnergyKcal100g       *float64        `db:"energy_kcal_100g" json:"energy_kcal_100g"`
	Protein100g          *float64        `db:"protein_100g" json:"protein_100g"`
	Carbs100g            *float64        `db:"carbs_100g" json:"carbs_100g"`
	Fat100g              *float64        `db:"fat_100g" json:"fat_100g"`
	SaturatedFat100g     *float64        `db:"saturated_fat_100g" json:"saturated_fat_100g"`
	Sugar100g            *float64        `db:"sugar_100g" json:"sugar_100g"`
	Fiber100g            *float64        `db:"fiber_100g" json:"fiber_100g"`
	Sodium100g           *float64        `db:"sodium_100g" json:"sodium_100g"`
	ServingSize          *string         `db:"serving_size" json:"serving_size,omitempty"`
	RawPayload           json.RawMessage `db:"raw_payload" json:"-"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at" json:"updated_at"`
	LastFetchedAt        *time.Time      `db:"last_fetched_at" json:"last_fetched_at"`
	TimesScanned         int64           `db:"times_scanned" json:"times_scanned"`
	PromotedFoodMasterID uuid.NullUUID   `db:"promoted_food_master_id" json:"promoted_food_master_id"`

	// Persisted is false for rows synthesized after a failed cache write.
	Persisted bool `db:"-" json:"persisted"`
}

// IsStale reports whether a row last refreshed at lastFetchedAt is older than
// maxAge at now. A row never refreshed is always stale.
func IsStale(lastFetchedAt *time.Time, now time.Time, maxAge time.Duration) bool {
	if lastFetchedAt == nil {
		return true
	}
	return now.Sub(*lastFetchedAt) > maxAge
}

// NewCacheRow builds the row that a write-through of product would persist.
// It is used both as the upsert input and as the synthetic fallback.
func NewCacheRow(source string, product *ExternalProduct, timesScanned int64, now time.Time) *CacheRow {
	n := product.Nutrients
	row := &CacheRow{
		ID:               uuid.New(),
		Barcode:          product.Barcode.String(),
		Source:           source,
		SourceID:         product.SourceID,
		ProductName:      product.ProductName,
		Brand:            product.Brand,
		EnergyKcal100g:   n.EnergyKcal,
		Protein100g:      n.Protein,
		Carbs100g:        n.Carbs,
		Fat100g:          n.Fat,
		SaturatedFat100g: n.SaturatedFat,
		Sugar100g:        n.Sugar,
		Fiber100g:        n.Fiber,
		ServingSize:      product.ServingSize,
		RawPayload:       product.RawPayload,
		CreatedAt:        now,
		UpdatedAt:        now,
		LastFetchedAt:    &now,
		TimesScanned:     timesScanned,
	}
	if n.SodiumMg != nil {
		grams := *n.SodiumMg / 1000
		row.Sodium100g = &grams
	}
	return row
}
