package domain

import (
	"time"

	"github.com/google/uuid"
)

// CanonicalFood is a row of the food master table. Nutrient values are per
// declared serving; sodium is in milligrams.
type CanonicalFood struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	Name          string        `db:"name" json:"name"`
	Brand         *string       `db:"brand" json:"brand,omitempty"`
	CaloriesKcal  float64       `db:"calories_kcal" json:"calories_kcal"`
	ProteinG      float64       `db:"protein_g" json:"protein_g"`
	CarbsG        float64       `db:"carbs_g" json:"carbs_g"`
	FatG          float64       `db:"fat_g" json:"fat_g"`
	FiberG        float64       `db:"fiber_g" json:"fiber_g"`
	SaturatedFatG float64       `db:"saturated_fat_g" json:"saturated_fat_g"`
	SugarG        float64       `db:"sugar_g" json:"sugar_g"`
	SodiumMg      float64       `db:"sodium_mg" json:"sodium_mg"`
	ServingSize   float64       `db:"serving_size" json:"serving_size"`
	ServingUnit   string        `db:"serving_unit" json:"serving_unit"`
	Source        string        `db:"source" json:"source"`
	IsCustom      bool          `db:"is_custom" json:"is_custom"`
	OwnerUserID   uuid.NullUUID `db:"owner_user_id" json:"owner_user_id"`
	Barcode       *string       `db:"barcode" json:"barcode,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// MatchesBarcode reports whether the food is a curated record carrying
// exactly the given barcode.
func (f *CanonicalFood) MatchesBarcode(barcode Barcode) bool {
	return f != nil && !f.IsCustom && f.Barcode != nil && *f.Barcode == barcode.String()
}
