package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultServingSize = 100
	DefaultServingUnit = "g"
)

// PromotionOverrides replaces fields of the promoted record. Nil fields keep
// the cache row's values and the 100g default serving.
type PromotionOverrides struct {
	Name        *string  `json:"name,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	ServingSize *float64 `json:"serving_size,omitempty"`
	ServingUnit *string  `json:"serving_unit,omitempty"`
}

// NewPromotedFood builds a custom food owned by userID from a cache row.
// Nutrients are scaled from per-100 to the serving size and sodium is
// converted from grams to milligrams.
func NewPromotedFood(row *CacheRow, userID uuid.UUID, overrides *PromotionOverrides, now time.Time) (*CanonicalFood, error) {
	name := row.ProductName
	brand := row.Brand
	size := float64(DefaultServingSize)
	unit := DefaultServingUnit

	if overrides != nil {
		if overrides.Name != nil {
			name = *overrides.Name
		}
		if overrides.Brand != nil {
			brand = overrides.Brand
		}
		if overrides.ServingSize != nil {
			size = *overrides.ServingSize
		}
		if overrides.ServingUnit != nil {
			unit = strings.ToLower(strings.TrimSpace(*overrides.ServingUnit))
		}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &PromotionError{Reason: "product name is empty", Err: ErrPromotionPrerequisite}
	}
	if size <= 0 {
		return nil, &PromotionError{Reason: "serving size must be positive", Err: ErrPromotionPrerequisite}
	}
	if unit != "g" && unit != "ml" {
		return nil, &PromotionError{Reason: "serving unit " + unit, Err: ErrUnsupportedServingUnit}
	}

	factor := size / 100
	barcode := row.Barcode

	return &CanonicalFood{
		ID:            uuid.New(),
		Name:          name,
		Brand:         brand,
		CaloriesKcal:  value(row.EnergyKcal100g) * factor,
		ProteinG:      value(row.Protein100g) * factor,
		CarbsG:        value(row.Carbs100g) * factor,
		FatG:          value(row.Fat100g) * factor,
		FiberG:        value(row.Fiber100g) * factor,
		SaturatedFatG: value(row.SaturatedFat100g) * factor,
		SugarG:        value(row.Sugar100g) * factor,
		SodiumMg:      value(row.Sodium100g) * 1000 * factor,
		ServingSize:   size,
		ServingUnit:   unit,
		Source:        row.Source,
		IsCustom:      true,
		OwnerUserID:   uuid.NullUUID{UUID: userID, Valid: true},
		Barcode:       &barcode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
