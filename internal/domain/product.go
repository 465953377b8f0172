package domain

import "encoding/json"

// Nutrients100g holds per-100g values from an external provider. Sodium is
// in milligrams; a nil field means the provider did not report it.
type Nutrients100g struct {
	EnergyKcal   *float64 `json:"energy_kcal,omitempty"`
	Protein      *float64 `json:"protein,omitempty"`
	Carbs        *float64 `json:"carbs,omitempty"`
	Fat          *float64 `json:"fat,omitempty"`
	SaturatedFat *float64 `json:"saturated_fat,omitempty"`
	Sugar        *float64 `json:"sugar,omitempty"`
	Fiber        *float64 `json:"fiber,omitempty"`
	SodiumMg     *float64 `json:"sodium_mg,omitempty"`
}

// ExternalProduct is a provider response adapted to the internal shape.
type ExternalProduct struct {
	Barcode     Barcode         `json:"barcode"`
	SourceID    *string         `json:"source_id,omitempty"`
	ProductName string          `json:"product_name"`
	Brand       *string         `json:"brand,omitempty"`
	ServingSize *string         `json:"serving_size,omitempty"`
	Nutrients   Nutrients100g   `json:"nutrients_100g"`
	RawPayload  json.RawMessage `json:"-"`
}

// FetchResult is the answer of an external provider. A nil Product means the
// provider reported the barcode as unknown; Reason then carries its message.
type FetchResult struct {
	Product *ExternalProduct
	Reason  string
}

func (r *FetchResult) Found() bool {
	return r != nil && r.Product != nil
}
