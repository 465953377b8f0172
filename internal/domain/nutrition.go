package domain

import "math"

// ServingNutrition is the nutrition of one serving computed from a cache row.
type ServingNutrition struct {
	Calories int64   `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	SodiumMg int64   `json:"sodium_mg"`
}

// CalculateNutritionForServing scales per-100g cache values to servingGrams.
// Calories and sodium are rounded to integers, the rest to one decimal.
// Missing values count as zero.
func CalculateNutritionForServing(row *CacheRow, servingGrams float64) ServingNutrition {
	if row == nil {
		return ServingNutrition{}
	}
	factor := servingGrams / 100

	return ServingNutrition{
		Calories: int64(math.Round(value(row.EnergyKcal100g) * factor)),
		Protein:  round1(value(row.Protein100g) * factor),
		Carbs:    round1(value(row.Carbs100g) * factor),
		Fat:      round1(value(row.Fat100g) * factor),
		Fiber:    round1(value(row.Fiber100g) * factor),
		Sugar:    round1(value(row.Sugar100g) * factor),
		SodiumMg: int64(math.Round(value(row.Sodium100g) * 1000 * factor)),
	}
}

func value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
