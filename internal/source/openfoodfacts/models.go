package openfoodfacts

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// APIResponse represents the Open Food Facts v2 product response.
type APIResponse struct {
	Code          string   `json:"code"`
	Status        int      `json:"status"`
	StatusVerbose string   `json:"status_verbose"`
	Product       *Product `json:"product"`
}

type Product struct {
	ID            string     `json:"_id"`
	Code          string     `json:"code"`
	ProductName   string     `json:"product_name"`
	ProductNameEn string     `json:"product_name_en"`
	GenericName   string     `json:"generic_name"`
	Brands        string     `json:"brands"`
	ServingSize   string     `json:"serving_size"`
	Nutriments    Nutriments `json:"nutriments"`
}

type Nutriments struct {
	EnergyKcal100g    *Number `json:"energy-kcal_100g"`
	Proteins100g      *Number `json:"proteins_100g"`
	Carbohydrates100g *Number `json:"carbohydrates_100g"`
	Fat100g           *Number `json:"fat_100g"`
	SaturatedFat100g  *Number `json:"saturated-fat_100g"`
	Sugars100g        *Number `json:"sugars_100g"`
	Fiber100g         *Number `json:"fiber_100g"`
	Sodium100g        *Number `json:"sodium_100g"`
}

// Number accepts both JSON numbers and numeric strings; the API emits either.
// Empty or unparseable strings leave the value unreported instead of failing
// the whole response.
type Number struct {
	value float64
	valid bool
	raw   string
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n.raw = s
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		n.value, n.valid = v, true
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.value, n.valid = v, true
	return nil
}

// Float returns the value, or nil when the field was absent, empty or not a
// number.
func (n *Number) Float() *float64 {
	if n == nil || !n.valid {
		return nil
	}
	v := n.value
	return &v
}

// Unparsed reports a non-empty string value that could not be read as a
// number.
func (n *Number) Unparsed() (string, bool) {
	if n == nil || n.valid || strings.TrimSpace(n.raw) == "" {
		return "", false
	}
	return n.raw, true
}
