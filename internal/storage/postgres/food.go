package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"barcode_lookup/internal/domain"
)

const foodColumns = `
	id, name, brand, calories_kcal, protein_g, carbs_g, fat_g, fiber_g,
	saturated_fat_g, sugar_g, sodium_mg, serving_size, serving_unit, source,
	is_custom, owner_user_id, barcode, created_at, updated_at`

// FoodMasterStore reads and writes canonical food records.
type FoodMasterStore struct {
	db *sqlx.DB
}

func NewFoodMasterStore(db *sqlx.DB) *FoodMasterStore {
	return &FoodMasterStore{db: db}
}

// LookupByBarcode returns the curated record for barcode, or nil when none
// exists. Custom records are never considered.
func (s *FoodMasterStore) LookupByBarcode(ctx context.Context, barcode domain.Barcode) (*domain.CanonicalFood, error) {
	query := `SELECT` + foodColumns + `
		FROM food_master
		WHERE barcode = $1 AND is_custom = FALSE
		ORDER BY created_at
		LIMIT 1`

	var food domain.CanonicalFood
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &food, query, barcode.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodMasterStore) Insert(ctx context.Context, food *domain.CanonicalFood) error {
	query := `
		INSERT INTO food_master (` + foodColumns + `
		) VALUES (
			:id, :name, :brand, :calories_kcal, :protein_g, :carbs_g, :fat_g, :fiber_g,
			:saturated_fat_g, :sugar_g, :sodium_mg, :serving_size, :serving_unit, :source,
			:is_custom, :owner_user_id, :barcode, :created_at, :updated_at
		)`

	_, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), query, food)
	return err
}
