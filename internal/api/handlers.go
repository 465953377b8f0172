package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"barcode_lookup/internal/domain"
)

type promoteRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	Name        *string   `json:"name,omitempty"`
	Brand       *string   `json:"brand,omitempty"`
	ServingSize *float64  `json:"serving_size,omitempty"`
	ServingUnit *string   `json:"serving_unit,omitempty"`
}

func (r promoteRequest) overrides() *domain.PromotionOverrides {
	if r.Name == nil && r.Brand == nil && r.ServingSize == nil && r.ServingUnit == nil {
		return nil
	}
	return &domain.PromotionOverrides{
		Name:        r.Name,
		Brand:       r.Brand,
		ServingSize: r.ServingSize,
		ServingUnit: r.ServingUnit,
	}
}

type promoteResponse struct {
	FoodID uuid.UUID `json:"food_id"`
}

// handleLookup answers 200 for every outcome; the status field tells them
// apart.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	outcome := s.lookup.HandleScannedBarcode(r.Context(), chi.URLParam(r, "code"))
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handlePromote(w http.ResponseWriter, r *http.Request) {
	cacheID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid cache id: %w", err))
		return
	}

	var req promoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	foodID, err := s.promoter.PromoteByID(r.Context(), cacheID, req.UserID, req.overrides())
	if err != nil {
		s.writeError(w, promotionStatus(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, promoteResponse{FoodID: foodID})
}

func promotionStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrCacheRowNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPromotionPrerequisite),
		errors.Is(err, domain.ErrUnsupportedServingUnit):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleNutrition(w http.ResponseWriter, r *http.Request) {
	cacheID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid cache id: %w", err))
		return
	}

	grams, err := strconv.ParseFloat(r.URL.Query().Get("grams"), 64)
	if err != nil || grams <= 0 || math.IsInf(grams, 0) || math.IsNaN(grams) {
		s.writeError(w, http.StatusBadRequest, errors.New("grams must be a positive number"))
		return
	}

	row, err := s.cache.GetByID(r.Context(), cacheID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrCacheRowNotFound) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, domain.CalculateNutritionForServing(row, grams))
}
