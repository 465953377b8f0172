package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventProductCached EventType = "product.cached"
	EventFoodPromoted  EventType = "food.promoted"
)

// Event is published after a cache write-through or a promotion.
type Event struct {
	Type       EventType     `json:"type"`
	Barcode    string        `json:"barcode"`
	Source     string        `json:"source"`
	CacheRowID uuid.UUID     `json:"cache_row_id"`
	FoodID     uuid.NullUUID `json:"food_id"`
	UserID     uuid.NullUUID `json:"user_id"`
	Timestamp  time.Time     `json:"timestamp"`
}
