package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"barcode_lookup/internal/domain"
)

type CanonicalFoodStore interface {
	LookupByBarcode(ctx context.Context, barcode domain.Barcode) (*domain.CanonicalFood, error)
	Insert(ctx context.Context, food *domain.CanonicalFood) error
}

type ExternalCacheStore interface {
	Lookup(ctx context.Context, barcode domain.Barcode, source string) (*domain.CacheRow, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CacheRow, error)
	Upsert(ctx context.Context, row *domain.CacheRow) (*domain.CacheRow, error)
	IncrementScanCount(ctx context.Context, id uuid.UUID) (int64, error)
	SetPromotedFoodID(ctx context.Context, id, foodID uuid.UUID) error
	CountStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type ProductSource interface {
	Name() string
	FetchByBarcode(ctx context.Context, barcode domain.Barcode) (*domain.FetchResult, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, event *domain.Event) error
	Close() error
}
