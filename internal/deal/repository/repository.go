package repository

import (
	"context"

	"startup-benefits/backend/internal/deal/domain"
)

// Repository defines read access to the deal catalog. All lookups are
// restricted to active deals; inactive deals are invisible even by exact id
// or slug.
type Repository interface {
	ListActive(ctx context.Context, filter domain.Filter) ([]*domain.Deal, error)
	GetActiveByID(ctx context.Context, id string) (*domain.Deal, error)
	GetActiveBySlug(ctx context.Context, slug string) (*domain.Deal, error)
}
