// Package service implements catalog queries over the deal store.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"startup-benefits/backend/internal/deal/domain"
)

// ErrNotFound is returned when no active deal matches a lookup.
var ErrNotFound = errors.New("deal not found")

// DealRepo is the minimal deal repository needed by the catalog service.
type DealRepo interface {
	ListActive(ctx context.Context, filter domain.Filter) ([]*domain.Deal, error)
	GetActiveByID(ctx context.Context, id string) (*domain.Deal, error)
	GetActiveBySlug(ctx context.Context, slug string) (*domain.Deal, error)
}

// CatalogService serves deal listings and lookups. The catalog is read-only
// from this service's perspective; deals are managed out of band.
type CatalogService struct {
	deals DealRepo
}

// NewCatalogService returns a CatalogService backed by the given repository.
func NewCatalogService(deals DealRepo) *CatalogService {
	return &CatalogService{deals: deals}
}

// List returns active deals matching the filter, newest first, plus a total
// count. Malformed filter values are dropped by normalization rather than
// rejected: a typo'd filter degrades to "no filter", not an error.
func (s *CatalogService) List(ctx context.Context, filter domain.Filter) ([]*domain.Deal, int, error) {
	deals, err := s.deals.ListActive(ctx, filter.Normalize())
	if err != nil {
		return nil, 0, err
	}
	return deals, len(deals), nil
}

// GetBySlugOrID returns the active deal for the given slug or id. Input in
// canonical UUID shape is looked up by id, anything else by slug. Fails with
// ErrNotFound when no active deal matches.
func (s *CatalogService) GetBySlugOrID(ctx context.Context, slugOrID string) (*domain.Deal, error) {
	var (
		deal *domain.Deal
		err  error
	)
	if _, parseErr := uuid.Parse(slugOrID); parseErr == nil {
		deal, err = s.deals.GetActiveByID(ctx, slugOrID)
	} else {
		deal, err = s.deals.GetActiveBySlug(ctx, slugOrID)
	}
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrNotFound
	}
	return deal, nil
}
