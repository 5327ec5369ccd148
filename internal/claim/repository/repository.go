package repository

import (
	"context"

	"startup-benefits/backend/internal/claim/domain"
)

// Repository defines persistence for claims.
type Repository interface {
	// GetByUserAndDeal returns the claim for the (user, deal) pair in any
	// status, or nil if none exists.
	GetByUserAndDeal(ctx context.Context, userID, dealID string) (*domain.Claim, error)
	// Create inserts the claim. A racing duplicate for the same (user, deal)
	// pair surfaces as a unique-violation error from the driver.
	Create(ctx context.Context, c *domain.Claim) error
	// ListByUserWithDeals returns the user's claims joined with their deal
	// summaries, newest first.
	ListByUserWithDeals(ctx context.Context, userID string) ([]*domain.WithDeal, error)
}
