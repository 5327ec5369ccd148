package domain

import (
	"time"

	dealdomain "startup-benefits/backend/internal/deal/domain"
)

// Status is the claim lifecycle state. Claims are always created pending;
// the pending->approved/rejected transition belongs to an out-of-band
// administrative process and has no endpoint here.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Claim records one user's attempt to redeem one deal. At most one claim
// exists per (user, deal) pair, regardless of status: a rejected claim does
// not free up a new attempt.
type Claim struct {
	ID        string
	UserID    string
	DealID    string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicClaim is the API view returned on claim creation.
type PublicClaim struct {
	ID        string    `json:"id"`
	DealID    string    `json:"dealId"`
	UserID    string    `json:"userId"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the API view of the claim.
func (c *Claim) Public() PublicClaim {
	return PublicClaim{
		ID:        c.ID,
		DealID:    c.DealID,
		UserID:    c.UserID,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}

// WithDeal is a claim joined with a summary projection of its deal, as
// returned by the claim listing.
type WithDeal struct {
	ID        string             `json:"id"`
	Status    Status             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	Deal      dealdomain.Summary `json:"deal"`
}
