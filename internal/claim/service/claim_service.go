// Package service implements the claim lifecycle: policy-gated creation and
// per-user listing. Claim creation is the one place in the system with a
// load-bearing invariant: at most one claim per (user, deal) pair, ever.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"startup-benefits/backend/internal/claim/domain"
	"startup-benefits/backend/internal/db"
	dealdomain "startup-benefits/backend/internal/deal/domain"
	userdomain "startup-benefits/backend/internal/user/domain"
)

// Sentinel errors for the claim service; handlers map them to HTTP codes.
var (
	ErrDealNotFound         = errors.New("deal not found")
	ErrVerificationRequired = errors.New("verification required to claim this deal")
	ErrAlreadyClaimed       = errors.New("deal already claimed")
)

// DealRepo is the minimal deal repository needed by the claim service.
type DealRepo interface {
	GetActiveByID(ctx context.Context, id string) (*dealdomain.Deal, error)
}

// ClaimRepo is the minimal claim repository needed by the claim service.
type ClaimRepo interface {
	GetByUserAndDeal(ctx context.Context, userID, dealID string) (*domain.Claim, error)
	Create(ctx context.Context, c *domain.Claim) error
	ListByUserWithDeals(ctx context.Context, userID string) ([]*domain.WithDeal, error)
}

// PolicyEvaluator decides whether a user may claim a deal.
type PolicyEvaluator interface {
	Allow(ctx context.Context, deal *dealdomain.Deal, user *userdomain.User) (bool, error)
}

// ClaimService orchestrates deal resolution, the access policy check, and
// claim creation with uniqueness enforcement.
type ClaimService struct {
	deals  DealRepo
	claims ClaimRepo
	policy PolicyEvaluator
}

// NewClaimService returns a ClaimService with the given dependencies.
func NewClaimService(deals DealRepo, claims ClaimRepo, policy PolicyEvaluator) *ClaimService {
	return &ClaimService{
		deals:  deals,
		claims: claims,
		policy: policy,
	}
}

// Create claims the deal for the user. The check order is fixed: resolve the
// active deal (ErrDealNotFound), evaluate the access policy
// (ErrVerificationRequired), reject an existing claim in any status
// (ErrAlreadyClaimed), then insert a pending claim.
//
// The duplicate check and the insert are not atomic; the unique index on
// (user_id, deal_id) is the source of truth. A racing duplicate insert is
// translated into the same ErrAlreadyClaimed a sequential check produces, and
// is never retried: a retry would only re-read the already-existing claim.
func (s *ClaimService) Create(ctx context.Context, user *userdomain.User, dealID string) (*domain.Claim, error) {
	deal, err := s.deals.GetActiveByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}

	allowed, err := s.policy.Allow(ctx, deal, user)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrVerificationRequired
	}

	existing, err := s.claims.GetByUserAndDeal(ctx, user.ID, deal.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Any status blocks, including rejected: one claim ever per deal.
		return nil, ErrAlreadyClaimed
	}

	now := time.Now().UTC()
	claim := &domain.Claim{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		DealID:    deal.ID,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.claims.Create(ctx, claim); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrAlreadyClaimed
		}
		return nil, err
	}
	return claim, nil
}

// ListForUser returns all claims owned by the user, each joined with a summary
// of its deal, newest first. Unpaginated; acceptable at this scale.
func (s *ClaimService) ListForUser(ctx context.Context, userID string) ([]*domain.WithDeal, error) {
	return s.claims.ListByUserWithDeals(ctx, userID)
}
