package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"startup-benefits/backend/internal/claim/domain"
	dealdomain "startup-benefits/backend/internal/deal/domain"
	policyengine "startup-benefits/backend/internal/policy/engine"
	userdomain "startup-benefits/backend/internal/user/domain"
)

type memDealRepo struct {
	deals map[string]*dealdomain.Deal
}

func (r *memDealRepo) GetActiveByID(_ context.Context, id string) (*dealdomain.Deal, error) {
	d := r.deals[id]
	if d == nil || !d.IsActive {
		return nil, nil
	}
	return d, nil
}

type memClaimRepo struct {
	claims []*domain.Claim

	createErr error
}

func (r *memClaimRepo) GetByUserAndDeal(_ context.Context, userID, dealID string) (*domain.Claim, error) {
	for _, c := range r.claims {
		if c.UserID == userID && c.DealID == dealID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memClaimRepo) Create(_ context.Context, c *domain.Claim) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.claims = append(r.claims, c)
	return nil
}

func (r *memClaimRepo) ListByUserWithDeals(_ context.Context, userID string) ([]*domain.WithDeal, error) {
	var out []*domain.WithDeal
	for i := len(r.claims) - 1; i >= 0; i-- {
		if c := r.claims[i]; c.UserID == userID {
			out = append(out, &domain.WithDeal{ID: c.ID, Status: c.Status, CreatedAt: c.CreatedAt})
		}
	}
	return out, nil
}

const (
	publicDealID = "3f1c8f5e-0000-4000-8000-000000000001"
	lockedDealID = "3f1c8f5e-0000-4000-8000-000000000002"
)

func newTestFixture(t *testing.T) (*ClaimService, *memClaimRepo) {
	t.Helper()
	deals := &memDealRepo{deals: map[string]*dealdomain.Deal{
		publicDealID: {ID: publicDealID, Title: "Cloud Hosting", AccessLevel: dealdomain.AccessLevelPublic, IsActive: true},
		lockedDealID: {ID: lockedDealID, Title: "Locked Perk", AccessLevel: dealdomain.AccessLevelLocked, IsActive: true},
	}}
	claims := &memClaimRepo{}
	policy, err := policyengine.NewOPAEvaluator()
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	return NewClaimService(deals, claims, policy), claims
}

func testUser(verified bool) *userdomain.User {
	return &userdomain.User{ID: "user-1", Email: "demo@example.com", Name: "Demo User", IsVerified: verified}
}

func TestCreateClaim(t *testing.T) {
	svc, repo := newTestFixture(t)
	user := testUser(false)

	claim, err := svc.Create(context.Background(), user, publicDealID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if claim.Status != domain.StatusPending {
		t.Errorf("status = %q, want pending", claim.Status)
	}
	if claim.UserID != user.ID || claim.DealID != publicDealID {
		t.Errorf("claim = %+v", claim)
	}
	if len(repo.claims) != 1 {
		t.Errorf("persisted %d claims, want 1", len(repo.claims))
	}
}

func TestCreateClaimUnknownDeal(t *testing.T) {
	svc, _ := newTestFixture(t)
	_, err := svc.Create(context.Background(), testUser(true), "3f1c8f5e-0000-4000-8000-00000000ffff")
	if !errors.Is(err, ErrDealNotFound) {
		t.Errorf("err = %v, want ErrDealNotFound", err)
	}
}

func TestCreateClaimAccessPolicy(t *testing.T) {
	tests := []struct {
		name     string
		dealID   string
		verified bool
		wantErr  error
	}{
		{"public deal, unverified user", publicDealID, false, nil},
		{"public deal, verified user", publicDealID, true, nil},
		{"locked deal, unverified user", lockedDealID, false, ErrVerificationRequired},
		{"locked deal, verified user", lockedDealID, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestFixture(t)
			_, err := svc.Create(context.Background(), testUser(tt.verified), tt.dealID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateClaimTwice(t *testing.T) {
	svc, _ := newTestFixture(t)
	user := testUser(false)

	if _, err := svc.Create(context.Background(), user, publicDealID); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), user, publicDealID); !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("second Create err = %v, want ErrAlreadyClaimed", err)
	}
}

func TestCreateClaimRejectedStillBlocks(t *testing.T) {
	svc, repo := newTestFixture(t)
	user := testUser(false)

	repo.claims = append(repo.claims, &domain.Claim{
		ID:     "claim-1",
		UserID: user.ID,
		DealID: publicDealID,
		Status: domain.StatusRejected,
	})
	if _, err := svc.Create(context.Background(), user, publicDealID); !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("err = %v, want ErrAlreadyClaimed", err)
	}
}

func TestCreateClaimRacingDuplicate(t *testing.T) {
	// The duplicate pre-check sees nothing but the insert hits the unique
	// index, as happens when two claims race. No retry, no second row.
	svc, repo := newTestFixture(t)
	repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "claims_user_deal_key"}

	_, err := svc.Create(context.Background(), testUser(false), publicDealID)
	if !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("err = %v, want ErrAlreadyClaimed", err)
	}
	if len(repo.claims) != 0 {
		t.Errorf("persisted %d claims, want 0", len(repo.claims))
	}
}

func TestCreateClaimDistinctUsers(t *testing.T) {
	svc, repo := newTestFixture(t)

	a := &userdomain.User{ID: "user-a"}
	b := &userdomain.User{ID: "user-b"}
	if _, err := svc.Create(context.Background(), a, publicDealID); err != nil {
		t.Fatalf("user a: %v", err)
	}
	if _, err := svc.Create(context.Background(), b, publicDealID); err != nil {
		t.Fatalf("user b: %v", err)
	}
	if len(repo.claims) != 2 {
		t.Errorf("persisted %d claims, want 2", len(repo.claims))
	}
}

func TestListForUser(t *testing.T) {
	svc, repo := newTestFixture(t)
	now := time.Now().UTC()
	repo.claims = []*domain.Claim{
		{ID: "c1", UserID: "user-1", DealID: publicDealID, Status: domain.StatusPending, CreatedAt: now.Add(-time.Hour)},
		{ID: "c2", UserID: "user-2", DealID: publicDealID, Status: domain.StatusPending, CreatedAt: now},
		{ID: "c3", UserID: "user-1", DealID: lockedDealID, Status: domain.StatusApproved, CreatedAt: now},
	}

	got, err := svc.ListForUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d claims, want 2", len(got))
	}
	if got[0].ID != "c3" || got[1].ID != "c1" {
		t.Errorf("order = [%s %s], want newest first [c3 c1]", got[0].ID, got[1].ID)
	}
}
