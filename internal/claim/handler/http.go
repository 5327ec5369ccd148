// Package handler exposes claim creation and listing over HTTP/JSON.
package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"startup-benefits/backend/internal/audit"
	"startup-benefits/backend/internal/claim/domain"
	"startup-benefits/backend/internal/claim/service"
	"startup-benefits/backend/internal/server/middleware"
	"startup-benefits/backend/internal/server/respond"
)

type claimResponse struct {
	Claim domain.PublicClaim `json:"claim"`
}

type listResponse struct {
	Claims []*domain.WithDeal `json:"claims"`
}

// Handler serves claim routes: POST /api/deals/{dealID}/claim and
// GET /api/me/claims. Both require the bearer-auth middleware.
type Handler struct {
	claims      *service.ClaimService
	auditLogger audit.AuditLogger
}

// NewHandler returns a claim HTTP handler. auditLogger may be nil.
func NewHandler(claims *service.ClaimService, auditLogger audit.AuditLogger) *Handler {
	return &Handler{claims: claims, auditLogger: auditLogger}
}

// Create handles POST /api/deals/{dealID}/claim.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required")
		return
	}
	claim, err := h.claims.Create(r.Context(), user, chi.URLParam(r, "dealID"))
	if err != nil {
		h.writeClaimError(w, err)
		return
	}
	if h.auditLogger != nil {
		h.auditLogger.LogEvent(r.Context(), user.ID, "claim", "deal", claim.DealID)
	}
	respond.JSON(w, http.StatusCreated, claimResponse{Claim: claim.Public()})
}

// ListMine handles GET /api/me/claims.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required")
		return
	}
	claims, err := h.claims.ListForUser(r.Context(), user.ID)
	if err != nil {
		respond.Internal(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, listResponse{Claims: claims})
}

func (h *Handler) writeClaimError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDealNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "Deal not found")
	case errors.Is(err, service.ErrVerificationRequired):
		respond.Error(w, http.StatusForbidden, respond.CodeForbidden, "Verification required to claim this deal")
	case errors.Is(err, service.ErrAlreadyClaimed):
		respond.Error(w, http.StatusConflict, respond.CodeConflict, "You have already claimed this deal")
	default:
		respond.Internal(w, err)
	}
}
