// Package handler exposes the deal catalog over HTTP/JSON.
package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"startup-benefits/backend/internal/deal/domain"
	"startup-benefits/backend/internal/deal/service"
	"startup-benefits/backend/internal/server/respond"
)

type listResponse struct {
	Deals []*domain.Deal `json:"deals"`
	Total int            `json:"total"`
}

// Handler serves the /api/deals read routes.
type Handler struct {
	catalog *service.CatalogService
}

// NewHandler returns a catalog HTTP handler.
func NewHandler(catalog *service.CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// List handles GET /api/deals. Recognized query params: search, category,
// accessLevel. Unrecognized or malformed values are ignored, not rejected.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.Filter{
		Search:      q.Get("search"),
		Category:    q.Get("category"),
		AccessLevel: q.Get("accessLevel"),
	}
	deals, total, err := h.catalog.List(r.Context(), filter)
	if err != nil {
		respond.Internal(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, listResponse{Deals: deals, Total: total})
}

// Get handles GET /api/deals/{slugOrID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	deal, err := h.catalog.GetBySlugOrID(r.Context(), chi.URLParam(r, "slugOrID"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "Deal not found")
			return
		}
		respond.Internal(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, deal)
}
