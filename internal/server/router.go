// Package server assembles the chi router for the benefits API.
package server

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	authhandler "startup-benefits/backend/internal/auth/handler"
	claimhandler "startup-benefits/backend/internal/claim/handler"
	dealhandler "startup-benefits/backend/internal/deal/handler"
	"startup-benefits/backend/internal/server/middleware"
	"startup-benefits/backend/internal/server/respond"
)

// HealthChecker verifies a dependency is usable (e.g. the policy engine).
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps holds everything the router needs. DB and Policy back the health
// endpoint; either may be nil and is then skipped by the check.
type Deps struct {
	Auth   *authhandler.Handler
	Deals  *dealhandler.Handler
	Claims *claimhandler.Handler
	// RequireAuth is the bearer-auth middleware guarding protected routes.
	RequireAuth func(http.Handler) http.Handler
	DB          *sql.DB
	Policy      HealthChecker
}

// New builds the router with the full API surface. Unmatched routes (including
// wrong methods) return the 404 error body per the wire contract.
func New(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.ClientIP)

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "Not found")
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if d.DB != nil {
			if err := d.DB.PingContext(req.Context()); err != nil {
				respond.Error(w, http.StatusServiceUnavailable, respond.CodeInternalError, "database unavailable")
				return
			}
		}
		if d.Policy != nil {
			if err := d.Policy.HealthCheck(req.Context()); err != nil {
				respond.Error(w, http.StatusServiceUnavailable, respond.CodeInternalError, "policy engine unavailable")
				return
			}
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.Auth.Register)
			r.Post("/login", d.Auth.Login)
			r.With(d.RequireAuth).Get("/me", d.Auth.Me)
		})
		r.Route("/deals", func(r chi.Router) {
			r.Get("/", d.Deals.List)
			r.Get("/{slugOrID}", d.Deals.Get)
			r.With(d.RequireAuth).Post("/{dealID}/claim", d.Claims.Create)
		})
		r.With(d.RequireAuth).Get("/me/claims", d.Claims.ListMine)
	})

	return r
}
