// Package middleware provides the bearer-auth gate and request context helpers.
package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"startup-benefits/backend/internal/server/respond"
	userdomain "startup-benefits/backend/internal/user/domain"
)

const bearerPrefix = "bearer "

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userdomain.User, error)
}

// RequireAuth validates the Authorization Bearer token and stores the resolved
// user in the request context. Requests without a token get 401 "Authentication
// required"; requests with a bad token get 401 "Invalid or expired token".
func RequireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required")
				return
			}
			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// ClientIP stores the client IP in the request context for the audit logger.
// Runs after chi's RealIP middleware, which rewrites RemoteAddr from
// forwarding headers.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		next.ServeHTTP(w, r.WithContext(WithClientIP(r.Context(), ip)))
	})
}

// extractBearer returns the Bearer token from the Authorization header, or ""
// if missing or malformed.
func extractBearer(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
