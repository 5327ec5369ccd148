// Package handler exposes registration, login, and whoami over HTTP/JSON.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"startup-benefits/backend/internal/audit"
	"startup-benefits/backend/internal/auth/service"
	"startup-benefits/backend/internal/server/middleware"
	"startup-benefits/backend/internal/server/respond"
	userdomain "startup-benefits/backend/internal/user/domain"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  userdomain.PublicUser `json:"user"`
	Token string                `json:"token"`
}

type userResponse struct {
	User userdomain.PublicUser `json:"user"`
}

// Handler serves the /api/auth routes.
type Handler struct {
	auth        *service.AuthService
	auditLogger audit.AuditLogger
}

// NewHandler returns an auth HTTP handler. auditLogger may be nil.
func NewHandler(auth *service.AuthService, auditLogger audit.AuditLogger) *Handler {
	return &Handler{auth: auth, auditLogger: auditLogger}
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidationError, "Invalid request body")
		return
	}
	sess, err := h.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}
	h.logEvent(r, sess.User.ID, "register", "user", "")
	respond.JSON(w, http.StatusCreated, sessionResponse{User: sess.User.Public(), Token: sess.Token})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidationError, "Invalid request body")
		return
	}
	sess, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logEvent(r, "", "login_failure", "user", service.NormalizeEmail(req.Email))
		}
		h.writeAuthError(w, err)
		return
	}
	h.logEvent(r, sess.User.ID, "login", "user", "")
	respond.JSON(w, http.StatusOK, sessionResponse{User: sess.User.Public(), Token: sess.Token})
}

// Me handles GET /api/auth/me. Requires the bearer-auth middleware.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required")
		return
	}
	respond.JSON(w, http.StatusOK, userResponse{User: user.Public()})
}

// writeAuthError maps auth service errors to the wire contract. Unknown email
// and wrong password share one message so the response never reveals which
// failed.
func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		respond.Error(w, http.StatusBadRequest, respond.CodeValidationError, ve.Message)
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		respond.Error(w, http.StatusConflict, respond.CodeConflict, "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, "Invalid email or password")
	default:
		respond.Internal(w, err)
	}
}

func (h *Handler) logEvent(r *http.Request, userID, action, resource, metadata string) {
	if h.auditLogger == nil {
		return
	}
	h.auditLogger.LogEvent(r.Context(), userID, action, resource, metadata)
}
