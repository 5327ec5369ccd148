// Package service implements registration, login, and bearer-token
// authentication for the benefits API.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"startup-benefits/backend/internal/db"
	"startup-benefits/backend/internal/security"
	userdomain "startup-benefits/backend/internal/user/domain"
)

// Sentinel errors for the auth service; handlers map them to HTTP codes.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the response never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// minPasswordLength is the minimum accepted password length at registration.
const minPasswordLength = 6

// ValidationError reports malformed or missing registration/login input.
// The message is safe to return to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
}

// Session is the outcome of a successful Register or Login: a signed bearer
// token and the authenticated user.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *userdomain.User
}

// AuthService implements register, login, and token authentication.
type AuthService struct {
	users  UserRepo
	hasher *security.Hasher
	tokens *security.TokenProvider
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(users UserRepo, hasher *security.Hasher, tokens *security.TokenProvider) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a user with the given email, password, and name, and
// returns a fresh session. The email is normalized (trimmed, lowercased)
// before the uniqueness check, so addresses differing only in case or
// whitespace conflict. The password is stored only as a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*Session, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, &ValidationError{Message: "Email, password, and name are required"}
	}
	if len(password) < minPasswordLength {
		return nil, &ValidationError{Message: "Password must be at least 6 characters"}
	}
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}
	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashed,
		Name:         name,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two racing registrations can both pass the duplicate check; the
		// unique index on email is the source of truth.
		if db.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}
	return s.newSession(user)
}

// Login authenticates with email and password and returns a fresh session.
// Unknown email and wrong password produce the identical ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, &ValidationError{Message: "Email and password are required"}
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.newSession(user)
}

// Authenticate resolves a bearer token to its user. Fails with ErrInvalidToken
// when the token is malformed, expired, badly signed, or names a user that no
// longer exists. It is a side-effect-free gate for every protected operation.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*userdomain.User, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *AuthService) newSession(user *userdomain.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// NormalizeEmail trims and lowercases an email address. Applied consistently
// at every entry point that touches an email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
