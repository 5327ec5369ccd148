package security

import (
	"testing"
	"time"
)

func newTestTokenProvider(ttl time.Duration) *TokenProvider {
	return NewTokenProvider([]byte("test-secret"), "benefits-auth", "benefits-api", ttl)
}

func TestTokenProvider_IssueAndValidate(t *testing.T) {
	p := newTestTokenProvider(time.Hour)

	token, exp, err := p.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}
	if exp.Before(time.Now()) {
		t.Fatal("expires at in the past")
	}

	userID, err := p.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("Validate userID = %q, want %q", userID, "user-1")
	}
}

func TestTokenProvider_ValidateMalformed(t *testing.T) {
	p := newTestTokenProvider(time.Hour)
	if _, err := p.Validate("not-a-token"); err != ErrInvalidToken {
		t.Errorf("Validate malformed token: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenProvider_ValidateExpired(t *testing.T) {
	p := newTestTokenProvider(-time.Minute)
	token, _, err := p.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := p.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate expired token: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenProvider_ValidateWrongSecret(t *testing.T) {
	p := newTestTokenProvider(time.Hour)
	token, _, err := p.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	other := NewTokenProvider([]byte("other-secret"), "benefits-auth", "benefits-api", time.Hour)
	if _, err := other.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate with wrong secret: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenProvider_ValidateWrongIssuerOrAudience(t *testing.T) {
	p := newTestTokenProvider(time.Hour)
	token, _, err := p.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	wrongIss := NewTokenProvider([]byte("test-secret"), "someone-else", "benefits-api", time.Hour)
	if _, err := wrongIss.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate with wrong issuer: want ErrInvalidToken, got %v", err)
	}

	wrongAud := NewTokenProvider([]byte("test-secret"), "benefits-auth", "other-api", time.Hour)
	if _, err := wrongAud.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate with wrong audience: want ErrInvalidToken, got %v", err)
	}
}
