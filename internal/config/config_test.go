package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":4000" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":4000")
	}
	if cfg.JWTIssuer != "benefits-auth" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "benefits-auth")
	}
	if cfg.JWTAudience != "benefits-api" {
		t.Errorf("JWTAudience = %q, want %q", cfg.JWTAudience, "benefits-api")
	}
	if cfg.JWTTTL != "168h" {
		t.Errorf("JWTTTL = %q, want %q", cfg.JWTTTL, "168h")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.OTLPEndpoint != "" {
		t.Errorf("OTLPEndpoint = %q, want empty", cfg.OTLPEndpoint)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_ISSUER", "custom-issuer")
	os.Setenv("BCRYPT_COST", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	os.Clearenv()
	os.Setenv("BCRYPT_COST", "99")

	if _, err := Load(); err == nil {
		t.Fatal("Load with BCRYPT_COST=99 should return error")
	}
}

func TestTokenTTL(t *testing.T) {
	cases := []struct {
		name string
		ttl  string
		want time.Duration
	}{
		{"default", "168h", 168 * time.Hour},
		{"custom", "24h", 24 * time.Hour},
		{"invalid falls back", "not-a-duration", 168 * time.Hour},
		{"empty falls back", "", 168 * time.Hour},
		{"negative falls back", "-5m", 168 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{JWTTTL: tc.ttl}
			if got := cfg.TokenTTL(); got != tc.want {
				t.Errorf("TokenTTL() = %v, want %v", got, tc.want)
			}
		})
	}
}
