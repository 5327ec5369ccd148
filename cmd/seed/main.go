// seed resets the deal catalog to the demo set and creates the demo users if
// no users exist yet; use go run ./cmd/seed.
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"

	"startup-benefits/backend/internal/config"
	"startup-benefits/backend/internal/db"
	dealdomain "startup-benefits/backend/internal/deal/domain"
	"startup-benefits/backend/internal/security"
	userdomain "startup-benefits/backend/internal/user/domain"
	userrepo "startup-benefits/backend/internal/user/repository"
)

var deals = []dealdomain.Deal{
	{
		Title:       "Cloud Hosting – 12 Months Free",
		Slug:        "cloud-hosting-free",
		Description: "Get 12 months of premium cloud hosting. Perfect for early-stage apps and side projects.",
		Category:    "Infrastructure",
		AccessLevel: dealdomain.AccessLevelPublic,
		PartnerName: "CloudStart",
		PartnerURL:  "https://example.com",
		Eligibility: "Early-stage startup or indie project. One claim per company.",
		IsActive:    true,
	},
	{
		Title:       "Analytics Pro – 50% Off Year 1",
		Slug:        "analytics-pro-discount",
		Description: "Half off your first year of advanced analytics and dashboards.",
		Category:    "Analytics",
		AccessLevel: dealdomain.AccessLevelPublic,
		PartnerName: "DataFlow",
		Eligibility: "New accounts only. Valid for teams under 10.",
		IsActive:    true,
	},
	{
		Title:       "Marketing Suite – Verified Founders Only",
		Slug:        "marketing-suite-verified",
		Description: "Full marketing suite access for verified founders. Email, ads, and landing pages.",
		Category:    "Marketing",
		AccessLevel: dealdomain.AccessLevelLocked,
		PartnerName: "GrowthLabs",
		Eligibility: "Verified founder status required. Must complete verification.",
		IsActive:    true,
	},
	{
		Title:       "Productivity Stack – Free Tier Upgrade",
		Slug:        "productivity-stack-upgrade",
		Description: "Upgrade to team tier free for 6 months. Tasks, docs, and calendar.",
		Category:    "Productivity",
		AccessLevel: dealdomain.AccessLevelPublic,
		PartnerName: "TaskFlow",
		Eligibility: "Startups with fewer than 5 team members.",
		IsActive:    true,
	},
	{
		Title:       "API Credits – Verified Teams",
		Slug:        "api-credits-verified",
		Description: "Monthly API credits for AI and data services. Verification required.",
		Category:    "Infrastructure",
		AccessLevel: dealdomain.AccessLevelLocked,
		PartnerName: "APICredits",
		Eligibility: "Verified startup. One claim per company.",
		IsActive:    true,
	},
}

var demoUsers = []struct {
	email, password, name string
	verified              bool
}{
	{"demo@example.com", "demo123", "Demo User", false},
	{"verified@example.com", "verified123", "Verified Founder", true},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	if err := seedDeals(ctx, conn); err != nil {
		log.Fatalf("seed deals: %v", err)
	}
	if err := seedUsers(ctx, conn, cfg.BcryptCost); err != nil {
		log.Fatalf("seed users: %v", err)
	}
	log.Printf("Seed complete. Deals: %d", len(deals))
}

// seedDeals replaces the catalog with the demo set in one transaction, so a
// failed run never leaves the catalog half-seeded. Claims referencing old
// deals go with them via ON DELETE CASCADE.
func seedDeals(ctx context.Context, conn *sql.DB) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM deals"); err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, d := range deals {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO deals (id, title, slug, description, category, access_level,
				partner_name, partner_url, partner_logo_url, eligibility, is_active,
				created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12, $12)`,
			uuid.New().String(), d.Title, d.Slug, d.Description, d.Category, d.AccessLevel,
			d.PartnerName, d.PartnerURL, d.PartnerLogoURL, d.Eligibility, d.IsActive, now)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// seedUsers creates the demo accounts only when the users table is empty,
// matching the catalog reset without ever clobbering real accounts.
func seedUsers(ctx context.Context, conn *sql.DB, bcryptCost int) error {
	var count int
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hasher := security.NewHasher(bcryptCost)
	users := userrepo.NewPostgresRepository(conn)
	now := time.Now().UTC()
	for _, u := range demoUsers {
		hash, err := hasher.Hash([]byte(u.password))
		if err != nil {
			return err
		}
		err = users.Create(ctx, &userdomain.User{
			ID:           uuid.New().String(),
			Email:        u.email,
			PasswordHash: hash,
			Name:         u.name,
			IsVerified:   u.verified,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
