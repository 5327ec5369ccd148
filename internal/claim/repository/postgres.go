package repository

import (
	"context"
	"database/sql"
	"errors"

	"startup-benefits/backend/internal/claim/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a claim repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByUserAndDeal returns the claim for the (user, deal) pair, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByUserAndDeal(ctx context.Context, userID, dealID string) (*domain.Claim, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, deal_id, status, created_at, updated_at
		 FROM claims WHERE user_id = $1 AND deal_id = $2`,
		userID, dealID,
	)
	var c domain.Claim
	err := row.Scan(&c.ID, &c.UserID, &c.DealID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create persists the claim to the database. The claim must have ID set.
// The unique index on (user_id, deal_id) rejects duplicates; callers translate
// that unique-violation error into their conflict error.
func (r *PostgresRepository) Create(ctx context.Context, c *domain.Claim) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO claims (id, user_id, deal_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.UserID, c.DealID, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

// ListByUserWithDeals returns the user's claims joined with deal summaries,
// newest claim first.
func (r *PostgresRepository) ListByUserWithDeals(ctx context.Context, userID string) ([]*domain.WithDeal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.status, c.created_at,
		        d.id, d.title, d.slug, d.description, d.category, d.access_level,
		        d.partner_name, COALESCE(d.partner_logo_url, '')
		 FROM claims c
		 JOIN deals d ON d.id = c.deal_id
		 WHERE c.user_id = $1
		 ORDER BY c.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.WithDeal, 0)
	for rows.Next() {
		var c domain.WithDeal
		err := rows.Scan(&c.ID, &c.Status, &c.CreatedAt,
			&c.Deal.ID, &c.Deal.Title, &c.Deal.Slug, &c.Deal.Description, &c.Deal.Category,
			&c.Deal.AccessLevel, &c.Deal.PartnerName, &c.Deal.PartnerLogoURL)
		if err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
