package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"startup-benefits/backend/internal/deal/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a deal repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const dealColumns = `id, title, slug, description, category, access_level,
	partner_name, COALESCE(partner_url, ''), COALESCE(partner_logo_url, ''),
	eligibility, is_active, created_at, updated_at`

// ListActive returns active deals matching the filter, newest first.
// The filter is assumed normalized (see domain.Filter.Normalize).
func (r *PostgresRepository) ListActive(ctx context.Context, filter domain.Filter) ([]*domain.Deal, error) {
	query := "SELECT " + dealColumns + " FROM deals WHERE is_active"
	args := make([]interface{}, 0, 3)

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += " AND category = $" + strconv.Itoa(len(args))
	}
	if filter.AccessLevel != "" {
		args = append(args, filter.AccessLevel)
		query += " AND access_level = $" + strconv.Itoa(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := strconv.Itoa(len(args))
		query += ` AND (title ILIKE $` + n + ` ESCAPE '\' OR description ILIKE $` + n + ` ESCAPE '\')`
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deals := make([]*domain.Deal, 0)
	for rows.Next() {
		d, err := scanDealRows(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

// GetActiveByID returns the active deal for id, or nil if absent or inactive.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetActiveByID(ctx context.Context, id string) (*domain.Deal, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+dealColumns+" FROM deals WHERE id = $1 AND is_active", id)
	return scanDeal(row)
}

// GetActiveBySlug returns the active deal for slug, or nil if absent or inactive.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetActiveBySlug(ctx context.Context, slug string) (*domain.Deal, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+dealColumns+" FROM deals WHERE slug = $1 AND is_active", slug)
	return scanDeal(row)
}

// escapeLike escapes LIKE/ILIKE metacharacters so the search term always
// matches literally instead of being interpreted as a pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func scanDeal(row *sql.Row) (*domain.Deal, error) {
	var d domain.Deal
	err := row.Scan(&d.ID, &d.Title, &d.Slug, &d.Description, &d.Category, &d.AccessLevel,
		&d.PartnerName, &d.PartnerURL, &d.PartnerLogoURL, &d.Eligibility, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func scanDealRows(rows *sql.Rows) (*domain.Deal, error) {
	var d domain.Deal
	err := rows.Scan(&d.ID, &d.Title, &d.Slug, &d.Description, &d.Category, &d.AccessLevel,
		&d.PartnerName, &d.PartnerURL, &d.PartnerLogoURL, &d.Eligibility, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
