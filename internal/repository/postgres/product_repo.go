package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"launchboard/internal/domain/product"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, slug, name, tagline, description, website_url, tags, status, vote_count, user_id, organization_id, created_at, updated_at`

func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	query := `
        INSERT INTO products (slug, name, tagline, description, website_url, tags, status, user_id, organization_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, vote_count, created_at, updated_at
    `
	err := r.db.QueryRowContext(ctx, query,
		p.Slug,
		p.Name,
		p.Tagline,
		p.Description,
		p.WebsiteURL,
		joinTags(p.Tags),
		p.Status,
		p.UserID,
		p.OrganizationID,
	).Scan(&p.ID, &p.VoteCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return product.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*product.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	return scanProduct(row)
}

func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (r *ProductRepo) ListApproved(ctx context.Context) ([]product.Product, error) {
	return r.list(ctx, `
        SELECT `+productColumns+`
        FROM products
        WHERE status = 'approved'
        ORDER BY vote_count DESC, id ASC
    `)
}

func (r *ProductRepo) ListByVotes(ctx context.Context) ([]product.Product, error) {
	return r.list(ctx, `
        SELECT `+productColumns+`
        FROM products
        ORDER BY vote_count DESC, id ASC
    `)
}

func (r *ProductRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) list(ctx context.Context, query string) ([]product.Product, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []product.Product
	for rows.Next() {
		var p product.Product
		var tags string
		if err := rows.Scan(
			&p.ID, &p.Slug, &p.Name, &p.Tagline, &p.Description, &p.WebsiteURL,
			&tags, &p.Status, &p.VoteCount, &p.UserID, &p.OrganizationID,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.Tags = splitTags(tags)
		res = append(res, p)
	}
	return res, rows.Err()
}

func scanProduct(row *sql.Row) (*product.Product, error) {
	p := &product.Product{}
	var tags string
	err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.Tagline, &p.Description, &p.WebsiteURL,
		&tags, &p.Status, &p.VoteCount, &p.UserID, &p.OrganizationID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, err
	}
	p.Tags = splitTags(tags)
	return p, nil
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
