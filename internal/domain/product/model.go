package product

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Product struct {
	ID             uuid.UUID `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Tagline        string    `json:"tagline"`
	Description    string    `json:"description"`
	WebsiteURL     string    `json:"website_url"`
	Tags           []string  `json:"tags"`
	Status         string    `json:"status"`
	VoteCount      int64     `json:"vote_count"`
	UserID         int64     `json:"user_id"`
	OrganizationID int64     `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	ListApproved(ctx context.Context) ([]Product, error)
	ListByVotes(ctx context.Context) ([]Product, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
