package product

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"

	"launchboard/internal/cache"
	"launchboard/internal/domain/identity"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrSlugTaken     = errors.New("slug already taken")
	ErrInvalidStatus = errors.New("invalid product status")
	ErrValidation    = errors.New("validation failed")
)

// Listing view names used as cache keys.
const (
	ViewFeatured   = "featured"
	ViewAllByVotes = "all-by-votes"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Service struct {
	repo     Repository
	listings *cache.Cache[Product]
	now      func() time.Time
}

func NewService(repo Repository, listings *cache.Cache[Product]) *Service {
	return &Service{repo: repo, listings: listings, now: time.Now}
}

// Submit creates a product in pending status on behalf of the caller.
func (s *Service) Submit(ctx context.Context, p *Product, id identity.Identity) error {
	if err := id.Check(); err != nil {
		return err
	}
	if err := validate(p); err != nil {
		return err
	}

	p.Status = StatusPending
	p.VoteCount = 0
	p.UserID = id.UserID
	p.OrganizationID = id.OrgID

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.listings.InvalidateAll()
	return nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Featured lists approved products, served through the listing cache.
func (s *Service) Featured(ctx context.Context) ([]Product, error) {
	return s.listings.Get(ctx, ViewFeatured, s.repo.ListApproved)
}

// AllByVotes lists every product ordered by descending vote count with
// a stable id tie-break, served through the listing cache.
func (s *Service) AllByVotes(ctx context.Context) ([]Product, error) {
	return s.listings.Get(ctx, ViewAllByVotes, s.repo.ListByVotes)
}

// RecentlyLaunched derives the recent listing from the vote-ordered
// one; filtering happens in memory and keeps the vote ordering.
func (s *Service) RecentlyLaunched(ctx context.Context) ([]Product, error) {
	all, err := s.AllByVotes(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRecent(all, s.now()), nil
}

// UpdateStatus moves a product through its moderation lifecycle and
// invalidates the listings a status change can affect.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if status != StatusPending && status != StatusApproved && status != StatusRejected {
		return ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.listings.InvalidateAll()
	return nil
}

func validate(p *Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case p.Slug == "":
		return fmt.Errorf("%w: slug is required", ErrValidation)
	case !slugPattern.MatchString(p.Slug):
		return fmt.Errorf("%w: slug must be lowercase letters, digits and hyphens", ErrValidation)
	case p.Tagline == "":
		return fmt.Errorf("%w: tagline is required", ErrValidation)
	case p.Description == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	}

	u, err := url.Parse(p.WebsiteURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: website_url must be a valid http(s) URL", ErrValidation)
	}
	return nil
}
