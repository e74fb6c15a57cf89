package product

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"launchboard/internal/cache"
	"launchboard/internal/domain/identity"
)

type memoryProductRepo struct {
	mu        sync.Mutex
	products  map[uuid.UUID]*Product
	bySlug    map[string]uuid.UUID
	listCalls int
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{
		products: make(map[uuid.UUID]*Product),
		bySlug:   make(map[string]uuid.UUID),
	}
}

func (r *memoryProductRepo) Create(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySlug[p.Slug]; ok {
		return ErrSlugTaken
	}
	p.ID = uuid.New()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	copyProduct := *p
	r.products[p.ID] = &copyProduct
	r.bySlug[p.Slug] = p.ID
	return nil
}

func (r *memoryProductRepo) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.bySlug[slug]
	if !ok {
		return nil, ErrNotFound
	}
	copyProduct := *r.products[id]
	return &copyProduct, nil
}

func (r *memoryProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	copyProduct := *p
	return &copyProduct, nil
}

func (r *memoryProductRepo) ListApproved(ctx context.Context) ([]Product, error) {
	return r.list(ctx, true)
}

func (r *memoryProductRepo) ListByVotes(ctx context.Context) ([]Product, error) {
	return r.list(ctx, false)
}

func (r *memoryProductRepo) list(_ context.Context, approvedOnly bool) ([]Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	res := []Product{}
	for _, p := range r.products {
		if approvedOnly && p.Status != StatusApproved {
			continue
		}
		res = append(res, *p)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].VoteCount != res[j].VoteCount {
			return res[i].VoteCount > res[j].VoteCount
		}
		return res[i].ID.String() < res[j].ID.String()
	})
	return res, nil
}

func (r *memoryProductRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memoryProductRepo) setVotes(id uuid.UUID, count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[id].VoteCount = count
}

var submitter = identity.Identity{UserID: 1, OrgID: 1}

func validProduct(slug string) *Product {
	return &Product{
		Name:        "Launchpad",
		Slug:        slug,
		Tagline:     "Ship faster",
		Description: "A product for launching products.",
		WebsiteURL:  "https://launchpad.example.com",
		Tags:        []string{"saas", "tools"},
	}
}

func newTestService(repo Repository) *Service {
	return NewService(repo, cache.New[Product](time.Hour))
}

func TestSubmitValidation(t *testing.T) {
	repo := newMemoryProductRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*Product)
	}{
		{"missing name", func(p *Product) { p.Name = "" }},
		{"missing slug", func(p *Product) { p.Slug = "" }},
		{"bad slug", func(p *Product) { p.Slug = "Not A Slug!" }},
		{"missing tagline", func(p *Product) { p.Tagline = "" }},
		{"missing description", func(p *Product) { p.Description = "" }},
		{"bad url", func(p *Product) { p.WebsiteURL = "not-a-url" }},
	}
	for _, tc := range cases {
		p := validProduct("launchpad")
		tc.mutate(p)
		if err := svc.Submit(ctx, p, submitter); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
	if len(repo.products) != 0 {
		t.Fatalf("invalid submissions must not reach the store")
	}
}

func TestSubmitRequiresIdentity(t *testing.T) {
	svc := newTestService(newMemoryProductRepo())
	ctx := context.Background()

	if err := svc.Submit(ctx, validProduct("a"), identity.Identity{}); !errors.Is(err, identity.ErrNotSignedIn) {
		t.Fatalf("expected not signed in, got %v", err)
	}
	if err := svc.Submit(ctx, validProduct("a"), identity.Identity{UserID: 1}); !errors.Is(err, identity.ErrNoOrganization) {
		t.Fatalf("expected no organization, got %v", err)
	}
}

func TestSubmitCreatesPending(t *testing.T) {
	repo := newMemoryProductRepo()
	svc := newTestService(repo)

	p := validProduct("launchpad")
	if err := svc.Submit(context.Background(), p, submitter); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if p.Status != StatusPending {
		t.Fatalf("expected pending status, got %s", p.Status)
	}
	if p.UserID != submitter.UserID || p.OrganizationID != submitter.OrgID {
		t.Fatalf("submitter not recorded: %+v", p)
	}

	if err := svc.Submit(context.Background(), validProduct("launchpad"), submitter); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected slug taken, got %v", err)
	}
}

func TestListingsAreCached(t *testing.T) {
	repo := newMemoryProductRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.Submit(ctx, validProduct("one"), submitter); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.AllByVotes(ctx); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := svc.AllByVotes(ctx); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected one store query, got %d", repo.listCalls)
	}
}

func TestStatusChangeInvalidatesListings(t *testing.T) {
	repo := newMemoryProductRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p := validProduct("one")
	if err := svc.Submit(ctx, p, submitter); err != nil {
		t.Fatalf("submit: %v", err)
	}

	featured, err := svc.Featured(ctx)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(featured) != 0 {
		t.Fatalf("pending product must not be featured")
	}

	if err := svc.UpdateStatus(ctx, p.ID, "launched"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if err := svc.UpdateStatus(ctx, p.ID, StatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}

	featured, err = svc.Featured(ctx)
	if err != nil {
		t.Fatalf("featured after approve: %v", err)
	}
	if len(featured) != 1 || featured[0].Slug != "one" {
		t.Fatalf("approved product missing from featured: %+v", featured)
	}
}

func TestAllByVotesDeterministicOrder(t *testing.T) {
	repo := newMemoryProductRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	slugs := []string{"a", "b", "c", "d"}
	ids := make([]uuid.UUID, 0, len(slugs))
	for _, slug := range slugs {
		p := validProduct(slug)
		if err := svc.Submit(ctx, p, submitter); err != nil {
			t.Fatalf("submit %s: %v", slug, err)
		}
		ids = append(ids, p.ID)
	}
	// Two products tie on votes; the id tie-break keeps the order stable.
	repo.setVotes(ids[0], 10)
	repo.setVotes(ids[1], 5)
	repo.setVotes(ids[2], 5)
	repo.setVotes(ids[3], 1)

	first, err := svc.AllByVotes(ctx)
	if err != nil {
		t.Fatalf("first listing: %v", err)
	}
	second, err := svc.AllByVotes(ctx)
	if err != nil {
		t.Fatalf("second listing: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("listing size changed between reads")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("ordering not deterministic at %d", i)
		}
	}
	if first[0].VoteCount != 10 || first[3].VoteCount != 1 {
		t.Fatalf("not ordered by votes: %+v", first)
	}
}

func TestRecentlyLaunchedUsesVoteOrder(t *testing.T) {
	repo := newMemoryProductRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	fresh := validProduct("fresh")
	stale := validProduct("stale")
	if err := svc.Submit(ctx, fresh, submitter); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.Submit(ctx, stale, submitter); err != nil {
		t.Fatalf("submit: %v", err)
	}
	repo.setVotes(fresh.ID, 3)
	repo.mu.Lock()
	repo.products[stale.ID].CreatedAt = time.Now().Add(-30 * 24 * time.Hour)
	repo.mu.Unlock()

	recent, err := svc.RecentlyLaunched(ctx)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 || recent[0].Slug != "fresh" {
		t.Fatalf("expected only the fresh product, got %+v", recent)
	}
}
