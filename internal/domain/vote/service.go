package vote

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"launchboard/internal/domain/identity"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidDirection = errors.New("invalid vote direction")
)

type Service struct {
	repo     Repository
	listings Invalidator
}

func NewService(repo Repository, listings Invalidator) *Service {
	return &Service{repo: repo, listings: listings}
}

// Vote applies an up or down gesture for the given identity. Upvotes
// are idempotent per user, downvotes retract an existing vote. The
// returned count is the durable aggregate after the call.
func (s *Service) Vote(ctx context.Context, productID uuid.UUID, dir Direction, id identity.Identity) (Result, error) {
	if err := id.Check(); err != nil {
		return Result{}, err
	}
	if dir != Up && dir != Down {
		return Result{}, ErrInvalidDirection
	}

	var (
		count   int64
		changed bool
		err     error
	)
	if dir == Up {
		count, changed, err = s.repo.CastVote(ctx, productID, id.UserID)
	} else {
		count, changed, err = s.repo.RetractVote(ctx, productID, id.UserID)
	}
	if err != nil {
		return Result{}, err
	}

	if changed && s.listings != nil {
		s.listings.InvalidateAll()
	}

	return Result{
		Success:  true,
		Message:  message(dir, changed),
		Count:    count,
		HasVoted: dir == Up,
	}, nil
}

// HasVoted reports whether the identity already has a recorded vote.
func (s *Service) HasVoted(ctx context.Context, productID uuid.UUID, userID int64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.repo.HasVoted(ctx, productID, userID)
}

func message(dir Direction, changed bool) string {
	switch {
	case dir == Up && changed:
		return "vote recorded"
	case dir == Up:
		return "vote already counted"
	case changed:
		return "vote removed"
	default:
		return "no vote to remove"
	}
}
