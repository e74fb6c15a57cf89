package vote

import (
	"context"

	"github.com/google/uuid"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection validates a wire-level direction before any store
// access happens.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	default:
		return "", ErrInvalidDirection
	}
}

// Delta is the signed unit change a direction applies to the
// aggregate count.
func (d Direction) Delta() int64 {
	if d == Down {
		return -1
	}
	return 1
}

// Result is what the vote entry point reports back to its caller.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Count    int64  `json:"count"`
	HasVoted bool   `json:"has_voted"`
}

type Repository interface {
	// ApplyDelta atomically applies a signed unit delta to the
	// aggregate counter, clamped at zero inside the same statement.
	ApplyDelta(ctx context.Context, productID uuid.UUID, delta int64) (int64, error)
	// CastVote records the caller's vote once and bumps the aggregate
	// in the same transaction. changed is false when the vote already
	// existed.
	CastVote(ctx context.Context, productID uuid.UUID, userID int64) (count int64, changed bool, err error)
	// RetractVote removes the caller's vote and decrements the
	// aggregate. changed is false when there was nothing to remove.
	RetractVote(ctx context.Context, productID uuid.UUID, userID int64) (count int64, changed bool, err error)
	HasVoted(ctx context.Context, productID uuid.UUID, userID int64) (bool, error)
}

// Invalidator is the fire-and-forget cache invalidation signal called
// after a successful mutation.
type Invalidator interface {
	InvalidateAll()
}
