// Package optimistic implements the client-side vote state machine.
// A gesture immediately mutates the displayed count, then the server
// call settles it: confirmation replaces the baseline with the
// server-reported count, failure rolls the display back. One server
// call is in flight at a time; rapid gestures coalesce into a single
// next slot instead of racing each other.
package optimistic

import (
	"context"
	"sync"
	"time"

	"launchboard/internal/domain/vote"
)

// DispatchFunc performs the server-side vote call and returns the
// confirmed aggregate count. The context carries the call timeout.
type DispatchFunc func(ctx context.Context, dir vote.Direction) (int64, error)

// Settlement describes how one gesture finished.
type Settlement struct {
	Direction vote.Direction
	Confirmed bool
	Count     int64
	Err       error
}

// State is a point-in-time snapshot of the controller.
type State struct {
	Baseline int64
	Pending  int64
	HasVoted bool
	InFlight bool
}

// Displayed is the count the UI should render: baseline plus the
// pending delta, never below zero.
func (s State) Displayed() int64 {
	d := s.Baseline + s.Pending
	if d < 0 {
		return 0
	}
	return d
}

type Controller struct {
	mu   sync.Mutex
	cond *sync.Cond

	baseline int64
	pending  int64
	hasVoted bool
	inflight bool
	next     *vote.Direction

	dispatch DispatchFunc
	timeout  time.Duration
	onSettle func(Settlement)
}

type Option func(*Controller)

// WithTimeout bounds each server call; a call that neither succeeds
// nor fails in time is treated as a failure for display purposes,
// even though the server-side write may still land.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithSettleFunc registers a callback invoked after every settlement,
// confirmed or rolled back.
func WithSettleFunc(fn func(Settlement)) Option {
	return func(c *Controller) { c.onSettle = fn }
}

func NewController(baseline int64, hasVoted bool, dispatch DispatchFunc, opts ...Option) *Controller {
	c := &Controller{
		baseline: baseline,
		hasVoted: hasVoted,
		dispatch: dispatch,
		timeout:  5 * time.Second,
	}
	c.cond = sync.NewCond(&c.mu)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Vote registers a gesture and returns immediately. The pending delta
// is visible through Snapshot before the server call resolves. While
// a call is in flight the gesture is parked in the single next slot,
// replacing any gesture already waiting there.
func (c *Controller) Vote(dir vote.Direction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = dir.Delta()
	if c.inflight {
		d := dir
		c.next = &d
		return
	}

	c.inflight = true
	go c.run(dir)
}

func (c *Controller) run(dir vote.Direction) {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		count, err := c.dispatch(ctx, dir)
		cancel()

		c.mu.Lock()
		settlement := Settlement{Direction: dir, Err: err}
		if err == nil {
			settlement.Confirmed = true
			settlement.Count = count
			c.baseline = count
			c.hasVoted = dir == vote.Up
		}
		// Pending is cleared on every exit path, exactly once per
		// gesture; on failure the display reverts to the baseline.
		c.pending = 0

		if c.next != nil {
			dir = *c.next
			c.next = nil
			c.pending = dir.Delta()
			onSettle := c.onSettle
			c.mu.Unlock()
			if onSettle != nil {
				onSettle(settlement)
			}
			continue
		}

		c.inflight = false
		onSettle := c.onSettle
		c.cond.Broadcast()
		c.mu.Unlock()
		if onSettle != nil {
			onSettle(settlement)
		}
		return
	}
}

// Snapshot returns the current optimistic state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Baseline: c.baseline,
		Pending:  c.pending,
		HasVoted: c.hasVoted,
		InFlight: c.inflight,
	}
}

// Wait blocks until no call is in flight and no gesture is parked.
func (c *Controller) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.inflight || c.next != nil {
		c.cond.Wait()
	}
}
