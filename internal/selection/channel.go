// Package selection implements the cancelable single-slot rendezvous used for
// every interactive decision in a battle, plus the routines that turn raw
// cursor events into unit and cell picks.
package selection

import (
	"context"
	"fmt"
	"sync"
)

// State is the lifecycle state of a Channel.
type State uint8

const (
	// Pending - no outcome yet
	Pending State = iota
	// Resolved - a value was chosen
	Resolved
	// Canceled - the chooser backed out
	Canceled
)

// String returns human-readable state name
func (s State) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Resolved:
		return "RESOLVED"
	case Canceled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// Result is an immutable snapshot of a channel's outcome. The value is only
// reachable through Value, which reports whether the state is Resolved.
type Result[T any] struct {
	state State
	value T
}

// State returns the snapshot state.
func (r Result[T]) State() State { return r.state }

// Finished reports whether the snapshot is Resolved or Canceled.
func (r Result[T]) Finished() bool { return r.state != Pending }

// Canceled reports whether the snapshot is Canceled.
func (r Result[T]) Canceled() bool { return r.state == Canceled }

// Value returns the resolved value and true, or the zero value and false.
func (r Result[T]) Value() (T, bool) {
	if r.state != Resolved {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Channel is a single-slot rendezvous: Pending until resolved with a value or
// canceled, then closed to writes until Reset.
//
// Resolving or canceling a finished channel is a protocol violation and
// panics.
type Channel[T any] struct {
	mu   sync.Mutex
	res  Result[T]
	done chan struct{}
}

// NewChannel returns a Pending channel.
func NewChannel[T any]() *Channel[T] {
	return &Channel[T]{done: make(chan struct{})}
}

// Resolve moves a Pending channel to Resolved(value).
func (c *Channel[T]) Resolve(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mustPending("resolve")
	c.res = Result[T]{state: Resolved, value: value}
	close(c.done)
}

// Cancel moves a Pending channel to Canceled.
func (c *Channel[T]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mustPending("cancel")
	c.res = Result[T]{state: Canceled}
	close(c.done)
}

// Reset returns the channel to Pending, discarding any value. Resetting a
// Pending channel is a no-op.
func (c *Channel[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.res.state == Pending {
		return
	}
	c.res = Result[T]{}
	c.done = make(chan struct{})
}

// Finished reports whether the channel is Resolved or Canceled.
func (c *Channel[T]) Finished() bool {
	return c.Result().Finished()
}

// Result returns a snapshot of the current state.
func (c *Channel[T]) Result() Result[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.res
}

// Wait blocks until the channel is finished or ctx is done.
func (c *Channel[T]) Wait(ctx context.Context) (Result[T], error) {
	c.mu.Lock()
	done := c.done
	res := c.res
	c.mu.Unlock()

	if res.Finished() {
		return res, nil
	}

	select {
	case <-done:
		return c.Result(), nil
	case <-ctx.Done():
		return Result[T]{}, ctx.Err()
	}
}

func (c *Channel[T]) mustPending(op string) {
	if c.res.state != Pending {
		panic(fmt.Sprintf("selection: %s on %s channel", op, c.res.state))
	}
}
