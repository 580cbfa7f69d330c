package effects

import (
	"context"
	"errors"
	"sync"
)

// ErrAlreadySettled is returned when an outcome is settled a second time.
// Settling twice is a programming error in the handler; the second attempt
// is a no-op.
var ErrAlreadySettled = errors.New("effect outcome already settled")

// Outcome is the single-assignment result cell of a RequestEffect.
// It settles at most once and is readable any number of times afterwards.
type Outcome struct {
	mu      sync.Mutex
	settled bool
	value   any
	err     error
	done    chan struct{}
}

func newOutcome() *Outcome {
	return &Outcome{done: make(chan struct{})}
}

// Resolve settles the outcome with a value. A nil value is valid and stands
// for the empty result.
func (o *Outcome) Resolve(value any) error { return o.settle(value, nil) }

// Reject settles the outcome with an error.
func (o *Outcome) Reject(err error) error { return o.settle(nil, err) }

func (o *Outcome) settle(value any, err error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.settled {
		return ErrAlreadySettled
	}
	o.settled = true
	o.value = value
	o.err = err
	close(o.done)
	return nil
}

// Done is closed once the outcome settles.
func (o *Outcome) Done() <-chan struct{} { return o.done }

// Settled reports whether the outcome has been settled.
func (o *Outcome) Settled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.settled
}

// Result returns the settled value and error. Both are zero while the
// outcome is still pending; use Done or Wait to synchronize first.
func (o *Outcome) Result() (any, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value, o.err
}

// Wait blocks until the outcome settles or ctx is done.
func (o *Outcome) Wait(ctx context.Context) (any, error) {
	select {
	case <-o.done:
		return o.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
