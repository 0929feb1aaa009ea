package search

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrSuperseded is returned to a waiter replaced by a newer call.
	ErrSuperseded = errors.New("superseded by a newer query")
	// ErrStopped is returned once the debouncer has been stopped.
	ErrStopped = errors.New("debouncer stopped")
)

type waiter struct {
	done   chan struct{}
	reason error
}

// Debouncer lets only the last of a burst of calls through, once the window
// has passed without a newer call.
type Debouncer struct {
	window time.Duration

	mu      sync.Mutex
	current *waiter
	stopped bool
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Wait blocks for the debounce window. It returns nil if no other Wait call
// arrived meanwhile, ErrSuperseded if one did, ErrStopped after Stop, or the
// context error.
func (d *Debouncer) Wait(ctx context.Context) error {
	w := &waiter{done: make(chan struct{})}

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return ErrStopped
	}
	if d.current != nil {
		d.release(d.current, ErrSuperseded)
	}
	d.current = w
	d.mu.Unlock()

	timer := time.NewTimer(d.window)
	defer timer.Stop()

	select {
	case <-timer.C:
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.current != w {
			return w.reason
		}
		d.current = nil
		return nil
	case <-w.done:
		return w.reason
	case <-ctx.Done():
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.current == w {
			d.current = nil
		}
		return ctx.Err()
	}
}

// Stop cancels the pending waiter and rejects further calls.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.current != nil {
		d.release(d.current, ErrStopped)
		d.current = nil
	}
}

// release must be called with d.mu held.
func (d *Debouncer) release(w *waiter, reason error) {
	w.reason = reason
	close(w.done)
}
