// Package fetchq serializes list refetches for a view: when filter or
// dependency changes trigger rapid successive fetches, only the result
// of the last-started fetch reaches visible state. Earlier in-flight
// requests are cancelled; results arriving after supersession or
// teardown are discarded.
package fetchq

import (
	"context"
	"sync"
)

// Latest coordinates refetches of one view's backing collection.
type Latest[T any] struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool
}

// NewLatest creates a coordinator.
func NewLatest[T any]() *Latest[T] { return &Latest[T]{} }

// Start launches fetch in its own goroutine, cancelling any outstanding
// fetch first. publish runs with the result (or error) only if the fetch
// is still the most recent when it completes; stale completions are
// dropped silently. publish is serialized under the coordinator's lock,
// so appliers need no locking of their own.
func (l *Latest[T]) Start(ctx context.Context, fetch func(context.Context) (T, error), publish func(T, error)) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.seq++
	mine := l.seq
	if l.cancel != nil {
		l.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	go func() {
		defer cancel()
		v, err := fetch(fctx)

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed || l.seq != mine {
			return
		}
		publish(v, err)
	}()
}

// Close cancels any outstanding fetch and drops all future results.
// Used on navigation away from the view.
func (l *Latest[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
