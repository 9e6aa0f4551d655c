package catalog

import (
	"context"
	"sync"
)

// flight is one in-progress call shared by its waiters.
type flight[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Inflight collapses concurrent calls for the same identifier into a
// single execution. The first caller for a key runs the function, any
// caller arriving before it finishes waits for that result instead of
// issuing its own.
type Inflight[T any] struct {
	mu      sync.Mutex
	flights map[string]*flight[T]
}

// NewInflight creates an empty registry.
func NewInflight[T any]() *Inflight[T] {
	return &Inflight[T]{
		flights: make(map[string]*flight[T]),
	}
}

// Do runs fn for key unless a flight for key is already in progress,
// in which case it waits for that flight's result. A waiter whose
// context expires returns the context error without cancelling the
// leader's call.
func (r *Inflight[T]) Do(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	r.mu.Lock()
	if f, ok := r.flights[key]; ok {
		r.mu.Unlock()
		select {
		case <-f.done:
			return f.val, f.err
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}

	f := &flight[T]{done: make(chan struct{})}
	r.flights[key] = f
	r.mu.Unlock()

	f.val, f.err = fn(ctx)

	r.mu.Lock()
	delete(r.flights, key)
	r.mu.Unlock()
	close(f.done)

	return f.val, f.err
}

// Active reports whether a flight for key is currently in progress.
func (r *Inflight[T]) Active(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.flights[key]
	return ok
}
