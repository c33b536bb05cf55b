package live

import (
	"context"
	"sync"
)

// Query is a live handle over a read expression. Its current value is
// re-evaluated whenever a write touches any collection it depends on,
// and observers are notified with the fresh result. Multiple handles
// may overlap the same data; each recomputes independently.
type Query[T any] struct {
	reg  *Registry
	id   int64
	read func(ctx context.Context) (T, error)

	mu        sync.Mutex
	current   T
	err       error
	valid     bool
	closed    bool
	observers map[int64]func(T)
	nextObs   int64
}

// NewQuery registers a live query over the given collections. The read
// function must be a pure read: it is re-run in full on every dependent
// write.
func NewQuery[T any](reg *Registry, deps []Collection, read func(ctx context.Context) (T, error)) *Query[T] {
	q := &Query[T]{
		reg:       reg,
		read:      read,
		observers: make(map[int64]func(T)),
	}
	q.id = reg.register(deps, q.recompute)
	return q
}

// Get returns the current value, evaluating the read on first use
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	q.mu.Lock()
	if q.valid || q.closed {
		v, err := q.current, q.err
		q.mu.Unlock()
		return v, err
	}
	q.mu.Unlock()

	q.recompute(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	return q.current, q.err
}

// OnChange registers an observer invoked with every fresh result. The
// returned cancel func removes just this observer; Close removes all.
func (q *Query[T]) OnChange(fn func(T)) (cancel func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextObs++
	id := q.nextObs
	q.observers[id] = fn
	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.observers, id)
	}
}

// Close unsubscribes the query from the registry. No further
// recomputation happens and no observer references are retained.
func (q *Query[T]) Close() {
	q.reg.unregister(q.id)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.observers = make(map[int64]func(T))
}

func (q *Query[T]) recompute(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.mu.Unlock()

	value, err := q.read(ctx)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.current = value
	q.err = err
	q.valid = true
	observers := make([]func(T), 0, len(q.observers))
	for _, fn := range q.observers {
		observers = append(observers, fn)
	}
	q.mu.Unlock()

	if err != nil {
		return
	}
	for _, fn := range observers {
		fn(value)
	}
}
