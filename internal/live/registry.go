package live

import (
	"context"
	"sync"

	"github.com/asejik/invoice-aso-oke/internal/logger"
)

// Collection names a stored collection a live query can depend on.
type Collection string

const (
	CollectionProfile   Collection = "business_profile"
	CollectionCustomers Collection = "customers"
	CollectionInvoices  Collection = "invoices"
)

// Registry connects writers to live queries. A repository publishes the
// collection it touched after committing a write; the registry then
// re-runs every dependent query and notifies its observers before
// Publish returns. That synchronous contract is what keeps consumers
// from ever observing a half-written invoice: the write completes, all
// dependent reads recompute, and only then does control return to the
// caller.
type Registry struct {
	mu   sync.Mutex
	subs map[int64]*subscription
	next int64
	log  *logger.Logger
}

type subscription struct {
	deps      map[Collection]struct{}
	recompute func(ctx context.Context)
}

func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		subs: make(map[int64]*subscription),
		log:  log,
	}
}

// Publish synchronously re-evaluates every live query that depends on
// any of the given collections. Queries are re-run in full, not diffed;
// collection sizes are single-merchant scale so correctness wins over
// incremental cleverness.
func (r *Registry) Publish(ctx context.Context, collections ...Collection) {
	r.mu.Lock()
	var affected []*subscription
	for _, sub := range r.subs {
		for _, c := range collections {
			if _, ok := sub.deps[c]; ok {
				affected = append(affected, sub)
				break
			}
		}
	}
	r.mu.Unlock()

	// Recompute outside the registry lock so a query read can use the
	// store freely.
	for _, sub := range affected {
		sub.recompute(ctx)
	}
}

func (r *Registry) register(deps []Collection, recompute func(ctx context.Context)) int64 {
	depSet := make(map[Collection]struct{}, len(deps))
	for _, d := range deps {
		depSet[d] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	id := r.next
	r.subs[id] = &subscription{deps: depSet, recompute: recompute}
	return id
}

func (r *Registry) unregister(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, id)
}

// SubscriberCount reports the number of registered live queries
func (r *Registry) SubscriberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
