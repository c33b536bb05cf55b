package testutil

import (
	"context"
	"strings"

	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	"github.com/asejik/invoice-aso-oke/internal/live"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
	registry *live.Registry
}

func NewInMemoryCustomerStore(registry *live.Registry) *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
		registry:      registry,
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	if err := s.InMemoryStore.Create(ctx, c.ID, copyCustomer(c)); err != nil {
		return err
	}
	s.registry.Publish(ctx, live.CollectionCustomers)
	return nil
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	if err := s.InMemoryStore.Update(ctx, c.ID, copyCustomer(c)); err != nil {
		return err
	}
	s.registry.Publish(ctx, live.CollectionCustomers)
	return nil
}

func (s *InMemoryCustomerStore) List(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, error) {
	filterFn := func(_ context.Context, c *customer.Customer, _ interface{}) bool {
		if filter.Search == "" {
			return true
		}
		search := strings.ToLower(filter.Search)
		return strings.Contains(strings.ToLower(c.Name), search) ||
			strings.Contains(strings.ToLower(c.Phone), search)
	}

	customers, err := s.InMemoryStore.List(ctx, filter, filterFn, nil)
	if err != nil {
		return nil, err
	}

	out := make([]*customer.Customer, len(customers))
	for i, c := range customers {
		out[i] = copyCustomer(c)
	}
	return out, nil
}
