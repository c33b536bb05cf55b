package customer

import "context"

// ListFilter narrows List results. A zero filter returns all customers
// in insertion order.
type ListFilter struct {
	// Search matches against name and phone
	Search string
}

// Repository provides access to the customers collection
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	List(ctx context.Context, filter ListFilter) ([]*Customer, error)
}
