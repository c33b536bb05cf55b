package testutil

import (
	"context"

	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	"github.com/asejik/invoice-aso-oke/internal/live"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
	registry *live.Registry
}

func NewInMemoryInvoiceStore(registry *live.Registry) *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
		registry:      registry,
	}
}

// copyInvoice deep-copies an invoice so tests never share ledger slices
// with the store
func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}

	out := *inv
	if inv.DiscountRate != nil {
		rate := *inv.DiscountRate
		out.DiscountRate = &rate
	}
	if inv.DueDate != nil {
		due := *inv.DueDate
		out.DueDate = &due
	}
	if inv.Items != nil {
		out.Items = make([]*invoice.InvoiceItem, len(inv.Items))
		for i, item := range inv.Items {
			cp := *item
			out.Items[i] = &cp
		}
	}
	if inv.Payments != nil {
		out.Payments = make([]*invoice.PaymentRecord, len(inv.Payments))
		for i, rec := range inv.Payments {
			cp := *rec
			out.Payments[i] = &cp
		}
	}
	return &out
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if err := s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv)); err != nil {
		return err
	}
	s.registry.Publish(ctx, live.CollectionInvoices)
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if err := s.InMemoryStore.Update(ctx, inv.ID, copyInvoice(inv)); err != nil {
		return err
	}
	s.registry.Publish(ctx, live.CollectionInvoices)
	return nil
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return err
	}
	s.registry.Publish(ctx, live.CollectionInvoices)
	return nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	filterFn := func(_ context.Context, inv *invoice.Invoice, _ interface{}) bool {
		if filter.CustomerID != "" && inv.CustomerID != filter.CustomerID {
			return false
		}
		if filter.Status != "" && inv.Status != filter.Status {
			return false
		}
		if filter.Currency != "" && inv.Currency != filter.Currency {
			return false
		}
		if filter.IsSynced != nil && inv.IsSynced != *filter.IsSynced {
			return false
		}
		return true
	}

	var sortFn SortFunc[*invoice.Invoice]
	if filter.Sort == invoice.SortDateIssuedDesc {
		sortFn = func(a, b *invoice.Invoice) bool {
			return a.DateIssued.After(b.DateIssued)
		}
	}

	invoices, err := s.InMemoryStore.List(ctx, filter, filterFn, sortFn)
	if err != nil {
		return nil, err
	}

	out := make([]*invoice.Invoice, len(invoices))
	for i, inv := range invoices {
		out[i] = copyInvoice(inv)
	}
	return out, nil
}
