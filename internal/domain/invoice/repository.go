package invoice

import (
	"context"

	"github.com/asejik/invoice-aso-oke/internal/types"
)

// SortOrder controls List ordering by date issued. The default is
// insertion order, which also breaks ties under date ordering.
type SortOrder string

const (
	SortInsertion      SortOrder = ""
	SortDateIssuedDesc SortOrder = "date_issued_desc"
)

// ListFilter narrows List results. Zero-value fields are not applied.
type ListFilter struct {
	CustomerID string
	Status     types.InvoiceStatus
	Currency   types.CurrencyCode
	IsSynced   *bool
	Sort       SortOrder
}

// Repository provides access to the invoices collection. Create and
// Update are atomic single-entity puts: the whole invoice including its
// embedded ledger is committed in one write.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*Invoice, error)
}
