package document

import (
	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	"github.com/asejik/invoice-aso-oke/internal/domain/profile"
)

// InvoiceDocument is the resolved, immutable input to the renderer: the
// invoice joined with the business profile and customer it references,
// plus the two derived values the renderer is allowed to consume. The
// renderer must not re-derive status; the ledger already computed it.
type InvoiceDocument struct {
	Invoice  *invoice.Invoice
	Business *profile.BusinessProfile
	Customer *customer.Customer

	// IsFullyPaid = (grandTotal - depositAmount) <= 0
	IsFullyPaid bool

	// History is the resolved ledger, legacy synthesis already applied
	History []*invoice.PaymentRecord
}
