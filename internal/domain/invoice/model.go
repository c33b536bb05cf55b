package invoice

import (
	"fmt"
	"time"

	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice is the central entity: an itemized bill against a customer,
// carrying its own append-only payment ledger and the financial state
// derived from it.
//
// GrandTotal = Subtotal - Discount + Tax is established at creation and
// never recomputed afterwards. DepositAmount is the running total of all
// payments applied; once the ledger is in use it always equals the sum
// of Payments.
type Invoice struct {
	ID string `json:"id"`

	// CustomerID references the customer, it does not own it
	CustomerID string `json:"customer_id"`

	// InvoiceNumber is the human-facing number, unique by convention
	InvoiceNumber string `json:"invoice_number"`

	Items []*InvoiceItem `json:"items"`

	Subtotal     decimal.Decimal    `json:"subtotal"`
	Discount     decimal.Decimal    `json:"discount"`
	DiscountRate *decimal.Decimal   `json:"discount_rate,omitempty"`
	DiscountType types.DiscountType `json:"discount_type,omitempty"`
	Tax          decimal.Decimal    `json:"tax"`
	GrandTotal   decimal.Decimal    `json:"grand_total"`

	// DepositAmount is the running total of money received against this
	// invoice, not a single initial deposit
	DepositAmount decimal.Decimal `json:"deposit_amount"`

	// Payments is the ledger. Records are append-only; invoices created
	// before the ledger existed may have a positive DepositAmount with
	// no records, see ResolvePaymentHistory.
	Payments []*PaymentRecord `json:"payments,omitempty"`

	Currency types.CurrencyCode  `json:"currency"`
	Status   types.InvoiceStatus `json:"status"`

	DateIssued time.Time  `json:"date_issued"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Notes      string     `json:"notes,omitempty"`

	// IsSynced is reserved for a future sync protocol, unused by core logic
	IsSynced bool `json:"is_synced"`

	types.BaseModel
}

// InvoiceItem is a line on an invoice, owned exclusively by it
type InvoiceItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	// Total is always recomputed as Quantity * UnitPrice, never trusted
	// from input
	Total decimal.Decimal `json:"total"`
}

// PaymentRecord is one entry in the ledger: money received on a date,
// with an optional note like "Cash" or "Bank Transfer". Records are
// never edited or removed once written.
type PaymentRecord struct {
	ID     string          `json:"id"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// InitialDepositNote marks the synthesized ledger entry for invoices
// that recorded a deposit before the ledger field existed
const InitialDepositNote = "Initial Deposit"

// ComputeTotal recomputes the line total from quantity and unit price
func (it *InvoiceItem) ComputeTotal() {
	it.Total = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

func (it *InvoiceItem) Validate() error {
	if it.Description == "" {
		return ierr.NewError("item description is required").
			WithHint("Item description is required").
			Mark(ierr.ErrValidation)
	}
	if it.Quantity <= 0 {
		return ierr.NewError("item quantity must be positive").
			WithHint("Item quantity must be a positive integer").
			Mark(ierr.ErrValidation)
	}
	if it.UnitPrice.IsNegative() {
		return ierr.NewError("item unit price must be non negative").
			WithHint("Item unit price must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (i *Invoice) Validate() error {
	if i.CustomerID == "" {
		return ierr.NewError("customer id is required").
			WithHint("Invoice must reference a customer").
			Mark(ierr.ErrValidation)
	}
	if len(i.Items) == 0 {
		return ierr.NewError("invoice has no items").
			WithHint("Invoice must have at least one item").
			Mark(ierr.ErrValidation)
	}
	for _, item := range i.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	if err := i.Currency.Validate(); err != nil {
		return err
	}
	if i.DepositAmount.IsNegative() {
		return ierr.NewError("deposit amount must be non negative").
			WithHint("Deposit amount must not be negative").
			Mark(ierr.ErrValidation)
	}
	// grand total invariant, fixed at creation
	if !i.GrandTotal.Equal(i.Subtotal.Sub(i.Discount).Add(i.Tax)) {
		return ierr.NewError("grand total does not match subtotal - discount + tax").
			WithHint("Invoice totals are inconsistent").
			WithReportableDetails(map[string]any{
				"subtotal":    i.Subtotal,
				"discount":    i.Discount,
				"tax":         i.Tax,
				"grand_total": i.GrandTotal,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BalanceDue is the amount still owed. Negative when overpaid.
func (i *Invoice) BalanceDue() decimal.Decimal {
	return i.GrandTotal.Sub(i.DepositAmount)
}

// IsFullyPaid reports whether the ledger covers the grand total
func (i *Invoice) IsFullyPaid() bool {
	return i.BalanceDue().LessThanOrEqual(decimal.Zero)
}

// ResolvePaymentHistory returns the complete ledger for the invoice.
//
// Invoices created before the ledger field existed carry a positive
// DepositAmount with no records; for those a single "Initial Deposit"
// record equal to the current deposit is synthesized so the history
// remains a faithful accounting of all money ever recorded. The
// synthesis is pure read-time reconciliation: it derives the record
// deterministically from the invoice's own fields (same id, date and
// amount on every call), does not mutate the invoice, and is never
// persisted on its own. It becomes part of the stored ledger only when
// a later payment write persists the whole invoice.
func (i *Invoice) ResolvePaymentHistory() []*PaymentRecord {
	if len(i.Payments) > 0 {
		return i.Payments
	}
	if i.DepositAmount.IsPositive() {
		return []*PaymentRecord{
			{
				ID:     fmt.Sprintf("%s_%s_init", types.UUID_PREFIX_PAYMENT_RECORD, i.ID),
				Date:   i.DateIssued,
				Amount: i.DepositAmount,
				Note:   InitialDepositNote,
			},
		}
	}
	return nil
}

// LedgerTotal sums the resolved payment history
func (i *Invoice) LedgerTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range i.ResolvePaymentHistory() {
		total = total.Add(p.Amount)
	}
	return total
}
