package types

import (
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is derived from the invoice's grand total and the running
// deposit amount. It is never set directly by a user action.
type InvoiceStatus string

const (
	// InvoiceStatusDraft is declared for legacy data but no transition
	// produces it; status derivation only yields pending/partial/paid.
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusPending,
		InvoiceStatusPartial,
		InvoiceStatusPaid,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DeriveInvoiceStatus is the single transition rule for invoice status:
//
//	deposit >= grandTotal -> paid
//	deposit > 0           -> partial
//	otherwise             -> pending
func DeriveInvoiceStatus(depositAmount, grandTotal decimal.Decimal) InvoiceStatus {
	switch {
	case depositAmount.GreaterThanOrEqual(grandTotal):
		return InvoiceStatusPaid
	case depositAmount.GreaterThan(decimal.Zero):
		return InvoiceStatusPartial
	default:
		return InvoiceStatusPending
	}
}

// DiscountType distinguishes a percentage discount from a fixed deduction
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

func (d DiscountType) Validate() error {
	allowed := []DiscountType{DiscountTypePercentage, DiscountTypeFixed}
	if !lo.Contains(allowed, d) {
		return ierr.NewError("invalid discount type").
			WithHint("Discount type must be percentage or fixed").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
