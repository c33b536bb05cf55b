package dto

import (
	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	// Amount being received now, must be positive
	Amount decimal.Decimal `json:"amount"`
	// Note is free text, e.g. "Cash" or "Bank Transfer"
	Note string `json:"note,omitempty"`
}

func (r *RecordPaymentRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return ierr.NewError("payment amount must be positive").
			WithHint("Payment amount must be greater than 0").
			WithReportableDetails(map[string]any{"amount": r.Amount}).
			Mark(ierr.ErrInvalidAmount)
	}
	return nil
}

// RecordPaymentResponse returns the updated invoice plus an overpayment
// warning when the new deposit exceeds the grand total. Overpayment is
// allowed and never capped; flagging it is the caller's cue to confirm
// with the user.
type RecordPaymentResponse struct {
	Invoice           *InvoiceResponse `json:"invoice"`
	Overpayment       bool             `json:"overpayment"`
	OverpaymentAmount decimal.Decimal  `json:"overpayment_amount"`
}

// PaymentHistoryResponse is the resolved ledger of an invoice,
// including any synthesized initial deposit record
type PaymentHistoryResponse struct {
	InvoiceID string                   `json:"invoice_id"`
	Records   []*invoice.PaymentRecord `json:"records"`
	Total     decimal.Decimal          `json:"total"`
}
