package service

import (
	"context"
	"time"

	"github.com/asejik/invoice-aso-oke/internal/api/dto"
	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/shopspring/decimal"
)

// LedgerService applies payments to invoices. Applying a payment is a
// single atomic operation: resolve the existing history (synthesizing
// the legacy initial deposit when needed), append exactly one record,
// recompute the deposit total, derive the status, and persist the whole
// invoice in one store write. The write triggers the live registry, so
// every subscriber sees the new state before the call returns.
//
// The deposit never decreases; there is no refund operation.
type LedgerService interface {
	RecordPayment(ctx context.Context, invoiceID string, req *dto.RecordPaymentRequest) (*dto.RecordPaymentResponse, error)
	PaymentHistory(ctx context.Context, invoiceID string) (*dto.PaymentHistoryResponse, error)
}

type ledgerService struct {
	ServiceParams
}

func NewLedgerService(params ServiceParams) LedgerService {
	return &ledgerService{ServiceParams: params}
}

func (s *ledgerService) RecordPayment(ctx context.Context, invoiceID string, req *dto.RecordPaymentRequest) (*dto.RecordPaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	// Resolving first makes the stored ledger complete from this write
	// on: a legacy invoice gets its synthesized initial deposit record
	// persisted together with the new payment.
	history := inv.ResolvePaymentHistory()
	ledger := make([]*invoice.PaymentRecord, 0, len(history)+1)
	ledger = append(ledger, history...)

	record := &invoice.PaymentRecord{
		ID:     types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT_RECORD),
		Date:   time.Now().UTC(),
		Amount: req.Amount,
		Note:   req.Note,
	}
	ledger = append(ledger, record)

	newDeposit := inv.DepositAmount.Add(req.Amount)

	inv.Payments = ledger
	inv.DepositAmount = newDeposit
	inv.Status = types.DeriveInvoiceStatus(newDeposit, inv.GrandTotal)
	inv.UpdatedAt = record.Date

	// deposit must equal the ledger sum from here on
	if !inv.DepositAmount.Equal(inv.LedgerTotal()) {
		return nil, ierr.NewError("ledger and deposit amount diverged").
			WithHint("Payment could not be recorded consistently").
			WithReportableDetails(map[string]any{
				"deposit_amount": inv.DepositAmount,
				"ledger_total":   inv.LedgerTotal(),
			}).
			Mark(ierr.ErrSystem)
	}

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	overpayment := newDeposit.GreaterThan(inv.GrandTotal)
	excess := decimal.Zero
	if overpayment {
		excess = newDeposit.Sub(inv.GrandTotal)
	}

	s.Logger.Infow("payment recorded",
		"invoice_id", inv.ID,
		"amount", req.Amount,
		"deposit_amount", inv.DepositAmount,
		"status", inv.Status,
		"overpayment", overpayment,
	)

	return &dto.RecordPaymentResponse{
		Invoice:           dto.NewInvoiceResponse(inv, s.customerName(ctx, inv.CustomerID)),
		Overpayment:       overpayment,
		OverpaymentAmount: excess,
	}, nil
}

func (s *ledgerService) PaymentHistory(ctx context.Context, invoiceID string) (*dto.PaymentHistoryResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	records := inv.ResolvePaymentHistory()
	return &dto.PaymentHistoryResponse{
		InvoiceID: inv.ID,
		Records:   records,
		Total:     inv.LedgerTotal(),
	}, nil
}

func (s *ledgerService) customerName(ctx context.Context, customerID string) string {
	c, err := s.CustomerRepo.Get(ctx, customerID)
	if err != nil {
		return UnknownCustomerName
	}
	return c.Name
}
