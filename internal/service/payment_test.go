package service

import (
	"context"
	"testing"
	"time"

	"github.com/asejik/invoice-aso-oke/internal/api/dto"
	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/live"
	"github.com/asejik/invoice-aso-oke/internal/testutil"
	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service LedgerService
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceSuite))
}

func (s *LedgerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewLedgerService(newTestServiceParams(&s.BaseServiceTestSuite))

	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), &customer.Customer{
		ID:        "cust_test",
		Name:      "Adunni Textiles",
		Phone:     "08012345678",
		BaseModel: types.GetDefaultBaseModel(),
	}))
}

// seedInvoice stores an invoice with the given totals directly, the way
// it would exist after creation
func (s *LedgerServiceSuite) seedInvoice(id string, grandTotal, deposit decimal.Decimal, payments []*invoice.PaymentRecord) *invoice.Invoice {
	item := &invoice.InvoiceItem{
		ID:          "item_1",
		Description: "Aso Oke fabric",
		Quantity:    1,
		UnitPrice:   grandTotal,
	}
	item.ComputeTotal()

	inv := &invoice.Invoice{
		ID:            id,
		CustomerID:    "cust_test",
		InvoiceNumber: "INV-" + id,
		Items:         []*invoice.InvoiceItem{item},
		Subtotal:      grandTotal,
		Discount:      decimal.Zero,
		Tax:           decimal.Zero,
		GrandTotal:    grandTotal,
		DepositAmount: deposit,
		Payments:      payments,
		Currency:      types.CurrencyNGN,
		Status:        types.DeriveInvoiceStatus(deposit, grandTotal),
		DateIssued:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		BaseModel:     types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	return inv
}

func (s *LedgerServiceSuite) TestRecordPartialPayment() {
	s.seedInvoice("inv_1", decimal.NewFromInt(100), decimal.Zero, nil)

	resp, err := s.service.RecordPayment(s.GetContext(), "inv_1", &dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(40),
		Note:   "Bank Transfer",
	})
	s.NoError(err)

	s.True(resp.Invoice.DepositAmount.Equal(decimal.NewFromInt(40)))
	s.Equal(types.InvoiceStatusPartial, resp.Invoice.Status)
	s.False(resp.Overpayment)
	s.True(resp.OverpaymentAmount.IsZero())
	s.Require().Len(resp.Invoice.Payments, 1)
	s.Equal("Bank Transfer", resp.Invoice.Payments[0].Note)
	s.True(resp.Invoice.BalanceDue.Equal(decimal.NewFromInt(60)))
}

func (s *LedgerServiceSuite) TestPaymentsAccumulateToPaid() {
	s.seedInvoice("inv_1", decimal.NewFromInt(100), decimal.Zero, nil)

	_, err := s.service.RecordPayment(s.GetContext(), "inv_1", &dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(60),
	})
	s.NoError(err)

	resp, err := s.service.RecordPayment(s.GetContext(), "inv_1", &dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(40),
	})
	s.NoError(err)

	s.Equal(types.InvoiceStatusPaid, resp.Invoice.Status)
	s.True(resp.Invoice.DepositAmount.Equal(decimal.NewFromInt(100)))
	s.False(resp.Overpayment)
	s.Require().Len(resp.Invoice.Payments, 2)

	// ledger sum always matches the running deposit
	s.True(resp.Invoice.LedgerTotal().Equal(resp.Invoice.DepositAmount))
}

func (s *LedgerServiceSuite) TestOverpaymentIsFlaggedNotCapped() {
	s.seedInvoice("inv_1", decimal.NewFromInt(100), decimal.NewFromInt(90), []*invoice.PaymentRecord{
		{ID: "pay_1", Amount: decimal.NewFromInt(90), Date: time.Now().UTC()},
	})

	resp, err := s.service.RecordPayment(s.GetContext(), "inv_1", &dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(30),
	})
	s.NoError(err)

	s.True(resp.Overpayment)
	s.True(resp.OverpaymentAmount.Equal(decimal.NewFromInt(20)))
	s.Equal(types.InvoiceStatusPaid, resp.Invoice.Status)
	// the full amount is kept, the deposit is never trimmed to the total
	s.True(resp.Invoice.DepositAmount.Equal(decimal.NewFromInt(120)))
	s.True(resp.Invoice.BalanceDue.Equal(decimal.NewFromInt(-20)))
}

func (s *LedgerServiceSuite) TestLegacyDepositIsPersistedWithNewPayment() {
	// pre-ledger invoice: positive deposit, no records
	s.seedInvoice("inv_legacy", decimal.NewFromInt(100), decimal.NewFromInt(30), nil)

	resp, err := s.service.RecordPayment(s.GetContext(), "inv_legacy", &dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(20),
		Note:   "Cash",
	})
	s.NoError(err)

	s.Require().Len(resp.Invoice.Payments, 2)
	s.Equal(invoice.InitialDepositNote, resp.Invoice.Payments[0].Note)
	s.True(resp.Invoice.Payments[0].Amount.Equal(decimal.NewFromInt(30)))
	s.Equal("Cash", resp.Invoice.Payments[1].Note)
	s.True(resp.Invoice.DepositAmount.Equal(decimal.NewFromInt(50)))

	// the synthesized record is now stored; subsequent reads use the
	// real ledger
	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), "inv_legacy")
	s.NoError(err)
	s.Len(stored.Payments, 2)
}

func (s *LedgerServiceSuite) TestRecordPaymentErrors() {
	s.seedInvoice("inv_1", decimal.NewFromInt(100), decimal.Zero, nil)

	testCases := []struct {
		name      string
		invoiceID string
		amount    decimal.Decimal
		check     func(err error) bool
	}{
		{
			name:      "zero_amount",
			invoiceID: "inv_1",
			amount:    decimal.Zero,
			check:     ierr.IsInvalidAmount,
		},
		{
			name:      "negative_amount",
			invoiceID: "inv_1",
			amount:    decimal.NewFromInt(-10),
			check:     ierr.IsInvalidAmount,
		},
		{
			name:      "unknown_invoice",
			invoiceID: "inv_missing",
			amount:    decimal.NewFromInt(10),
			check:     ierr.IsNotFound,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.RecordPayment(s.GetContext(), tc.invoiceID, &dto.RecordPaymentRequest{
				Amount: tc.amount,
			})
			s.Error(err)
			s.Nil(resp)
			s.True(tc.check(err))
		})
	}

	// a failed payment leaves the invoice untouched
	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), "inv_1")
	s.NoError(err)
	s.True(stored.DepositAmount.IsZero())
	s.Empty(stored.Payments)
	s.Equal(types.InvoiceStatusPending, stored.Status)
}

func (s *LedgerServiceSuite) TestDepositNeverDecreases() {
	s.seedInvoice("inv_1", decimal.NewFromInt(100), decimal.Zero, nil)

	previous := decimal.Zero
	for _, amount := range []int64{10, 25, 5, 60, 15} {
		resp, err := s.service.RecordPayment(s.GetContext(), "inv_1", &dto.RecordPaymentRequest{
			Amount: decimal.NewFromInt(amount),
		})
		s.NoError(err)
		s.True(resp.Invoice.DepositAmount.GreaterThan(previous))
		previous = resp.Invoice.DepositAmount
	}
}

func (s *LedgerServiceSuite) TestLiveQuerySeesPaymentBeforeCallReturns() {
	s.seedInvoice("inv_1", decimal.NewFromInt(100), decimal.Zero, nil)

	query := live.NewQuery(s.GetRegistry(), []live.Collection{live.CollectionInvoices},
		func(ctx context.Context) (types.InvoiceStatus, error) {
			inv, err := s.GetStores().InvoiceRepo.Get(ctx, "inv_1")
			if err != nil {
				return "", err
			}
			return inv.Status, nil
		})
	defer query.Close()

	var observed []types.InvoiceStatus
	cancel := query.OnChange(func(status types.InvoiceStatus) {
		observed = append(observed, status)
	})
	defer cancel()

	initial, err := query.Get(s.GetContext())
	s.NoError(err)
	s.Equal(types.InvoiceStatusPending, initial)

	_, err = s.service.RecordPayment(s.GetContext(), "inv_1", &dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(100),
	})
	s.NoError(err)

	// the write published synchronously, so the observer has already
	// seen the paid state by the time RecordPayment returned
	s.Equal([]types.InvoiceStatus{types.InvoiceStatusPaid}, observed)

	current, err := query.Get(s.GetContext())
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, current)
}

func (s *LedgerServiceSuite) TestPaymentHistory() {
	s.Run("legacy_synthesis_without_write", func() {
		s.seedInvoice("inv_legacy", decimal.NewFromInt(100), decimal.NewFromInt(30), nil)

		resp, err := s.service.PaymentHistory(s.GetContext(), "inv_legacy")
		s.NoError(err)
		s.Require().Len(resp.Records, 1)
		s.Equal(invoice.InitialDepositNote, resp.Records[0].Note)
		s.True(resp.Total.Equal(decimal.NewFromInt(30)))

		// reading history never persists the synthesized record
		stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), "inv_legacy")
		s.NoError(err)
		s.Empty(stored.Payments)
	})

	s.Run("real_ledger", func() {
		s.seedInvoice("inv_1", decimal.NewFromInt(100), decimal.NewFromInt(70), []*invoice.PaymentRecord{
			{ID: "pay_1", Amount: decimal.NewFromInt(30), Date: time.Now().UTC()},
			{ID: "pay_2", Amount: decimal.NewFromInt(40), Date: time.Now().UTC()},
		})

		resp, err := s.service.PaymentHistory(s.GetContext(), "inv_1")
		s.NoError(err)
		s.Len(resp.Records, 2)
		s.True(resp.Total.Equal(decimal.NewFromInt(70)))
	})
}
