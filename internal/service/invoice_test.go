package service

import (
	"testing"

	"github.com/asejik/invoice-aso-oke/internal/api/dto"
	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/testutil"
	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  InvoiceService
	customer *customer.Customer
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(newTestServiceParams(&s.BaseServiceTestSuite))

	s.customer = &customer.Customer{
		ID:        "cust_test",
		Name:      "Adunni Textiles",
		Phone:     "08012345678",
		BaseModel: types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), s.customer))
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	req := &dto.CreateInvoiceRequest{
		CustomerID: s.customer.ID,
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Aso Oke fabric", Quantity: 4, UnitPrice: decimal.NewFromInt(25)},
			{Description: "Gele headwrap", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		},
		Tax:      decimal.NewFromInt(6),
		Currency: types.CurrencyNGN,
	}

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.NotNil(resp)

	s.True(resp.Subtotal.Equal(decimal.NewFromInt(120)))
	s.True(resp.GrandTotal.Equal(decimal.NewFromInt(126)))
	s.True(resp.DepositAmount.IsZero())
	s.Equal(types.InvoiceStatusPending, resp.Status)
	s.Equal("Adunni Textiles", resp.CustomerName)
	s.True(resp.BalanceDue.Equal(decimal.NewFromInt(126)))
	s.NotEmpty(resp.InvoiceNumber)

	// item totals are recomputed server side
	s.True(resp.Items[0].Total.Equal(decimal.NewFromInt(100)))
	s.True(resp.Items[1].Total.Equal(decimal.NewFromInt(20)))
}

func (s *InvoiceServiceSuite) TestCreateInvoicePercentageDiscount() {
	rate := decimal.NewFromInt(10)
	req := &dto.CreateInvoiceRequest{
		CustomerID: s.customer.ID,
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Agbada set", Quantity: 1, UnitPrice: decimal.NewFromInt(200)},
		},
		DiscountRate: &rate,
		DiscountType: types.DiscountTypePercentage,
		Currency:     types.CurrencyNGN,
	}

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)

	// 10% of 200
	s.True(resp.Discount.Equal(decimal.NewFromInt(20)))
	s.True(resp.GrandTotal.Equal(decimal.NewFromInt(180)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceInitialDepositSeedsLedger() {
	req := &dto.CreateInvoiceRequest{
		CustomerID: s.customer.ID,
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Sanyan weave", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
		InitialDeposit: decimal.NewFromInt(40),
		Currency:       types.CurrencyUSD,
	}

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)

	s.Equal(types.InvoiceStatusPartial, resp.Status)
	s.True(resp.DepositAmount.Equal(decimal.NewFromInt(40)))
	s.Require().Len(resp.Payments, 1)
	s.Equal(invoice.InitialDepositNote, resp.Payments[0].Note)
	s.True(resp.Payments[0].Amount.Equal(decimal.NewFromInt(40)))

	// the ledger record is persisted, not synthesized on read
	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Len(stored.Payments, 1)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceDepositCoveringTotalIsPaid() {
	req := &dto.CreateInvoiceRequest{
		CustomerID: s.customer.ID,
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Etu cloth", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
		InitialDeposit: decimal.NewFromInt(50),
		Currency:       types.CurrencyNGN,
	}

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.Status)
	s.True(resp.BalanceDue.IsZero())
}

func (s *InvoiceServiceSuite) TestCreateInvoiceErrors() {
	testCases := []struct {
		name    string
		request *dto.CreateInvoiceRequest
		check   func(err error) bool
	}{
		{
			name: "unknown_customer",
			request: &dto.CreateInvoiceRequest{
				CustomerID: "cust_missing",
				Items: []dto.CreateInvoiceItemRequest{
					{Description: "Fila cap", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
				},
				Currency: types.CurrencyNGN,
			},
			check: ierr.IsMissingReference,
		},
		{
			name: "no_items",
			request: &dto.CreateInvoiceRequest{
				CustomerID: "cust_test",
				Currency:   types.CurrencyNGN,
			},
			check: ierr.IsValidation,
		},
		{
			name: "invalid_currency",
			request: &dto.CreateInvoiceRequest{
				CustomerID: "cust_test",
				Items: []dto.CreateInvoiceItemRequest{
					{Description: "Fila cap", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
				},
				Currency: "JPY",
			},
			check: ierr.IsValidation,
		},
		{
			name: "discount_exceeds_total",
			request: &dto.CreateInvoiceRequest{
				CustomerID: "cust_test",
				Items: []dto.CreateInvoiceItemRequest{
					{Description: "Fila cap", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
				},
				Discount: decimal.NewFromInt(50),
				Currency: types.CurrencyNGN,
			},
			check: ierr.IsValidation,
		},
		{
			name: "negative_initial_deposit",
			request: &dto.CreateInvoiceRequest{
				CustomerID: "cust_test",
				Items: []dto.CreateInvoiceItemRequest{
					{Description: "Fila cap", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
				},
				InitialDeposit: decimal.NewFromInt(-5),
				Currency:       types.CurrencyNGN,
			},
			check: ierr.IsValidation,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.CreateInvoice(s.GetContext(), tc.request)
			s.Error(err)
			s.Nil(resp)
			s.True(tc.check(err))
		})
	}
}

func (s *InvoiceServiceSuite) TestDeleteInvoice() {
	created, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		CustomerID: s.customer.ID,
		Items: []dto.CreateInvoiceItemRequest{
			{Description: "Fabric", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
		Currency: types.CurrencyNGN,
	})
	s.NoError(err)

	s.NoError(s.service.DeleteInvoice(s.GetContext(), created.ID))

	_, err = s.service.GetInvoice(s.GetContext(), created.ID)
	s.True(ierr.IsNotFound(err))

	// the customer outlives its invoices
	_, err = s.GetStores().CustomerRepo.Get(s.GetContext(), s.customer.ID)
	s.NoError(err)

	s.True(ierr.IsNotFound(s.service.DeleteInvoice(s.GetContext(), "inv_missing")))
}

func (s *InvoiceServiceSuite) TestListInvoicesFilters() {
	for _, currency := range []types.CurrencyCode{types.CurrencyNGN, types.CurrencyUSD, types.CurrencyNGN} {
		_, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
			CustomerID: s.customer.ID,
			Items: []dto.CreateInvoiceItemRequest{
				{Description: "Fabric", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
			},
			Currency: currency,
		})
		s.NoError(err)
	}

	all, err := s.service.ListInvoices(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(3, all.Total)

	ngn, err := s.service.ListInvoices(s.GetContext(), &dto.ListInvoicesFilter{Currency: types.CurrencyNGN})
	s.NoError(err)
	s.Equal(2, ngn.Total)
	for _, inv := range ngn.Items {
		s.Equal(types.CurrencyNGN, inv.Currency)
		s.Equal("Adunni Textiles", inv.CustomerName)
	}
}
