package service

import (
	"testing"
	"time"

	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	"github.com/asejik/invoice-aso-oke/internal/domain/profile"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/testutil"
	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DocumentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service DocumentService
	pdfMock *testutil.MockPDFGenerator
}

func TestDocumentService(t *testing.T) {
	suite.Run(t, new(DocumentServiceSuite))
}

func (s *DocumentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.pdfMock = params.PDFGenerator.(*testutil.MockPDFGenerator)
	s.service = NewDocumentService(params)
}

func (s *DocumentServiceSuite) seedAll(deposit int64) *invoice.Invoice {
	s.NoError(s.GetStores().ProfileRepo.Put(s.GetContext(), &profile.BusinessProfile{
		BusinessName:  "Adire Aso Oke Weavers",
		Address:       "12 Isale Eko Street, Lagos",
		Phone:         "08012345678",
		BankName:      "GTBank",
		AccountNumber: "0123456789",
		AccountName:   "Adire Aso Oke Weavers",
		BaseModel:     types.GetDefaultBaseModel(),
	}))

	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), &customer.Customer{
		ID:        "cust_test",
		Name:      "Adunni Textiles",
		Phone:     "08087654321",
		BaseModel: types.GetDefaultBaseModel(),
	}))

	item := &invoice.InvoiceItem{
		ID:          "item_1",
		Description: "Aso Oke fabric",
		Quantity:    1,
		UnitPrice:   decimal.NewFromInt(100),
	}
	item.ComputeTotal()

	dep := decimal.NewFromInt(deposit)
	inv := &invoice.Invoice{
		ID:            "inv_1",
		CustomerID:    "cust_test",
		InvoiceNumber: "INV-001",
		Items:         []*invoice.InvoiceItem{item},
		Subtotal:      decimal.NewFromInt(100),
		GrandTotal:    decimal.NewFromInt(100),
		DepositAmount: dep,
		Currency:      types.CurrencyNGN,
		Status:        types.DeriveInvoiceStatus(dep, decimal.NewFromInt(100)),
		DateIssued:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		BaseModel:     types.GetDefaultBaseModel(),
	}
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	return inv
}

func (s *DocumentServiceSuite) TestResolveInvoiceDocument() {
	s.seedAll(30)

	doc, err := s.service.ResolveInvoiceDocument(s.GetContext(), "inv_1")
	s.NoError(err)

	s.Equal("inv_1", doc.Invoice.ID)
	s.Equal("Adire Aso Oke Weavers", doc.Business.BusinessName)
	s.Equal("Adunni Textiles", doc.Customer.Name)
	s.False(doc.IsFullyPaid)

	// legacy deposit resolves into the document history
	s.Require().Len(doc.History, 1)
	s.Equal(invoice.InitialDepositNote, doc.History[0].Note)
}

func (s *DocumentServiceSuite) TestResolveFullyPaid() {
	s.seedAll(100)

	doc, err := s.service.ResolveInvoiceDocument(s.GetContext(), "inv_1")
	s.NoError(err)
	s.True(doc.IsFullyPaid)
}

func (s *DocumentServiceSuite) TestGenerateInvoicePDF() {
	s.seedAll(0)

	data, filename, err := s.service.GenerateInvoicePDF(s.GetContext(), "inv_1")
	s.NoError(err)
	s.NotEmpty(data)
	s.Equal("INV-001.pdf", filename)
	s.Equal(1, s.pdfMock.RenderCount)
	s.Equal("inv_1", s.pdfMock.LastDocument.Invoice.ID)
}

func (s *DocumentServiceSuite) TestResolveErrors() {
	s.Run("missing_invoice", func() {
		s.seedAll(0)
		_, err := s.service.ResolveInvoiceDocument(s.GetContext(), "inv_missing")
		s.True(ierr.IsNotFound(err))
	})

	s.Run("missing_profile", func() {
		s.ClearStores()
		s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), &customer.Customer{
			ID:        "cust_test",
			Name:      "Adunni Textiles",
			Phone:     "08087654321",
			BaseModel: types.GetDefaultBaseModel(),
		}))
		item := &invoice.InvoiceItem{ID: "item_1", Description: "Fabric", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}
		item.ComputeTotal()
		s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), &invoice.Invoice{
			ID:            "inv_1",
			CustomerID:    "cust_test",
			InvoiceNumber: "INV-001",
			Items:         []*invoice.InvoiceItem{item},
			Subtotal:      decimal.NewFromInt(10),
			GrandTotal:    decimal.NewFromInt(10),
			Currency:      types.CurrencyNGN,
			Status:        types.InvoiceStatusPending,
			DateIssued:    time.Now().UTC(),
			BaseModel:     types.GetDefaultBaseModel(),
		}))

		_, err := s.service.ResolveInvoiceDocument(s.GetContext(), "inv_1")
		s.True(ierr.IsMissingReference(err))
	})
}
