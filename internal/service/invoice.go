package service

import (
	"context"
	"time"

	"github.com/asejik/invoice-aso-oke/internal/api/dto"
	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InvoiceService composes invoices. The grand total invariant
// (grandTotal = subtotal - discount + tax) is established here at
// creation and never recomputed afterwards; item totals are always
// recomputed from quantity and unit price, never trusted from input.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *dto.ListInvoicesFilter) (*dto.ListInvoicesResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, req.CustomerID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("customer does not exist").
				WithHintf("Customer %s was not found", req.CustomerID).
				Mark(ierr.ErrMissingReference)
		}
		return nil, err
	}

	items := make([]*invoice.InvoiceItem, len(req.Items))
	subtotal := decimal.Zero
	for i, itemReq := range req.Items {
		item := &invoice.InvoiceItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_ITEM),
			Description: itemReq.Description,
			Quantity:    itemReq.Quantity,
			UnitPrice:   itemReq.UnitPrice,
		}
		item.ComputeTotal()
		items[i] = item
		subtotal = subtotal.Add(item.Total)
	}

	discount := req.Discount
	if req.DiscountType == types.DiscountTypePercentage && req.DiscountRate != nil {
		discount = subtotal.Mul(*req.DiscountRate).Div(decimal.NewFromInt(100))
	} else if req.DiscountType == types.DiscountTypeFixed && req.DiscountRate != nil {
		discount = *req.DiscountRate
	}

	grandTotal := subtotal.Sub(discount).Add(req.Tax)
	if grandTotal.IsNegative() {
		return nil, ierr.NewError("grand total is negative").
			WithHint("Discount cannot exceed subtotal plus tax").
			Mark(ierr.ErrValidation)
	}

	dateIssued := time.Now().UTC()
	if req.DateIssued != nil {
		dateIssued = req.DateIssued.UTC()
	}

	invoiceNumber := req.InvoiceNumber
	if invoiceNumber == "" {
		invoiceNumber = types.GenerateInvoiceNumber()
	}

	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CustomerID:    cust.ID,
		InvoiceNumber: invoiceNumber,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      discount,
		DiscountRate:  req.DiscountRate,
		DiscountType:  req.DiscountType,
		Tax:           req.Tax,
		GrandTotal:    grandTotal,
		DepositAmount: decimal.Zero,
		Currency:      req.Currency,
		DateIssued:    dateIssued,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
		IsSynced:      false,
		BaseModel:     types.GetDefaultBaseModel(),
	}

	// Money received at issue time goes straight into the ledger so new
	// invoices never depend on legacy synthesis.
	if req.InitialDeposit.IsPositive() {
		inv.Payments = []*invoice.PaymentRecord{
			{
				ID:     types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT_RECORD),
				Date:   dateIssued,
				Amount: req.InitialDeposit,
				Note:   invoice.InitialDepositNote,
			},
		}
		inv.DepositAmount = req.InitialDeposit
	}
	inv.Status = types.DeriveInvoiceStatus(inv.DepositAmount, inv.GrandTotal)

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("invoice created",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"customer_id", inv.CustomerID,
		"grand_total", inv.GrandTotal,
		"status", inv.Status,
	)
	return dto.NewInvoiceResponse(inv, cust.Name), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv, s.customerName(ctx, inv.CustomerID)), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *dto.ListInvoicesFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &dto.ListInvoicesFilter{}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, invoice.ListFilter{
		CustomerID: filter.CustomerID,
		Status:     filter.Status,
		Currency:   filter.Currency,
		Sort:       invoice.SortDateIssuedDesc,
	})
	if err != nil {
		return nil, err
	}

	names, err := s.customerNames(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ListInvoicesResponse{
		Items: lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
			return dto.NewInvoiceResponse(inv, nameOrUnknown(names, inv.CustomerID))
		}),
		Total: len(invoices),
	}, nil
}

// DeleteInvoice removes the invoice and its embedded ledger. The
// referenced customer is untouched.
func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.InvoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("invoice deleted", "invoice_id", id)
	return nil
}

func (s *invoiceService) customerName(ctx context.Context, customerID string) string {
	c, err := s.CustomerRepo.Get(ctx, customerID)
	if err != nil {
		return UnknownCustomerName
	}
	return c.Name
}

func (s *invoiceService) customerNames(ctx context.Context) (map[string]string, error) {
	customers, err := s.CustomerRepo.List(ctx, customer.ListFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	return names, nil
}

// UnknownCustomerName is the defensive fallback when an invoice
// references a customer record that is missing. Customers are never
// hard-deleted, so hitting it indicates corrupt data, not normal flow.
const UnknownCustomerName = "Unknown"

func nameOrUnknown(names map[string]string, customerID string) string {
	if name, ok := names[customerID]; ok {
		return name
	}
	return UnknownCustomerName
}
