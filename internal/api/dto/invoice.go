package dto

import (
	"time"

	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/asejik/invoice-aso-oke/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateInvoiceItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type CreateInvoiceRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`

	// InvoiceNumber is generated when not supplied
	InvoiceNumber string `json:"invoice_number"`

	Items []CreateInvoiceItemRequest `json:"items" validate:"required,min=1,dive"`

	// Discount is a fixed deduction; DiscountRate plus DiscountType
	// percentage computes it from the subtotal instead
	Discount     decimal.Decimal    `json:"discount"`
	DiscountRate *decimal.Decimal   `json:"discount_rate,omitempty"`
	DiscountType types.DiscountType `json:"discount_type,omitempty"`

	Tax decimal.Decimal `json:"tax"`

	// InitialDeposit records money received at issue time as the first
	// ledger entry
	InitialDeposit decimal.Decimal `json:"initial_deposit"`

	Currency   types.CurrencyCode `json:"currency" validate:"required"`
	DateIssued *time.Time         `json:"date_issued,omitempty"`
	DueDate    *time.Time         `json:"due_date,omitempty"`
	Notes      string             `json:"notes,omitempty"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Currency.Validate(); err != nil {
		return err
	}
	for _, item := range r.Items {
		if item.UnitPrice.IsNegative() {
			return ierr.NewError("item unit price must be non negative").
				WithHint("Item unit price must not be negative").
				Mark(ierr.ErrValidation)
		}
	}
	if r.Discount.IsNegative() || r.Tax.IsNegative() {
		return ierr.NewError("discount and tax must be non negative").
			WithHint("Discount and tax must not be negative").
			Mark(ierr.ErrValidation)
	}
	if r.InitialDeposit.IsNegative() {
		return ierr.NewError("initial deposit must be non negative").
			WithHint("Initial deposit must not be negative").
			Mark(ierr.ErrValidation)
	}
	if r.DiscountType != "" {
		if err := r.DiscountType.Validate(); err != nil {
			return err
		}
		if r.DiscountRate == nil {
			return ierr.NewError("discount rate is required with a discount type").
				WithHint("Provide a discount rate with the discount type").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// InvoiceResponse joins the invoice with its customer's display name
type InvoiceResponse struct {
	*invoice.Invoice
	CustomerName string          `json:"customer_name"`
	BalanceDue   decimal.Decimal `json:"balance_due"`
}

func NewInvoiceResponse(inv *invoice.Invoice, customerName string) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &InvoiceResponse{
		Invoice:      inv,
		CustomerName: customerName,
		BalanceDue:   inv.BalanceDue(),
	}
}

type ListInvoicesResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}

// ListInvoicesFilter carries the query-string filters of the list endpoint
type ListInvoicesFilter struct {
	CustomerID string              `form:"customer_id"`
	Status     types.InvoiceStatus `form:"status"`
	Currency   types.CurrencyCode  `form:"currency"`
}

func (f *ListInvoicesFilter) Validate() error {
	if f.Status != "" {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	if f.Currency != "" {
		if err := f.Currency.Validate(); err != nil {
			return err
		}
	}
	return nil
}
