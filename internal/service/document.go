package service

import (
	"context"
	"fmt"

	"github.com/asejik/invoice-aso-oke/internal/domain/document"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
)

// DocumentService resolves an invoice into the immutable snapshot the
// renderer consumes and drives PDF generation. Rendering operates on
// the snapshot taken at invocation time; a concurrent ledger write does
// not affect a render already in flight.
type DocumentService interface {
	ResolveInvoiceDocument(ctx context.Context, invoiceID string) (*document.InvoiceDocument, error)
	// GenerateInvoicePDF returns the rendered bytes and a suggested
	// filename derived from the invoice number
	GenerateInvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error)
}

type documentService struct {
	ServiceParams
}

func NewDocumentService(params ServiceParams) DocumentService {
	return &documentService{ServiceParams: params}
}

func (s *documentService) ResolveInvoiceDocument(ctx context.Context, invoiceID string) (*document.InvoiceDocument, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	business, err := s.ProfileRepo.Get(ctx)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("business profile not set up").
				WithHint("Set up your business profile before generating documents").
				Mark(ierr.ErrMissingReference)
		}
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, inv.CustomerID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("invoice customer is missing").
				WithHintf("Customer %s referenced by the invoice was not found", inv.CustomerID).
				Mark(ierr.ErrMissingReference)
		}
		return nil, err
	}

	return &document.InvoiceDocument{
		Invoice:     inv,
		Business:    business,
		Customer:    cust,
		IsFullyPaid: inv.IsFullyPaid(),
		History:     inv.ResolvePaymentHistory(),
	}, nil
}

func (s *documentService) GenerateInvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	doc, err := s.ResolveInvoiceDocument(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.PDFGenerator.RenderInvoicePdf(ctx, doc)
	if err != nil {
		return nil, "", err
	}

	s.Logger.Infow("invoice pdf generated",
		"invoice_id", invoiceID,
		"invoice_number", doc.Invoice.InvoiceNumber,
		"bytes", len(data),
	)
	return data, fmt.Sprintf("%s.pdf", doc.Invoice.InvoiceNumber), nil
}
