package testutil

import (
	"context"

	"github.com/asejik/invoice-aso-oke/internal/domain/document"
	"github.com/asejik/invoice-aso-oke/internal/pdf"
)

// MockPDFGenerator returns a fixed payload and records the last
// document it rendered
type MockPDFGenerator struct {
	LastDocument *document.InvoiceDocument
	RenderCount  int
}

func NewMockPDFGenerator() pdf.Generator {
	return &MockPDFGenerator{}
}

func (g *MockPDFGenerator) RenderInvoicePdf(ctx context.Context, doc *document.InvoiceDocument) ([]byte, error) {
	g.LastDocument = doc
	g.RenderCount++
	return []byte("%PDF-1.4 test"), nil
}
