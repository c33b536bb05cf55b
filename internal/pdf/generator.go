package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/asejik/invoice-aso-oke/internal/domain/document"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Generator defines the interface for PDF generation operations
type Generator interface {
	RenderInvoicePdf(ctx context.Context, doc *document.InvoiceDocument) ([]byte, error)
}

type generator struct {
	log *logger.Logger
}

// NewGenerator creates a new PDF generator
func NewGenerator(log *logger.Logger) Generator {
	return &generator{log: log}
}

// RenderInvoicePdf lays out the resolved invoice document as a single
// A4 page (flowing onto more pages for long item lists). It only
// consumes what the ledger already derived: status, the resolved
// payment history and the fully-paid flag are taken as given.
func (g *generator) RenderInvoicePdf(ctx context.Context, doc *document.InvoiceDocument) ([]byte, error) {
	inv := doc.Invoice
	business := doc.Business
	cust := doc.Customer

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header: business identity left, logo right
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(120, 10, business.BusinessName)
	g.placeLogo(pdf, business.LogoImage)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(120, 5, business.Address)
	pdf.Ln(5)
	contact := business.Phone
	if business.Email != "" {
		contact += "  |  " + business.Email
	}
	pdf.Cell(120, 5, contact)
	pdf.Ln(12)

	// Invoice meta
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(100, 8, "INVOICE  #"+inv.InvoiceNumber)
	if doc.IsFullyPaid {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 140, 60)
		pdf.CellFormat(80, 8, "PAID", "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(100, 5, "Date Issued: "+inv.DateIssued.Format("02 Jan 2006"))
	pdf.Ln(5)
	if inv.DueDate != nil {
		pdf.Cell(100, 5, "Due Date: "+inv.DueDate.Format("02 Jan 2006"))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Bill to
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(60, 6, "BILL TO")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(100, 5, cust.Name)
	pdf.Ln(5)
	pdf.Cell(100, 5, cust.Phone)
	pdf.Ln(5)
	if cust.IsInternational {
		pdf.Cell(100, 5, fmt.Sprintf("%s, %s, %s", cust.Address, cust.City, cust.Country))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Items table
	currency := inv.Currency.String()
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 1, "R", true, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, item := range inv.Items {
		pdf.CellFormat(90, 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, money(currency, item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, money(currency, item.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// Totals
	g.totalRow(pdf, "Subtotal", money(currency, inv.Subtotal), false)
	if inv.Discount.IsPositive() {
		g.totalRow(pdf, "Discount", "-"+money(currency, inv.Discount), false)
	}
	if inv.Tax.IsPositive() {
		g.totalRow(pdf, "Tax", money(currency, inv.Tax), false)
	}
	g.totalRow(pdf, "Grand Total", money(currency, inv.GrandTotal), true)
	g.totalRow(pdf, "Amount Paid", money(currency, inv.DepositAmount), false)
	g.totalRow(pdf, "Balance Due", money(currency, inv.BalanceDue()), true)
	pdf.Ln(4)

	// Payment history
	if len(doc.History) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(60, 6, "PAYMENT HISTORY")
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(40, 6, "Date", "1", 0, "L", true, 0, "")
		pdf.CellFormat(40, 6, "Amount", "1", 0, "R", true, 0, "")
		pdf.CellFormat(100, 6, "Note", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, rec := range doc.History {
			pdf.CellFormat(40, 6, rec.Date.Format("02 Jan 2006"), "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, money(currency, rec.Amount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(100, 6, rec.Note, "1", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	// Bank details
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(60, 6, "PAYMENT DETAILS")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(100, 5, "Bank: "+business.BankName)
	pdf.Ln(5)
	pdf.Cell(100, 5, "Account Number: "+business.AccountNumber)
	pdf.Ln(5)
	pdf.Cell(100, 5, "Account Name: "+business.AccountName)
	pdf.Ln(8)

	// Footer
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(130, 130, 130)
	pdf.MultiCell(180, 4, business.FooterText(), "T", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to render the invoice PDF").
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}

func (g *generator) totalRow(pdf *gofpdf.Fpdf, label, value string, bold bool) {
	if bold {
		pdf.SetFont("Arial", "B", 10)
	} else {
		pdf.SetFont("Arial", "", 9)
	}
	pdf.CellFormat(145, 6, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, value, "", 1, "R", false, 0, "")
}

// placeLogo decodes the inline logo and draws it top right. A logo that
// cannot be decoded is skipped rather than failing the render.
func (g *generator) placeLogo(pdf *gofpdf.Fpdf, logoImage string) {
	if logoImage == "" {
		return
	}
	// the logo may be stored as a data URL
	if idx := strings.Index(logoImage, "base64,"); idx >= 0 {
		logoImage = logoImage[idx+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(logoImage)
	if err != nil {
		g.log.Warnw("skipping invoice logo, invalid base64", "error", err)
		return
	}
	imageType := sniffImageType(data)
	if imageType == "" {
		g.log.Warnw("skipping invoice logo, unsupported image format")
		return
	}
	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data))
	pdf.ImageOptions("logo", 165, 12, 30, 0, false, opts, 0, "")
}

func sniffImageType(data []byte) string {
	if len(data) > 8 && bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		return "PNG"
	}
	if len(data) > 2 && data[0] == 0xFF && data[1] == 0xD8 {
		return "JPG"
	}
	return ""
}

// money formats an amount with its currency code. Core PDF fonts cannot
// represent every currency symbol, so the code is used instead.
func money(currency string, amount decimal.Decimal) string {
	return fmt.Sprintf("%s %s", currency, amount.StringFixed(2))
}
