package dto

import (
	"time"

	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/shopspring/decimal"
)

// DashboardStatsResponse is the currency-partitioned snapshot shown on
// the dashboard. It is recomputed on every read, never cached.
type DashboardStatsResponse struct {
	Currency types.CurrencyCode `json:"currency"`

	// Collected is actual cash in hand: the full grand total for paid
	// invoices, the deposit for everything else
	Collected decimal.Decimal `json:"collected"`

	// Pending is money still owed across the partition
	Pending decimal.Decimal `json:"pending"`

	// Count of invoices in the selected currency
	Count int `json:"count"`

	// Recent is the 3 most recently issued invoices, newest first
	Recent []*RecentInvoice `json:"recent"`
}

// RecentInvoice is a dashboard row: the invoice essentials joined with
// the customer's display name
type RecentInvoice struct {
	ID            string              `json:"id"`
	InvoiceNumber string              `json:"invoice_number"`
	CustomerName  string              `json:"customer_name"`
	GrandTotal    decimal.Decimal     `json:"grand_total"`
	Currency      types.CurrencyCode  `json:"currency"`
	Status        types.InvoiceStatus `json:"status"`
	DateIssued    time.Time           `json:"date_issued"`
}
