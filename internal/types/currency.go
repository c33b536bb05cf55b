package types

import (
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/samber/lo"
)

// CurrencyCode is the closed set of currencies an invoice may be issued in.
// Invoices in different currencies never aggregate together.
type CurrencyCode string

const (
	CurrencyNGN CurrencyCode = "NGN"
	CurrencyUSD CurrencyCode = "USD"
	CurrencyGBP CurrencyCode = "GBP"
	CurrencyEUR CurrencyCode = "EUR"
)

var currencySymbols = map[CurrencyCode]string{
	CurrencyNGN: "₦",
	CurrencyUSD: "$",
	CurrencyGBP: "£",
	CurrencyEUR: "€",
}

func (c CurrencyCode) String() string {
	return string(c)
}

// Symbol returns the display symbol for the currency
func (c CurrencyCode) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return string(c)
}

func SupportedCurrencies() []CurrencyCode {
	return []CurrencyCode{CurrencyNGN, CurrencyUSD, CurrencyGBP, CurrencyEUR}
}

func (c CurrencyCode) Validate() error {
	if !lo.Contains(SupportedCurrencies(), c) {
		return ierr.NewError("invalid currency").
			WithHint("Please provide a valid currency").
			WithReportableDetails(map[string]any{
				"allowed": SupportedCurrencies(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
