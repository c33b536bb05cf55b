package profile

import (
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/types"
)

// SingletonID is the fixed identity key of the one business profile
// record. The store enforces it so there is never any ambiguity about
// which record is canonical.
const SingletonID = "profile_default"

// DefaultFooterText is used on rendered invoices when the profile does
// not override it.
const DefaultFooterText = "IMPORTANT: PRODUCTION STARTS ONLY AFTER PAYMENT CONFIRMATION.\nWe do not start work on credit. Thank you for your understanding."

// BusinessProfile is the merchant's own identity as it appears on
// invoices: business and bank details, an optional logo, and the footer
// disclaimer.
type BusinessProfile struct {
	ID           string `db:"id" json:"id"`
	BusinessName string `db:"business_name" json:"business_name"`
	OwnerName    string `db:"owner_name" json:"owner_name,omitempty"`
	Address      string `db:"address" json:"address"`
	Phone        string `db:"phone" json:"phone"`
	Email        string `db:"email" json:"email,omitempty"`

	// Bank details printed on every invoice
	BankName      string `db:"bank_name" json:"bank_name"`
	AccountNumber string `db:"account_number" json:"account_number"`
	AccountName   string `db:"account_name" json:"account_name"`

	// LogoImage holds the logo inline as base64 encoded text so the
	// profile stays fully local
	LogoImage         string `db:"logo_image" json:"logo_image,omitempty"`
	InvoiceFooterText string `db:"invoice_footer_text" json:"invoice_footer_text,omitempty"`

	types.BaseModel
}

// FooterText returns the configured footer or the default disclaimer
func (p *BusinessProfile) FooterText() string {
	if p.InvoiceFooterText != "" {
		return p.InvoiceFooterText
	}
	return DefaultFooterText
}

func (p *BusinessProfile) Validate() error {
	if p.BusinessName == "" {
		return ierr.NewError("business name is required").
			WithHint("Business name is required").
			Mark(ierr.ErrValidation)
	}
	if p.Address == "" {
		return ierr.NewError("address is required").
			WithHint("Business address is required").
			Mark(ierr.ErrValidation)
	}
	if p.Phone == "" {
		return ierr.NewError("phone is required").
			WithHint("Business phone is required").
			Mark(ierr.ErrValidation)
	}
	if p.BankName == "" || p.AccountNumber == "" || p.AccountName == "" {
		return ierr.NewError("bank details are required").
			WithHint("Bank name, account number and account name are required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
