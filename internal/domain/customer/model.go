package customer

import (
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/types"
)

// Customer represents a customer in the system. Customers are referenced
// by invoices via CustomerID, never embedded, and are never hard-deleted.
type Customer struct {
	// ID is the unique identifier for the customer
	ID string `db:"id" json:"id"`

	// Name is the name of the customer
	Name string `db:"name" json:"name"`

	// Phone is the primary contact number, also used for search
	Phone string `db:"phone" json:"phone"`

	// Email is optional
	Email string `db:"email" json:"email,omitempty"`

	// IsInternational marks customers outside the merchant's country;
	// such customers must carry a full shipping address
	IsInternational bool `db:"is_international" json:"is_international"`

	Address string `db:"address" json:"address,omitempty"`
	City    string `db:"city" json:"city,omitempty"`
	Country string `db:"country" json:"country,omitempty"`

	types.BaseModel
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return ierr.NewError("customer name is required").
			WithHint("Customer name is required").
			Mark(ierr.ErrValidation)
	}
	if c.Phone == "" {
		return ierr.NewError("customer phone is required").
			WithHint("Customer phone is required").
			Mark(ierr.ErrValidation)
	}
	if c.IsInternational {
		if c.Address == "" || c.City == "" || c.Country == "" {
			return ierr.NewError("incomplete international address").
				WithHint("International customers require address, city and country").
				WithReportableDetails(map[string]any{
					"address": c.Address,
					"city":    c.City,
					"country": c.Country,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}
