package dto

import (
	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/asejik/invoice-aso-oke/internal/validator"
)

type CreateCustomerRequest struct {
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	IsInternational bool   `json:"is_international"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Country         string `json:"country"`
}

func (r *CreateCustomerRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.IsInternational && (r.Address == "" || r.City == "" || r.Country == "") {
		return ierr.NewError("incomplete international address").
			WithHint("International customers require address, city and country").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateCustomerRequest) ToCustomer() *customer.Customer {
	return &customer.Customer{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:            r.Name,
		Phone:           r.Phone,
		Email:           r.Email,
		IsInternational: r.IsInternational,
		Address:         r.Address,
		City:            r.City,
		Country:         r.Country,
		BaseModel:       types.GetDefaultBaseModel(),
	}
}

type UpdateCustomerRequest struct {
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	IsInternational bool   `json:"is_international"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Country         string `json:"country"`
}

func (r *UpdateCustomerRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.IsInternational && (r.Address == "" || r.City == "" || r.Country == "") {
		return ierr.NewError("incomplete international address").
			WithHint("International customers require address, city and country").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Apply copies the request onto an existing customer, preserving its
// identity and creation time
func (r *UpdateCustomerRequest) Apply(c *customer.Customer) {
	c.Name = r.Name
	c.Phone = r.Phone
	c.Email = r.Email
	c.IsInternational = r.IsInternational
	c.Address = r.Address
	c.City = r.City
	c.Country = r.Country
}

type CustomerResponse struct {
	*customer.Customer
}

func NewCustomerResponse(c *customer.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{Customer: c}
}

type ListCustomersResponse struct {
	Items []*CustomerResponse `json:"items"`
	Total int                 `json:"total"`
}
