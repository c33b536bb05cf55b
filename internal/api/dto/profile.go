package dto

import (
	"github.com/asejik/invoice-aso-oke/internal/domain/profile"
	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/asejik/invoice-aso-oke/internal/validator"
)

type UpdateProfileRequest struct {
	BusinessName      string `json:"business_name" validate:"required"`
	OwnerName         string `json:"owner_name"`
	Address           string `json:"address" validate:"required"`
	Phone             string `json:"phone" validate:"required"`
	Email             string `json:"email" validate:"omitempty,email"`
	BankName          string `json:"bank_name" validate:"required"`
	AccountNumber     string `json:"account_number" validate:"required"`
	AccountName       string `json:"account_name" validate:"required"`
	LogoImage         string `json:"logo_image"`
	InvoiceFooterText string `json:"invoice_footer_text"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *UpdateProfileRequest) ToProfile() *profile.BusinessProfile {
	return &profile.BusinessProfile{
		ID:                profile.SingletonID,
		BusinessName:      r.BusinessName,
		OwnerName:         r.OwnerName,
		Address:           r.Address,
		Phone:             r.Phone,
		Email:             r.Email,
		BankName:          r.BankName,
		AccountNumber:     r.AccountNumber,
		AccountName:       r.AccountName,
		LogoImage:         r.LogoImage,
		InvoiceFooterText: r.InvoiceFooterText,
		BaseModel:         types.GetDefaultBaseModel(),
	}
}

type ProfileResponse struct {
	*profile.BusinessProfile
}

func NewProfileResponse(p *profile.BusinessProfile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{BusinessProfile: p}
}
