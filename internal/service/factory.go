package service

import (
	"github.com/asejik/invoice-aso-oke/internal/config"
	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	"github.com/asejik/invoice-aso-oke/internal/domain/profile"
	"github.com/asejik/invoice-aso-oke/internal/live"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/asejik/invoice-aso-oke/internal/pdf"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger   *logger.Logger
	Config   *config.Configuration
	Registry *live.Registry

	PDFGenerator pdf.Generator

	// Repositories
	ProfileRepo  profile.Repository
	CustomerRepo customer.Repository
	InvoiceRepo  invoice.Repository
}

func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	registry *live.Registry,
	pdfGenerator pdf.Generator,
	profileRepo profile.Repository,
	customerRepo customer.Repository,
	invoiceRepo invoice.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		Registry:     registry,
		PDFGenerator: pdfGenerator,
		ProfileRepo:  profileRepo,
		CustomerRepo: customerRepo,
		InvoiceRepo:  invoiceRepo,
	}
}
