package repository

import (
	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	"github.com/asejik/invoice-aso-oke/internal/domain/profile"
	"github.com/asejik/invoice-aso-oke/internal/live"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/asejik/invoice-aso-oke/internal/sqlite"
	sqliteRepo "github.com/asejik/invoice-aso-oke/internal/repository/sqlite"
)

func NewProfileRepository(client *sqlite.Client, registry *live.Registry, logger *logger.Logger) profile.Repository {
	return sqliteRepo.NewProfileRepository(client, registry, logger)
}

func NewCustomerRepository(client *sqlite.Client, registry *live.Registry, logger *logger.Logger) customer.Repository {
	return sqliteRepo.NewCustomerRepository(client, registry, logger)
}

func NewInvoiceRepository(client *sqlite.Client, registry *live.Registry, logger *logger.Logger) invoice.Repository {
	return sqliteRepo.NewInvoiceRepository(client, registry, logger)
}
