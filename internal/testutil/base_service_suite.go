package testutil

import (
	"context"
	"time"

	"github.com/asejik/invoice-aso-oke/internal/config"
	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	"github.com/asejik/invoice-aso-oke/internal/domain/profile"
	"github.com/asejik/invoice-aso-oke/internal/live"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/asejik/invoice-aso-oke/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories for tests
type Stores struct {
	ProfileRepo  profile.Repository
	CustomerRepo customer.Repository
	InvoiceRepo  invoice.Repository
}

// BaseServiceTestSuite provides common functionality for all service
// test suites: in-memory stores backed by a real live registry, a test
// logger and a test configuration.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	stores   Stores
	registry *live.Registry
	logger   *logger.Logger
	config   *config.Configuration
	now      time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = &config.Configuration{
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
	}
	s.logger = logger.NewNopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.registry = live.NewRegistry(s.logger)
	s.stores = Stores{
		ProfileRepo:  NewInMemoryProfileStore(s.registry),
		CustomerRepo: NewInMemoryCustomerStore(s.registry),
		InvoiceRepo:  NewInMemoryInvoiceStore(s.registry),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.ProfileRepo.(*InMemoryProfileStore).Clear()
	s.stores.CustomerRepo.(*InMemoryCustomerStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetRegistry returns the live registry shared by the test stores
func (s *BaseServiceTestSuite) GetRegistry() *live.Registry {
	return s.registry
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
