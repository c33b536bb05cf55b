package service

import (
	"github.com/asejik/invoice-aso-oke/internal/testutil"
)

// newTestServiceParams wires ServiceParams from a base suite's stores
func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		Registry:     s.GetRegistry(),
		PDFGenerator: testutil.NewMockPDFGenerator(),
		ProfileRepo:  stores.ProfileRepo,
		CustomerRepo: stores.CustomerRepo,
		InvoiceRepo:  stores.InvoiceRepo,
	}
}
