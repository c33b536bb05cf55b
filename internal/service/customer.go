package service

import (
	"context"
	"time"

	"github.com/asejik/invoice-aso-oke/internal/api/dto"
	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	"github.com/samber/lo"
)

// CustomerService manages the customer book. Customers are updated in
// place by id and never deleted; invoices only ever reference them.
type CustomerService interface {
	CreateCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, id string, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context, search string) (*dto.ListCustomersResponse, error)
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{ServiceParams: params}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToCustomer()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.CustomerRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("customer created", "customer_id", c.ID, "name", c.Name)
	return dto.NewCustomerResponse(c), nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(c)
	c.UpdatedAt = time.Now().UTC()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.CustomerRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return dto.NewCustomerResponse(c), nil
}

func (s *customerService) ListCustomers(ctx context.Context, search string) (*dto.ListCustomersResponse, error) {
	customers, err := s.CustomerRepo.List(ctx, customer.ListFilter{Search: search})
	if err != nil {
		return nil, err
	}

	return &dto.ListCustomersResponse{
		Items: lo.Map(customers, func(c *customer.Customer, _ int) *dto.CustomerResponse {
			return dto.NewCustomerResponse(c)
		}),
		Total: len(customers),
	}, nil
}
