package service

import (
	"context"
	"sort"

	"github.com/asejik/invoice-aso-oke/internal/api/dto"
	"github.com/asejik/invoice-aso-oke/internal/domain/customer"
	"github.com/asejik/invoice-aso-oke/internal/domain/invoice"
	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DashboardService computes currency-partitioned statistics over the
// full invoice set. Everything runs on read; nothing here is persisted
// or cached, so a stats read is always consistent with the ledger.
type DashboardService interface {
	GetStats(ctx context.Context, currency types.CurrencyCode) (*dto.DashboardStatsResponse, error)
}

type dashboardService struct {
	ServiceParams
}

func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{ServiceParams: params}
}

const recentInvoiceCount = 3

func (s *dashboardService) GetStats(ctx context.Context, currency types.CurrencyCode) (*dto.DashboardStatsResponse, error) {
	if err := currency.Validate(); err != nil {
		return nil, err
	}

	// insertion order, so date ties below resolve deterministically
	invoices, err := s.InvoiceRepo.List(ctx, invoice.ListFilter{})
	if err != nil {
		return nil, err
	}

	filtered := lo.Filter(invoices, func(inv *invoice.Invoice, _ int) bool {
		return inv.Currency == currency
	})

	collected := decimal.Zero
	pending := decimal.Zero
	for _, inv := range filtered {
		// a paid invoice contributes its full grand total, anything
		// else contributes just the deposit received so far
		cashIn := inv.DepositAmount
		if inv.Status == types.InvoiceStatusPaid {
			cashIn = inv.GrandTotal
		}
		collected = collected.Add(cashIn)
		pending = pending.Add(inv.GrandTotal.Sub(cashIn))
	}

	recent := make([]*invoice.Invoice, len(filtered))
	copy(recent, filtered)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].DateIssued.After(recent[j].DateIssued)
	})
	if len(recent) > recentInvoiceCount {
		recent = recent[:recentInvoiceCount]
	}

	names, err := s.customerNames(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		Currency:  currency,
		Collected: collected,
		Pending:   pending,
		Count:     len(filtered),
		Recent: lo.Map(recent, func(inv *invoice.Invoice, _ int) *dto.RecentInvoice {
			return &dto.RecentInvoice{
				ID:            inv.ID,
				InvoiceNumber: inv.InvoiceNumber,
				CustomerName:  nameOrUnknown(names, inv.CustomerID),
				GrandTotal:    inv.GrandTotal,
				Currency:      inv.Currency,
				Status:        inv.Status,
				DateIssued:    inv.DateIssued,
			}
		}),
	}, nil
}

func (s *dashboardService) customerNames(ctx context.Context) (map[string]string, error) {
	customers, err := s.CustomerRepo.List(ctx, customer.ListFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	return names, nil
}
