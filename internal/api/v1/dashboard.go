package v1

import (
	"context"
	"net/http"

	"github.com/asejik/invoice-aso-oke/internal/api/dto"
	"github.com/asejik/invoice-aso-oke/internal/live"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/asejik/invoice-aso-oke/internal/service"
	"github.com/asejik/invoice-aso-oke/internal/types"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service  service.DashboardService
	registry *live.Registry
	log      *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, registry *live.Registry, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, registry: registry, log: log}
}

// GetStats computes the dashboard snapshot for the selected currency
func (h *DashboardHandler) GetStats(c *gin.Context) {
	currency := types.CurrencyCode(c.DefaultQuery("currency", types.CurrencyNGN.String()))

	resp, err := h.service.GetStats(c.Request.Context(), currency)
	if err != nil {
		h.log.Error("Failed to compute dashboard stats", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// StreamStats keeps a live dashboard open over SSE: stats recompute and
// push on every invoice or customer write, no polling.
func (h *DashboardHandler) StreamStats(c *gin.Context) {
	currency := types.CurrencyCode(c.DefaultQuery("currency", types.CurrencyNGN.String()))
	if err := currency.Validate(); err != nil {
		c.Error(err)
		return
	}

	query := live.NewQuery(h.registry,
		[]live.Collection{live.CollectionInvoices, live.CollectionCustomers},
		func(ctx context.Context) (*dto.DashboardStatsResponse, error) {
			return h.service.GetStats(ctx, currency)
		})
	defer query.Close()

	updates := make(chan *dto.DashboardStatsResponse, 8)
	cancel := query.OnChange(func(stats *dto.DashboardStatsResponse) {
		select {
		case updates <- stats:
		default:
		}
	})
	defer cancel()

	initial, err := query.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	streamSSE(c, "stats", initial, updates)
}
