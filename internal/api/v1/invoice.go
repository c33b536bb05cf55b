package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/asejik/invoice-aso-oke/internal/api/dto"
	ierr "github.com/asejik/invoice-aso-oke/internal/errors"
	"github.com/asejik/invoice-aso-oke/internal/live"
	"github.com/asejik/invoice-aso-oke/internal/logger"
	"github.com/asejik/invoice-aso-oke/internal/service"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	service   service.InvoiceService
	ledger    service.LedgerService
	documents service.DocumentService
	registry  *live.Registry
	log       *logger.Logger
}

func NewInvoiceHandler(
	service service.InvoiceService,
	ledger service.LedgerService,
	documents service.DocumentService,
	registry *live.Registry,
	log *logger.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		service:   service,
		ledger:    ledger,
		documents: documents,
		registry:  registry,
		log:       log,
	}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateInvoice(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var filter dto.ListInvoicesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListInvoices(c.Request.Context(), &filter)
	if err != nil {
		h.log.Error("Failed to list invoices", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.DeleteInvoice(c.Request.Context(), id); err != nil {
		h.log.Error("Failed to delete invoice", "error", err)
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RecordPayment appends one payment to the invoice's ledger. The
// response carries an overpayment flag when the deposit now exceeds the
// grand total; the payment is recorded either way.
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.ledger.RecordPayment(c.Request.Context(), id, &req)
	if err != nil {
		h.log.Error("Failed to record payment", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *InvoiceHandler) GetPaymentHistory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.ledger.PaymentHistory(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get payment history", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DownloadPDF renders the invoice against a snapshot taken now; a
// payment recorded while the render is in flight does not change the
// document being produced.
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	data, filename, err := h.documents.GenerateInvoicePDF(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to generate invoice pdf", "error", err)
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// StreamInvoices pushes the invoice list over SSE whenever an invoice
// or customer write lands. The live query is torn down when the client
// disconnects.
func (h *InvoiceHandler) StreamInvoices(c *gin.Context) {
	query := live.NewQuery(h.registry,
		[]live.Collection{live.CollectionInvoices, live.CollectionCustomers},
		func(ctx context.Context) (*dto.ListInvoicesResponse, error) {
			return h.service.ListInvoices(ctx, &dto.ListInvoicesFilter{})
		})
	defer query.Close()

	updates := make(chan *dto.ListInvoicesResponse, 8)
	cancel := query.OnChange(func(resp *dto.ListInvoicesResponse) {
		select {
		case updates <- resp:
		default:
			// slow client, it will catch up on the next change
		}
	})
	defer cancel()

	initial, err := query.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	streamSSE(c, "invoices", initial, updates)
}

// streamSSE writes the initial value then every update as server-sent
// events until the client goes away
func streamSSE[T any](c *gin.Context, event string, initial T, updates <-chan T) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent(event, initial)
	c.Writer.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case value := <-updates:
			c.SSEvent(event, value)
			c.Writer.Flush()
		}
	}
}
