// internal/handlers/invoice/invoice_handler.go
package invoice

import (
	"net/http"
	"strconv"

	"cctv-service/internal/domain/invoice"
	"cctv-service/internal/pkg/response"
	service "cctv-service/internal/service/invoice"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// Generate issues the invoice for a quote. Mounted under
// /quotes/:id/invoice, so the path ID is the quote's.
func (h *InvoiceHandler) Generate(c *gin.Context) {
	quoteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid quote ID", err)
		return
	}

	var req invoice.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	inv, err := h.invoiceService.Generate(c.Request.Context(), quoteID, &req)
	if err != nil {
		response.FromError(c, "failed to generate invoice", err)
		return
	}

	response.Success(c, http.StatusCreated, "invoice generated", inv)
}

// Get retrieves an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid invoice ID", err)
		return
	}

	inv, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "invoice not found", err)
		return
	}

	response.Success(c, http.StatusOK, "invoice retrieved", inv)
}

// GetByQuote retrieves the invoice for a quote, addressed by the quote ID.
func (h *InvoiceHandler) GetByQuote(c *gin.Context) {
	quoteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid quote ID", err)
		return
	}

	inv, err := h.invoiceService.GetByQuote(c.Request.Context(), quoteID)
	if err != nil {
		response.FromError(c, "invoice not found", err)
		return
	}

	response.Success(c, http.StatusOK, "invoice retrieved", inv)
}

// List retrieves invoices with filters
func (h *InvoiceHandler) List(c *gin.Context) {
	var filters invoice.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.invoiceService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list invoices", err)
		return
	}

	response.Success(c, http.StatusOK, "invoices retrieved", result)
}
