// internal/handlers/quote/quote_handler.go
package quote

import (
	"net/http"
	"strconv"

	"cctv-service/internal/domain/quote"
	"cctv-service/internal/pkg/response"
	service "cctv-service/internal/service/quote"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
}

func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// Submit accepts a public quote request.
func (h *QuoteHandler) Submit(c *gin.Context) {
	var req quote.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	q, fieldErrs, err := h.quoteService.Submit(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if fieldErrs != nil {
			response.Error(c, http.StatusBadRequest, "validation failed", err, fieldErrs)
			return
		}
		response.FromError(c, "failed to submit quote", err)
		return
	}

	response.Success(c, http.StatusCreated, "quote submitted successfully", q)
}

// Get retrieves a quote by ID
func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid quote ID", err)
		return
	}

	q, err := h.quoteService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "quote not found", err)
		return
	}

	response.Success(c, http.StatusOK, "quote retrieved", q)
}

// List retrieves quotes with filters
func (h *QuoteHandler) List(c *gin.Context) {
	var filters quote.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.quoteService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list quotes", err)
		return
	}

	response.Success(c, http.StatusOK, "quotes retrieved", result)
}

// UpdateStatus moves a quote through its lifecycle
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid quote ID", err)
		return
	}

	var req quote.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	q, err := h.quoteService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, "failed to update quote status", err)
		return
	}

	response.Success(c, http.StatusOK, "quote status updated", q)
}

// Stats returns quote counters for the dashboard
func (h *QuoteHandler) Stats(c *gin.Context) {
	stats, err := h.quoteService.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to load quote stats", err)
		return
	}

	response.Success(c, http.StatusOK, "quote stats retrieved", stats)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
