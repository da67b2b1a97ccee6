// internal/handlers/payment/payment_handler.go
package payment

import (
	"net/http"
	"strconv"

	"cctv-service/internal/domain/payment"
	"cctv-service/internal/pkg/response"
	service "cctv-service/internal/service/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Create opens a payment for a quote
func (h *PaymentHandler) Create(c *gin.Context) {
	var req payment.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.paymentService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create payment", err)
		return
	}

	response.Success(c, http.StatusCreated, "payment created", result)
}

// Verify checks a gateway session and settles the payment when paid
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req payment.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	p, err := h.paymentService.Verify(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to verify payment", err)
		return
	}

	response.Success(c, http.StatusOK, "payment verified", p)
}

// ConfirmManual settles a cash or bank transfer payment
func (h *PaymentHandler) ConfirmManual(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payment ID", err)
		return
	}

	p, err := h.paymentService.ConfirmManual(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to confirm payment", err)
		return
	}

	response.Success(c, http.StatusOK, "payment confirmed", p)
}

// Refund reverses a completed payment
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payment ID", err)
		return
	}

	p, err := h.paymentService.Refund(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to refund payment", err)
		return
	}

	response.Success(c, http.StatusOK, "payment refunded", p)
}

// MarkFailed records a declined or abandoned payment
func (h *PaymentHandler) MarkFailed(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payment ID", err)
		return
	}

	p, err := h.paymentService.MarkFailed(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to mark payment failed", err)
		return
	}

	response.Success(c, http.StatusOK, "payment marked failed", p)
}

// Get retrieves a payment by ID
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payment ID", err)
		return
	}

	p, err := h.paymentService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "payment not found", err)
		return
	}

	response.Success(c, http.StatusOK, "payment retrieved", p)
}

// GetByQuote retrieves the payment for a quote. Mounted under
// /quotes/:id/payment, so the path ID is the quote's.
func (h *PaymentHandler) GetByQuote(c *gin.Context) {
	quoteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid quote ID", err)
		return
	}

	p, err := h.paymentService.GetByQuote(c.Request.Context(), quoteID)
	if err != nil {
		response.FromError(c, "payment not found", err)
		return
	}

	response.Success(c, http.StatusOK, "payment retrieved", p)
}

// List retrieves payments with filters
func (h *PaymentHandler) List(c *gin.Context) {
	var filters payment.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.paymentService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list payments", err)
		return
	}

	response.Success(c, http.StatusOK, "payments retrieved", result)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
