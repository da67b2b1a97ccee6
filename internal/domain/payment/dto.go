// internal/domain/payment/dto.go
package payment

type CreateRequest struct {
	QuoteID       int64   `json:"quote_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Notes         string  `json:"notes"`
}

// CreateResponse is returned on payment creation. SessionID and PaymentURL
// are only set for gateway-backed methods.
type CreateResponse struct {
	Payment    *Payment `json:"payment"`
	SessionID  string   `json:"session_id,omitempty"`
	PaymentURL string   `json:"payment_url,omitempty"`
}

type VerifyRequest struct {
	PaymentID int64  `json:"payment_id" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}

type ListFilters struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ListResponse struct {
	Payments   []Payment `json:"payments"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}
