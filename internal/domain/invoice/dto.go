// internal/domain/invoice/dto.go
package invoice

type GenerateRequest struct {
	Subtotal float64 `json:"subtotal" binding:"required,gt=0"`
	Notes    string  `json:"notes"`
}

type ListFilters struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ListResponse struct {
	Invoices   []Invoice `json:"invoices"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}
