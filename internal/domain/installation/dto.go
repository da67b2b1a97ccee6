// internal/domain/installation/dto.go
package installation

import "time"

type AssignRequest struct {
	TechnicianID  int64     `json:"technician_id" binding:"required"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
}

type CompleteRequest struct {
	LaborHours   float64 `json:"labor_hours" binding:"required,gt=0"`
	Issues       string  `json:"issues"`
	Notes        string  `json:"notes"`
	Satisfaction *int    `json:"satisfaction" binding:"omitempty,min=1,max=5"`
}

type FailRequest struct {
	IssueDescription string `json:"issue_description" binding:"required"`
	Notes            string `json:"notes"`
}

type FeedbackRequest struct {
	Satisfaction int `json:"satisfaction" binding:"required,min=1,max=5"`
}

type ListFilters struct {
	Status       string `form:"status"`
	TechnicianID int64  `form:"technician_id"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

type ListResponse struct {
	Installations []Installation `json:"installations"`
	Total         int64          `json:"total"`
	Page          int            `json:"page"`
	PageSize      int            `json:"page_size"`
	TotalPages    int            `json:"total_pages"`
}
