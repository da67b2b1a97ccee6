// internal/domain/quote/dto.go
package quote

import (
	"regexp"
	"strings"

	xerrors "cctv-service/internal/pkg/errors"
)

type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
	Lang    string `json:"lang"`

	LocationID      int64   `json:"location_id"`
	CameraCount     int     `json:"camera_count"`
	Resolution      string  `json:"resolution"`
	DifficultyLevel string  `json:"difficulty_level"`
	EstimatedPrice  float64 `json:"estimated_price"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListFilters struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ListResponse struct {
	Quotes     []QuoteRequest `json:"quotes"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var phoneStrip = regexp.MustCompile(`[\s\-()+]`)

// Normalize trims and lowercases the fields that need it before validation.
func (r *SubmitRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Service = strings.TrimSpace(r.Service)
	r.Message = strings.TrimSpace(r.Message)
	if r.Service == "" {
		r.Service = "General Inquiry"
	}
	switch r.Lang {
	case "ar", "fr", "en":
	default:
		r.Lang = "ar"
	}
}

// Validate checks the contact fields and returns a field -> message map on
// failure. Phone numbers are accepted in loose international formats.
func (r *SubmitRequest) Validate() (map[string]string, error) {
	errs := map[string]string{}

	if len(r.Name) < 2 || len(r.Name) > 100 {
		errs["name"] = "invalid name"
	}
	if r.Email == "" || !emailPattern.MatchString(r.Email) {
		errs["email"] = "invalid email address"
	}
	digits := phoneStrip.ReplaceAllString(r.Phone, "")
	if len(digits) < 8 || !isDigits(digits) {
		errs["phone"] = "invalid phone number"
	}
	if len(r.Message) < 10 {
		errs["message"] = "message must be at least 10 characters"
	}

	if len(errs) > 0 {
		return errs, xerrors.ErrInvalidInput
	}
	return nil, nil
}

// HasPricingDetails reports whether the submission carries everything the
// pricing engine needs.
func (r *SubmitRequest) HasPricingDetails() bool {
	return r.LocationID > 0 && r.CameraCount > 0 && r.Resolution != "" && r.DifficultyLevel != ""
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
