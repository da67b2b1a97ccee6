// internal/domain/quote/entity.go
package quote

import (
	"database/sql"
	"time"
)

type QuoteRequest struct {
	ID        int64  `json:"id" db:"id"`
	Reference string `json:"reference" db:"reference"`

	// Contact details
	Name    string `json:"name" db:"name"`
	Email   string `json:"email" db:"email"`
	Phone   string `json:"phone" db:"phone"`
	Service string `json:"service" db:"service"`
	Message string `json:"message" db:"message"`
	Lang    string `json:"lang" db:"lang"`

	// Pricing details (optional at submission, required for pricing)
	LocationID      sql.NullInt64   `json:"location_id,omitempty" db:"location_id"`
	CameraCount     sql.NullInt32   `json:"camera_count,omitempty" db:"camera_count"`
	Resolution      sql.NullString  `json:"resolution,omitempty" db:"resolution"`
	DifficultyLevel sql.NullString  `json:"difficulty_level,omitempty" db:"difficulty_level"`
	EstimatedPrice  sql.NullFloat64 `json:"estimated_price,omitempty" db:"estimated_price"`

	// Metadata
	IPAddress sql.NullString `json:"-" db:"ip_address"`
	UserAgent sql.NullString `json:"-" db:"user_agent"`
	Status    Status         `json:"status" db:"status"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

type QuoteStats struct {
	Total          int64   `json:"total"`
	NewLast7Days   int64   `json:"new"`
	Converted      int64   `json:"converted"`
	ConversionRate float64 `json:"conversion_rate"`
}
