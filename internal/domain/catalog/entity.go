// internal/domain/catalog/entity.go
package catalog

import (
	"database/sql"
	"time"
)

// Location is seeded reference data: a service area with its pricing
// multiplier and travel fee. Read-only to the pricing engine.
type Location struct {
	ID                   int64     `json:"id" db:"id"`
	Name                 string    `json:"name" db:"name"`
	DifficultyMultiplier float64   `json:"difficulty_multiplier" db:"difficulty_multiplier"`
	TravelFee            float64   `json:"travel_fee" db:"travel_fee"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
}

// CameraSpec is a camera model tier keyed by resolution.
type CameraSpec struct {
	ID          int64          `json:"id" db:"id"`
	Resolution  string         `json:"resolution" db:"resolution"`
	BasePrice   float64        `json:"base_price" db:"base_price"`
	Description sql.NullString `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// Difficulty is an installation complexity tier keyed by level.
type Difficulty struct {
	ID             int64          `json:"id" db:"id"`
	Level          string         `json:"level" db:"level"`
	CostMultiplier float64        `json:"cost_multiplier" db:"cost_multiplier"`
	HoursRequired  float64        `json:"hours_required" db:"hours_required"`
	Description    sql.NullString `json:"description,omitempty" db:"description"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}
