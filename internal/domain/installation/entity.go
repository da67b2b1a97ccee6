// internal/domain/installation/entity.go
package installation

import (
	"database/sql"
	"time"
)

type Installation struct {
	ID           int64         `json:"id" db:"id"`
	QuoteID      int64         `json:"quote_id" db:"quote_id"`
	TechnicianID sql.NullInt64 `json:"technician_id,omitempty" db:"technician_id"`

	Status         Status       `json:"status" db:"status"`
	ScheduledDate  sql.NullTime `json:"scheduled_date,omitempty" db:"scheduled_date"`
	CompletionDate sql.NullTime `json:"completion_date,omitempty" db:"completion_date"`

	Notes                sql.NullString  `json:"notes,omitempty" db:"notes"`
	PhotoURLs            []string        `json:"photo_urls,omitempty" db:"photo_urls"`
	LaborHoursActual     sql.NullFloat64 `json:"labor_hours_actual,omitempty" db:"labor_hours_actual"`
	IssuesEncountered    sql.NullString  `json:"issues_encountered,omitempty" db:"issues_encountered"`
	CustomerSatisfaction sql.NullInt32   `json:"customer_satisfaction,omitempty" db:"customer_satisfaction"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type InstallationStats struct {
	Completed  int64 `json:"completed"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
}
