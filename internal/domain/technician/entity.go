// internal/domain/technician/entity.go
package technician

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBusy      Status = "busy"
	StatusOffDuty   Status = "off-duty"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusBusy, StatusOffDuty:
		return true
	}
	return false
}

type Technician struct {
	ID             int64           `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Email          string          `json:"email" db:"email"`
	Phone          string          `json:"phone" db:"phone"`
	Specialization sql.NullString  `json:"specialization,omitempty" db:"specialization"`
	Status         Status          `json:"status" db:"status"`
	CurrentJobs    int             `json:"current_jobs" db:"current_jobs"`
	TotalCompleted int             `json:"total_completed" db:"total_completed"`
	Rating         float64         `json:"rating" db:"rating"`
	Salary         sql.NullFloat64 `json:"-" db:"salary"`
	HireDate       time.Time       `json:"hire_date" db:"hire_date"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// Stats aggregates a technician's job history for the profile endpoint.
type Stats struct {
	CompletedJobs       int64   `json:"completed_jobs"`
	PendingJobs         int64   `json:"pending_jobs"`
	InProgressJobs      int64   `json:"in_progress_jobs"`
	AverageSatisfaction float64 `json:"average_satisfaction"`
	CurrentJobs         int     `json:"current_jobs"`
	TotalCompleted      int     `json:"total_completed"`
	Rating              float64 `json:"rating"`
}

type TeamStats struct {
	Available int64 `json:"available"`
	Busy      int64 `json:"busy"`
	Total     int64 `json:"total"`
}
