// internal/domain/staff/entity.go
package staff

import (
	"database/sql"
	"time"
)

// Account is a back-office login: an admin or a technician. Technician
// accounts are linked to their technician record.
type Account struct {
	ID           int64         `json:"id" db:"id"`
	FullName     string        `json:"full_name" db:"full_name"`
	Email        string        `json:"email" db:"email"`
	PasswordHash string        `json:"-" db:"password_hash"`
	Role         string        `json:"role" db:"role"` // admin, technician
	TechnicianID sql.NullInt64 `json:"technician_id,omitempty" db:"technician_id"`
	IsActive     bool          `json:"is_active" db:"is_active"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
)
