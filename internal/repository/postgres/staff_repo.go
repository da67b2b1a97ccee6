// internal/repository/postgres/staff_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"cctv-service/internal/domain/staff"
	xerrors "cctv-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StaffRepository struct {
	db *pgxpool.Pool
}

func NewStaffRepository(db *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{db: db}
}

const staffColumns = `
	id, full_name, email, password_hash, role, technician_id, is_active,
	created_at, updated_at`

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*staff.Account, error) {
	var a staff.Account
	err := r.db.QueryRow(ctx,
		`SELECT `+staffColumns+` FROM staff_accounts WHERE email = $1`, email,
	).Scan(
		&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.Role,
		&a.TechnicianID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find staff account: %w", err)
	}
	return &a, nil
}

func (r *StaffRepository) FindByID(ctx context.Context, id int64) (*staff.Account, error) {
	var a staff.Account
	err := r.db.QueryRow(ctx,
		`SELECT `+staffColumns+` FROM staff_accounts WHERE id = $1`, id,
	).Scan(
		&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.Role,
		&a.TechnicianID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find staff account: %w", err)
	}
	return &a, nil
}

func (r *StaffRepository) Create(ctx context.Context, a *staff.Account) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO staff_accounts (full_name, email, password_hash, role, technician_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, a.FullName, a.Email, a.PasswordHash, a.Role, a.TechnicianID, a.IsActive,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: email already registered", xerrors.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create staff account: %w", err)
	}
	return nil
}

// CountAdmins reports how many active admin accounts exist. Used on boot to
// decide whether the bootstrap admin needs creating.
func (r *StaffRepository) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM staff_accounts WHERE role = 'admin' AND is_active`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return n, nil
}
