// internal/repository/postgres/technician_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cctv-service/internal/domain/technician"
	xerrors "cctv-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TechnicianRepository struct {
	db *pgxpool.Pool
}

func NewTechnicianRepository(db *pgxpool.Pool) *TechnicianRepository {
	return &TechnicianRepository{db: db}
}

const technicianColumns = `
	id, name, email, phone, specialization, status,
	current_jobs, total_completed, rating, salary, hire_date, created_at, updated_at`

func scanTechnician(row pgx.Row) (*technician.Technician, error) {
	var t technician.Technician
	err := row.Scan(
		&t.ID, &t.Name, &t.Email, &t.Phone, &t.Specialization, &t.Status,
		&t.CurrentJobs, &t.TotalCompleted, &t.Rating, &t.Salary, &t.HireDate,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TechnicianRepository) Create(ctx context.Context, t *technician.Technician) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO technicians (name, email, phone, specialization, status, salary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, current_jobs, total_completed, rating, hire_date, created_at, updated_at
	`, t.Name, t.Email, t.Phone, t.Specialization, t.Status, t.Salary,
	).Scan(&t.ID, &t.CurrentJobs, &t.TotalCompleted, &t.Rating, &t.HireDate, &t.CreatedAt, &t.UpdatedAt)

	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: technician email already registered", xerrors.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create technician: %w", err)
	}
	return nil
}

func (r *TechnicianRepository) FindByID(ctx context.Context, id int64) (*technician.Technician, error) {
	t, err := scanTechnician(r.db.QueryRow(ctx,
		`SELECT `+technicianColumns+` FROM technicians WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find technician: %w", err)
	}
	return t, nil
}

// Update applies the provided partial update.
func (r *TechnicianRepository) Update(ctx context.Context, id int64, req *technician.UpdateRequest) error {
	sets := []string{}
	args := []any{}
	i := 1

	if req.Phone != nil {
		sets = append(sets, fmt.Sprintf("phone = $%d", i))
		args = append(args, *req.Phone)
		i++
	}
	if req.Specialization != nil {
		sets = append(sets, fmt.Sprintf("specialization = $%d", i))
		args = append(args, *req.Specialization)
		i++
	}
	if req.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", i))
		args = append(args, *req.Status)
		i++
	}
	if req.Salary != nil {
		sets = append(sets, fmt.Sprintf("salary = $%d", i))
		args = append(args, *req.Salary)
		i++
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	tag, err := r.db.Exec(ctx,
		fmt.Sprintf(`UPDATE technicians SET %s WHERE id = $%d`, strings.Join(sets, ", "), i),
		args...)
	if err != nil {
		return fmt.Errorf("failed to update technician: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *TechnicianRepository) List(ctx context.Context, f technician.ListFilters) ([]technician.Technician, int64, error) {
	where := ``
	args := []any{}
	if f.Status != "" {
		where = `WHERE status = $1`
		args = append(args, f.Status)
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM technicians `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count technicians: %w", err)
	}

	limitPos := len(args) + 1
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)
	rows, err := r.db.Query(ctx,
		`SELECT `+technicianColumns+` FROM technicians `+where+
			fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, limitPos, limitPos+1),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list technicians: %w", err)
	}
	defer rows.Close()

	var out []technician.Technician
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan technician: %w", err)
		}
		out = append(out, *t)
	}
	return out, total, rows.Err()
}

// IncrementJobs adds one active job to the technician inside the caller's
// transaction.
func (r *TechnicianRepository) IncrementJobs(ctx context.Context, tx Querier, id int64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE technicians
		SET current_jobs = current_jobs + 1, updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to increment technician jobs: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// DecrementJobs releases one job slot, floored at zero.
func (r *TechnicianRepository) DecrementJobs(ctx context.Context, tx Querier, id int64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE technicians
		SET current_jobs = GREATEST(current_jobs - 1, 0), updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to decrement technician jobs: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// RecordCompletion releases the job slot and bumps the completed counter in
// one statement so the two can never diverge.
func (r *TechnicianRepository) RecordCompletion(ctx context.Context, tx Querier, id int64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE technicians
		SET current_jobs = GREATEST(current_jobs - 1, 0),
		    total_completed = total_completed + 1,
		    updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to record technician completion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Stats aggregates job counts and average satisfaction for one technician.
func (r *TechnicianRepository) Stats(ctx context.Context, id int64) (*technician.Stats, error) {
	var s technician.Stats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'in-progress'),
		       COALESCE(AVG(customer_satisfaction), 0)
		FROM installations WHERE technician_id = $1
	`, id).Scan(&s.CompletedJobs, &s.PendingJobs, &s.InProgressJobs, &s.AverageSatisfaction)
	if err != nil {
		return nil, fmt.Errorf("failed to load technician stats: %w", err)
	}
	return &s, nil
}

// TeamStats counts technicians by availability for the dashboard.
func (r *TechnicianRepository) TeamStats(ctx context.Context) (*technician.TeamStats, error) {
	var s technician.TeamStats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = 'available'),
		       COUNT(*) FILTER (WHERE status = 'busy'),
		       COUNT(*)
		FROM technicians
	`).Scan(&s.Available, &s.Busy, &s.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to load team stats: %w", err)
	}
	return &s, nil
}
