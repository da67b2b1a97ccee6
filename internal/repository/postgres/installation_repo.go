// internal/repository/postgres/installation_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cctv-service/internal/domain/installation"
	xerrors "cctv-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InstallationRepository struct {
	db *pgxpool.Pool
}

func NewInstallationRepository(db *pgxpool.Pool) *InstallationRepository {
	return &InstallationRepository{db: db}
}

const installationColumns = `
	id, quote_id, technician_id, status, scheduled_date, completion_date,
	notes, photo_urls, labor_hours_actual, issues_encountered,
	customer_satisfaction, created_at, updated_at`

func scanInstallation(row pgx.Row) (*installation.Installation, error) {
	var ins installation.Installation
	err := row.Scan(
		&ins.ID, &ins.QuoteID, &ins.TechnicianID, &ins.Status,
		&ins.ScheduledDate, &ins.CompletionDate,
		&ins.Notes, &ins.PhotoURLs, &ins.LaborHoursActual, &ins.IssuesEncountered,
		&ins.CustomerSatisfaction, &ins.CreatedAt, &ins.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

// Create inserts the installation inside the caller's transaction. The
// quote_id unique constraint guarantees one installation per quote.
func (r *InstallationRepository) Create(ctx context.Context, tx Querier, ins *installation.Installation) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO installations (quote_id, technician_id, status, scheduled_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, photo_urls, created_at, updated_at
	`, ins.QuoteID, ins.TechnicianID, ins.Status, ins.ScheduledDate, ins.Notes,
	).Scan(&ins.ID, &ins.PhotoURLs, &ins.CreatedAt, &ins.UpdatedAt)

	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: quote already has an installation", xerrors.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create installation: %w", err)
	}
	return nil
}

func (r *InstallationRepository) FindByID(ctx context.Context, id int64) (*installation.Installation, error) {
	ins, err := scanInstallation(r.db.QueryRow(ctx,
		`SELECT `+installationColumns+` FROM installations WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find installation: %w", err)
	}
	return ins, nil
}

// FindByIDTx loads and locks the installation row for the duration of the
// caller's transaction.
func (r *InstallationRepository) FindByIDTx(ctx context.Context, tx Querier, id int64) (*installation.Installation, error) {
	ins, err := scanInstallation(tx.QueryRow(ctx,
		`SELECT `+installationColumns+` FROM installations WHERE id = $1 FOR UPDATE`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find installation: %w", err)
	}
	return ins, nil
}

func (r *InstallationRepository) FindByQuoteID(ctx context.Context, quoteID int64) (*installation.Installation, error) {
	ins, err := scanInstallation(r.db.QueryRow(ctx,
		`SELECT `+installationColumns+` FROM installations WHERE quote_id = $1`, quoteID))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find installation: %w", err)
	}
	return ins, nil
}

func (r *InstallationRepository) List(ctx context.Context, f installation.ListFilters) ([]installation.Installation, int64, error) {
	where := ``
	args := []any{}
	if f.Status != "" {
		where = `WHERE status = $1`
		args = append(args, f.Status)
	}
	if f.TechnicianID > 0 {
		if where == "" {
			where = fmt.Sprintf(`WHERE technician_id = $%d`, len(args)+1)
		} else {
			where += fmt.Sprintf(` AND technician_id = $%d`, len(args)+1)
		}
		args = append(args, f.TechnicianID)
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM installations `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count installations: %w", err)
	}

	limitPos := len(args) + 1
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)
	rows, err := r.db.Query(ctx,
		`SELECT `+installationColumns+` FROM installations `+where+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, limitPos, limitPos+1),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list installations: %w", err)
	}
	defer rows.Close()

	var out []installation.Installation
	for rows.Next() {
		ins, err := scanInstallation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan installation: %w", err)
		}
		out = append(out, *ins)
	}
	return out, total, rows.Err()
}

// Reassign moves a pending installation to a different technician.
func (r *InstallationRepository) Reassign(ctx context.Context, tx Querier, id, technicianID int64, scheduled time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE installations
		SET technician_id = $1, scheduled_date = $2, updated_at = now()
		WHERE id = $3 AND status = 'pending'
	`, technicianID, scheduled, id)
	if err != nil {
		return fmt.Errorf("failed to reassign installation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrInvalidTransition
	}
	return nil
}

// Start moves a pending installation to in-progress. The status guard in the
// WHERE clause makes concurrent starts lose cleanly.
func (r *InstallationRepository) Start(ctx context.Context, tx Querier, id int64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE installations
		SET status = 'in-progress', updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`, id)
	if err != nil {
		return fmt.Errorf("failed to start installation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrInvalidTransition
	}
	return nil
}

// Complete finalizes an in-progress installation with the actuals recorded
// on site.
func (r *InstallationRepository) Complete(ctx context.Context, tx Querier, id int64, req *installation.CompleteRequest) error {
	tag, err := tx.Exec(ctx, `
		UPDATE installations
		SET status = 'completed',
		    completion_date = now(),
		    labor_hours_actual = $1,
		    issues_encountered = NULLIF($2, ''),
		    notes = COALESCE(NULLIF($3, ''), notes),
		    customer_satisfaction = COALESCE($4, customer_satisfaction),
		    updated_at = now()
		WHERE id = $5 AND status = 'in-progress'
	`, req.LaborHours, req.Issues, req.Notes, req.Satisfaction, id)
	if err != nil {
		return fmt.Errorf("failed to complete installation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrInvalidTransition
	}
	return nil
}

// Fail marks the installation failed from either pending or in-progress.
func (r *InstallationRepository) Fail(ctx context.Context, tx Querier, id int64, req *installation.FailRequest) error {
	tag, err := tx.Exec(ctx, `
		UPDATE installations
		SET status = 'failed',
		    issues_encountered = $1,
		    notes = COALESCE(NULLIF($2, ''), notes),
		    updated_at = now()
		WHERE id = $3 AND status IN ('pending', 'in-progress')
	`, req.IssueDescription, req.Notes, id)
	if err != nil {
		return fmt.Errorf("failed to mark installation failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrInvalidTransition
	}
	return nil
}

// SetSatisfaction records customer feedback on a completed installation.
func (r *InstallationRepository) SetSatisfaction(ctx context.Context, id int64, rating int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE installations
		SET customer_satisfaction = $1, updated_at = now()
		WHERE id = $2 AND status = 'completed'
	`, rating, id)
	if err != nil {
		return fmt.Errorf("failed to record satisfaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrInvalidTransition
	}
	return nil
}

// AppendPhoto attaches one uploaded photo URL to the installation.
func (r *InstallationRepository) AppendPhoto(ctx context.Context, id int64, url string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE installations
		SET photo_urls = array_append(photo_urls, $1), updated_at = now()
		WHERE id = $2
	`, url, id)
	if err != nil {
		return fmt.Errorf("failed to append photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// StatusCounts feeds the dashboard installation widget.
func (r *InstallationRepository) StatusCounts(ctx context.Context) (*installation.InstallationStats, error) {
	var s installation.InstallationStats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'in-progress')
		FROM installations
	`).Scan(&s.Completed, &s.Pending, &s.InProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to load installation stats: %w", err)
	}
	return &s, nil
}
