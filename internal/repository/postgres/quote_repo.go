// internal/repository/postgres/quote_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cctv-service/internal/domain/quote"
	xerrors "cctv-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuoteRepository struct {
	db *pgxpool.Pool
}

func NewQuoteRepository(db *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{db: db}
}

const quoteColumns = `
	id, reference, name, email, phone, service, message, lang,
	location_id, camera_count, resolution, difficulty_level, estimated_price,
	ip_address, user_agent, status, created_at, updated_at`

func scanQuote(row pgx.Row) (*quote.QuoteRequest, error) {
	var q quote.QuoteRequest
	err := row.Scan(
		&q.ID, &q.Reference, &q.Name, &q.Email, &q.Phone, &q.Service, &q.Message, &q.Lang,
		&q.LocationID, &q.CameraCount, &q.Resolution, &q.DifficultyLevel, &q.EstimatedPrice,
		&q.IPAddress, &q.UserAgent, &q.Status, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create persists a new quote request.
func (r *QuoteRepository) Create(ctx context.Context, q *quote.QuoteRequest) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO quote_requests (
			reference, name, email, phone, service, message, lang,
			location_id, camera_count, resolution, difficulty_level, estimated_price,
			ip_address, user_agent, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`,
		q.Reference, q.Name, q.Email, q.Phone, q.Service, q.Message, q.Lang,
		q.LocationID, q.CameraCount, q.Resolution, q.DifficultyLevel, q.EstimatedPrice,
		q.IPAddress, q.UserAgent, q.Status,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

// FindByID retrieves a quote by ID.
func (r *QuoteRepository) FindByID(ctx context.Context, id int64) (*quote.QuoteRequest, error) {
	q, err := scanQuote(r.db.QueryRow(ctx,
		`SELECT `+quoteColumns+` FROM quote_requests WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find quote: %w", err)
	}
	return q, nil
}

// FindByIDTx retrieves a quote inside a transaction, locking the row.
func (r *QuoteRepository) FindByIDTx(ctx context.Context, tx Querier, id int64) (*quote.QuoteRequest, error) {
	q, err := scanQuote(tx.QueryRow(ctx,
		`SELECT `+quoteColumns+` FROM quote_requests WHERE id = $1 FOR UPDATE`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find quote: %w", err)
	}
	return q, nil
}

// UpdateStatus writes a new status. Transition validation belongs to the
// service layer; this is a plain write.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, tx Querier, id int64, status quote.Status) error {
	tag, err := tx.Exec(ctx, `
		UPDATE quote_requests SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update quote status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List returns quotes newest first with an optional status filter.
func (r *QuoteRepository) List(ctx context.Context, f quote.ListFilters) ([]quote.QuoteRequest, int64, error) {
	where := ``
	args := []any{}
	if f.Status != "" {
		where = `WHERE status = $1`
		args = append(args, f.Status)
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM quote_requests `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count quotes: %w", err)
	}

	limitPos := len(args) + 1
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)
	rows, err := r.db.Query(ctx,
		`SELECT `+quoteColumns+` FROM quote_requests `+where+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, limitPos, limitPos+1),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var out []quote.QuoteRequest
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan quote: %w", err)
		}
		out = append(out, *q)
	}
	return out, total, rows.Err()
}

// Stats aggregates the dashboard quote counters.
func (r *QuoteRepository) Stats(ctx context.Context) (*quote.QuoteStats, error) {
	var s quote.QuoteStats
	weekAgo := time.Now().AddDate(0, 0, -7)
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'new' AND created_at >= $1),
		       COUNT(*) FILTER (WHERE status = 'converted')
		FROM quote_requests
	`, weekAgo).Scan(&s.Total, &s.NewLast7Days, &s.Converted)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote stats: %w", err)
	}
	if s.Total > 0 {
		s.ConversionRate = float64(s.Converted) / float64(s.Total) * 100
	}
	return &s, nil
}
