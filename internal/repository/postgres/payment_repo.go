// internal/repository/postgres/payment_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"cctv-service/internal/domain/payment"
	xerrors "cctv-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `
	id, quote_id, amount, currency, status, payment_method,
	payment_gateway, transaction_id, paid_at, due_date, notes,
	created_at, updated_at`

func scanPayment(row pgx.Row) (*payment.Payment, error) {
	var p payment.Payment
	err := row.Scan(
		&p.ID, &p.QuoteID, &p.Amount, &p.Currency, &p.Status, &p.Method,
		&p.Gateway, &p.TransactionID, &p.PaidAt, &p.DueDate, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts the payment. The quote_id unique constraint guarantees at
// most one payment per quote.
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO payments (quote_id, amount, currency, status, payment_method, due_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, p.QuoteID, p.Amount, p.Currency, p.Status, p.Method, p.DueDate, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: quote already has a payment", xerrors.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// Delete removes a payment. Used to roll back when the gateway rejects the
// session after the row was inserted.
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*payment.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) FindByQuoteID(ctx context.Context, quoteID int64) (*payment.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE quote_id = $1`, quoteID))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) List(ctx context.Context, f payment.ListFilters) ([]payment.Payment, int64, error) {
	where := ``
	args := []any{}
	if f.Status != "" {
		where = `WHERE status = $1`
		args = append(args, f.Status)
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	limitPos := len(args) + 1
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)
	rows, err := r.db.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments `+where+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, limitPos, limitPos+1),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var out []payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment: %w", err)
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

// SetGateway stores the gateway name and session reference after the
// checkout session is created.
func (r *PaymentRepository) SetGateway(ctx context.Context, id int64, gateway, transactionID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payments
		SET payment_gateway = $1, transaction_id = $2, updated_at = now()
		WHERE id = $3
	`, gateway, transactionID, id)
	if err != nil {
		return fmt.Errorf("failed to set payment gateway: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// MarkCompleted settles a pending payment inside the caller's transaction.
// The status guard keeps a second verification from settling twice.
func (r *PaymentRepository) MarkCompleted(ctx context.Context, tx Querier, id int64) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE payments
		SET status = 'completed', paid_at = now(), updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark payment completed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkFailed records a declined or abandoned payment.
func (r *PaymentRepository) MarkFailed(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payments
		SET status = 'failed', updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark payment failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrInvalidTransition
	}
	return nil
}

// MarkRefunded flips a completed payment to refunded.
func (r *PaymentRepository) MarkRefunded(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payments
		SET status = 'refunded', updated_at = now()
		WHERE id = $1 AND status = 'completed'
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark payment refunded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrInvalidTransition
	}
	return nil
}

// Revenue sums completed payments since the given time.
func (r *PaymentRepository) Revenue(ctx context.Context, sinceDays int) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE status = 'completed' AND paid_at >= now() - make_interval(days => $1)
	`, sinceDays).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}
