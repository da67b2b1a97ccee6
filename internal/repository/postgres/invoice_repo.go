// internal/repository/postgres/invoice_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cctv-service/internal/domain/invoice"
	xerrors "cctv-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	db *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

const invoiceColumns = `
	id, invoice_number, quote_id, payment_id, status, issued_date, due_date,
	subtotal, tax_amount, total_amount, notes, pdf_url, created_at, updated_at`

func scanInvoice(row pgx.Row) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.QuoteID, &inv.PaymentID,
		&inv.Status, &inv.IssuedDate, &inv.DueDate,
		&inv.Subtotal, &inv.TaxAmount, &inv.TotalAmount,
		&inv.Notes, &inv.PDFURL, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

const maxNumberingRetries = 3

// Create inserts the invoice with the next sequence number for the issue
// year. Two writers racing for the same number hit the (year, seq) unique
// constraint; the loser retries with a fresh sequence.
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	year := time.Now().Year()

	for attempt := 0; attempt < maxNumberingRetries; attempt++ {
		var seq int64
		if err := r.db.QueryRow(ctx,
			`SELECT COALESCE(MAX(seq), 0) + 1 FROM invoices WHERE year = $1`, year,
		).Scan(&seq); err != nil {
			return fmt.Errorf("failed to allocate invoice number: %w", err)
		}

		number := invoice.FormatNumber(year, seq)
		err := r.db.QueryRow(ctx, `
			INSERT INTO invoices (
				invoice_number, quote_id, payment_id, year, seq, status,
				due_date, subtotal, tax_amount, total_amount, notes
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, issued_date, created_at, updated_at
		`,
			number, inv.QuoteID, inv.PaymentID, year, seq, inv.Status,
			inv.DueDate, inv.Subtotal, inv.TaxAmount, inv.TotalAmount, inv.Notes,
		).Scan(&inv.ID, &inv.IssuedDate, &inv.CreatedAt, &inv.UpdatedAt)

		if IsUniqueViolation(err) {
			var existing *invoice.Invoice
			existing, findErr := r.FindByQuoteID(ctx, inv.QuoteID)
			if findErr == nil {
				// Quote already invoiced. Not a numbering race.
				*inv = *existing
				return xerrors.ErrConflict
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		inv.InvoiceNumber = number
		return nil
	}

	return fmt.Errorf("%w: could not allocate invoice number after %d attempts",
		xerrors.ErrConflict, maxNumberingRetries)
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id int64) (*invoice.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepository) FindByQuoteID(ctx context.Context, quoteID int64) (*invoice.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE quote_id = $1`, quoteID))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepository) List(ctx context.Context, f invoice.ListFilters) ([]invoice.Invoice, int64, error) {
	where := ``
	args := []any{}
	if f.Status != "" {
		where = `WHERE status = $1`
		args = append(args, f.Status)
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	limitPos := len(args) + 1
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)
	rows, err := r.db.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices `+where+
			fmt.Sprintf(` ORDER BY issued_date DESC LIMIT $%d OFFSET $%d`, limitPos, limitPos+1),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var out []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan invoice: %w", err)
		}
		out = append(out, *inv)
	}
	return out, total, rows.Err()
}

// MarkPaid flips an issued invoice to paid when its payment settles.
func (r *InvoiceRepository) MarkPaid(ctx context.Context, tx Querier, quoteID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE invoices
		SET status = 'paid', updated_at = now()
		WHERE quote_id = $1 AND status IN ('draft', 'issued', 'overdue')
	`, quoteID)
	if err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}
	return nil
}
