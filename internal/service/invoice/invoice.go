// internal/service/invoice/invoice.go
package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cctv-service/internal/domain/invoice"
	"cctv-service/internal/domain/payment"
	xerrors "cctv-service/internal/pkg/errors"
	"cctv-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type InvoiceService struct {
	invoiceRepo *postgres.InvoiceRepository
	paymentRepo *postgres.PaymentRepository
	quoteRepo   *postgres.QuoteRepository
	logger      *zap.Logger
}

func NewInvoiceService(
	invoiceRepo *postgres.InvoiceRepository,
	paymentRepo *postgres.PaymentRepository,
	quoteRepo *postgres.QuoteRepository,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		quoteRepo:   quoteRepo,
		logger:      logger,
	}
}

// Generate issues the invoice for a quote: tax is derived from the subtotal
// and the due date set from the standard payment terms. Generating twice
// returns the existing invoice instead of a second number.
func (s *InvoiceService) Generate(ctx context.Context, quoteID int64, req *invoice.GenerateRequest) (*invoice.Invoice, error) {
	if _, err := s.quoteRepo.FindByID(ctx, quoteID); err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}

	if existing, err := s.invoiceRepo.FindByQuoteID(ctx, quoteID); err == nil {
		return existing, nil
	} else if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	taxAmount, totalAmount := invoice.ComputeTotals(req.Subtotal)

	inv := &invoice.Invoice{
		QuoteID:     quoteID,
		Status:      invoice.StatusIssued,
		DueDate:     sql.NullTime{Time: time.Now().AddDate(0, 0, invoice.PaymentTermsDays), Valid: true},
		Subtotal:    req.Subtotal,
		TaxAmount:   taxAmount,
		TotalAmount: totalAmount,
		Notes:       sql.NullString{String: req.Notes, Valid: req.Notes != ""},
	}

	// Link the quote's payment when one exists, and issue as paid if it
	// already settled.
	if p, err := s.paymentRepo.FindByQuoteID(ctx, quoteID); err == nil {
		inv.PaymentID = sql.NullInt64{Int64: p.ID, Valid: true}
		if p.Status == payment.StatusCompleted {
			inv.Status = invoice.StatusPaid
		}
	} else if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, xerrors.ErrConflict) && inv.ID != 0 {
			// Lost a race with a concurrent generate for the same quote.
			return inv, nil
		}
		return nil, err
	}

	s.logger.Info("invoice generated",
		zap.Int64("invoice_id", inv.ID),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Int64("quote_id", quoteID),
		zap.Float64("total", inv.TotalAmount),
	)

	return inv, nil
}

// Get retrieves an invoice by ID.
func (s *InvoiceService) Get(ctx context.Context, id int64) (*invoice.Invoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

// GetByQuote retrieves the invoice for a quote.
func (s *InvoiceService) GetByQuote(ctx context.Context, quoteID int64) (*invoice.Invoice, error) {
	return s.invoiceRepo.FindByQuoteID(ctx, quoteID)
}

// List retrieves invoices with filters and pagination.
func (s *InvoiceService) List(ctx context.Context, filters *invoice.ListFilters) (*invoice.ListResponse, error) {
	if filters.Status != "" && !invoice.Status(filters.Status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", xerrors.ErrInvalidInput, filters.Status)
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}

	invoices, total, err := s.invoiceRepo.List(ctx, *filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &invoice.ListResponse{
		Invoices:   invoices,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}
