// internal/service/payment/payment.go
package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cctv-service/internal/domain/invoice"
	"cctv-service/internal/domain/payment"
	"cctv-service/internal/domain/quote"
	"cctv-service/internal/gateway"
	xerrors "cctv-service/internal/pkg/errors"
	"cctv-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type PaymentService struct {
	paymentRepo *postgres.PaymentRepository
	invoiceRepo *postgres.InvoiceRepository
	quoteRepo   *postgres.QuoteRepository
	db          *postgres.DB
	cardGW      gateway.Gateway
	walletGW    gateway.Gateway
	logger      *zap.Logger
}

func NewPaymentService(
	paymentRepo *postgres.PaymentRepository,
	invoiceRepo *postgres.InvoiceRepository,
	quoteRepo *postgres.QuoteRepository,
	db *postgres.DB,
	cardGW, walletGW gateway.Gateway,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		quoteRepo:   quoteRepo,
		db:          db,
		cardGW:      cardGW,
		walletGW:    walletGW,
		logger:      logger,
	}
}

// Create opens a payment for a quote. Gateway-backed methods get a checkout
// session; if the provider refuses, the payment row is removed so the quote
// can be retried. One payment per quote, enforced by storage.
func (s *PaymentService) Create(ctx context.Context, req *payment.CreateRequest) (*payment.CreateResponse, error) {
	method := payment.Method(req.PaymentMethod)
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", xerrors.ErrInvalidInput, req.PaymentMethod)
	}

	q, err := s.quoteRepo.FindByID(ctx, req.QuoteID)
	if err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}
	if q.Status == quote.StatusRejected {
		return nil, fmt.Errorf("%w: quote was rejected", xerrors.ErrInvalidTransition)
	}

	p := &payment.Payment{
		QuoteID:  req.QuoteID,
		Amount:   req.Amount,
		Currency: "MAD",
		Status:   payment.StatusPending,
		Method:   method,
		DueDate:  sql.NullTime{Time: time.Now().AddDate(0, 0, invoice.PaymentTermsDays), Valid: true},
		Notes:    sql.NullString{String: req.Notes, Valid: req.Notes != ""},
	}

	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	resp := &payment.CreateResponse{Payment: p}
	if !method.RequiresGateway() {
		s.logger.Info("payment created",
			zap.Int64("payment_id", p.ID),
			zap.Int64("quote_id", p.QuoteID),
			zap.String("method", string(method)),
		)
		return resp, nil
	}

	gw := s.gatewayFor(method)
	session, err := gw.CreateSession(ctx, p.Amount, p.Currency, map[string]string{
		"payment_id": fmt.Sprintf("%d", p.ID),
		"quote_ref":  q.Reference,
	})
	if err != nil {
		// Remove the orphan row so the quote is not stuck with a dead
		// payment.
		if delErr := s.paymentRepo.Delete(ctx, p.ID); delErr != nil {
			s.logger.Error("failed to roll back payment after gateway error",
				zap.Int64("payment_id", p.ID),
				zap.Error(delErr),
			)
		}
		s.logger.Error("gateway session creation failed",
			zap.String("gateway", gw.Name()),
			zap.Int64("quote_id", p.QuoteID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.paymentRepo.SetGateway(ctx, p.ID, gw.Name(), session.ID); err != nil {
		return nil, err
	}
	p.Gateway = sql.NullString{String: gw.Name(), Valid: true}
	p.TransactionID = sql.NullString{String: session.ID, Valid: true}

	s.logger.Info("payment created",
		zap.Int64("payment_id", p.ID),
		zap.Int64("quote_id", p.QuoteID),
		zap.String("method", string(method)),
		zap.String("gateway", gw.Name()),
	)

	resp.SessionID = session.ID
	resp.PaymentURL = session.URL
	return resp, nil
}

// Verify asks the provider whether the session was paid and settles the
// payment if so. Any other gateway answer leaves the payment pending and
// reports the failure. Verifying an already-completed payment is a no-op
// that returns the current record.
func (s *PaymentService) Verify(ctx context.Context, req *payment.VerifyRequest) (*payment.Payment, error) {
	p, err := s.paymentRepo.FindByID(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}

	if p.Status == payment.StatusCompleted {
		return p, nil
	}
	if p.Status != payment.StatusPending {
		return nil, fmt.Errorf("%w: payment is %s", xerrors.ErrInvalidTransition, p.Status)
	}
	if !p.Method.RequiresGateway() {
		return nil, fmt.Errorf("%w: %s payments are confirmed by staff",
			xerrors.ErrInvalidInput, p.Method)
	}
	if !p.TransactionID.Valid || p.TransactionID.String != req.SessionID {
		return nil, fmt.Errorf("%w: session does not match payment", xerrors.ErrInvalidInput)
	}

	gw := s.gatewayFor(p.Method)
	result, err := gw.VerifyPayment(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if result.Status != gateway.StatusPaid {
		s.logger.Info("payment not yet settled",
			zap.Int64("payment_id", p.ID),
			zap.String("gateway_status", result.Status),
		)
		return nil, fmt.Errorf("%w: payment not settled, gateway reports %q",
			xerrors.ErrInvalidInput, result.Status)
	}

	if err := s.settle(ctx, p); err != nil {
		return nil, err
	}
	return s.paymentRepo.FindByID(ctx, p.ID)
}

// ConfirmManual settles a cash or bank transfer payment on staff say-so.
func (s *PaymentService) ConfirmManual(ctx context.Context, id int64) (*payment.Payment, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == payment.StatusCompleted {
		return p, nil
	}
	if p.Status != payment.StatusPending {
		return nil, fmt.Errorf("%w: payment is %s", xerrors.ErrInvalidTransition, p.Status)
	}
	if p.Method.RequiresGateway() {
		return nil, fmt.Errorf("%w: %s payments are settled through the gateway",
			xerrors.ErrInvalidInput, p.Method)
	}

	if err := s.settle(ctx, p); err != nil {
		return nil, err
	}
	return s.paymentRepo.FindByID(ctx, id)
}

// Refund reverses a completed payment. Gateway-backed methods refund at the
// provider first; if that fails the local record is untouched.
func (s *PaymentService) Refund(ctx context.Context, id int64) (*payment.Payment, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != payment.StatusCompleted {
		return nil, fmt.Errorf("%w: only completed payments can be refunded",
			xerrors.ErrInvalidTransition)
	}

	if p.Method.RequiresGateway() && p.TransactionID.Valid {
		gw := s.gatewayFor(p.Method)
		if err := gw.Refund(ctx, p.TransactionID.String); err != nil {
			s.logger.Error("gateway refund failed",
				zap.Int64("payment_id", id),
				zap.Error(err),
			)
			return nil, err
		}
	}

	if err := s.paymentRepo.MarkRefunded(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("payment refunded", zap.Int64("payment_id", id))
	return s.paymentRepo.FindByID(ctx, id)
}

// MarkFailed records a declined or abandoned payment.
func (s *PaymentService) MarkFailed(ctx context.Context, id int64) (*payment.Payment, error) {
	if _, err := s.paymentRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.MarkFailed(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info("payment marked failed", zap.Int64("payment_id", id))
	return s.paymentRepo.FindByID(ctx, id)
}

// Get retrieves a payment by ID.
func (s *PaymentService) Get(ctx context.Context, id int64) (*payment.Payment, error) {
	return s.paymentRepo.FindByID(ctx, id)
}

// GetByQuote retrieves the payment for a quote.
func (s *PaymentService) GetByQuote(ctx context.Context, quoteID int64) (*payment.Payment, error) {
	return s.paymentRepo.FindByQuoteID(ctx, quoteID)
}

// List retrieves payments with filters and pagination.
func (s *PaymentService) List(ctx context.Context, filters *payment.ListFilters) (*payment.ListResponse, error) {
	if filters.Status != "" && !payment.Status(filters.Status).Valid() {
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

	payments, total, err := s.paymentRepo.List(ctx, *filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &payment.ListResponse{
		Payments:   payments,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// settle completes a pending payment and cascades: the invoice flips to
// paid and the quote to converted, all in one transaction. The conditional
// update makes a concurrent second settle a silent no-op.
func (s *PaymentService) settle(ctx context.Context, p *payment.Payment) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	settled, err := s.paymentRepo.MarkCompleted(ctx, tx, p.ID)
	if err != nil {
		return err
	}
	if !settled {
		// Someone else settled first.
		return tx.Commit(ctx)
	}

	if err := s.invoiceRepo.MarkPaid(ctx, tx, p.QuoteID); err != nil {
		return err
	}

	q, err := s.quoteRepo.FindByIDTx(ctx, tx, p.QuoteID)
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return err
	}
	if q != nil && q.Status != quote.StatusConverted && quote.CanTransition(q.Status, quote.StatusConverted) {
		if err := s.quoteRepo.UpdateStatus(ctx, tx, p.QuoteID, quote.StatusConverted); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit settlement: %w", err)
	}

	s.logger.Info("payment settled",
		zap.Int64("payment_id", p.ID),
		zap.Int64("quote_id", p.QuoteID),
		zap.Float64("amount", p.Amount),
	)
	return nil
}

func (s *PaymentService) gatewayFor(m payment.Method) gateway.Gateway {
	if m == payment.MethodWallet {
		return s.walletGW
	}
	return s.cardGW
}
