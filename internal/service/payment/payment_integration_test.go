package payment_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"cctv-service/internal/domain/payment"
	"cctv-service/internal/domain/quote"
	"cctv-service/internal/gateway"
	xerrors "cctv-service/internal/pkg/errors"
	"cctv-service/internal/repository/postgres"
	service "cctv-service/internal/service/payment"
	"cctv-service/migrations"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Integration tests run against a dedicated test database. Set
// TEST_DATABASE_URL to enable them; every row they create is unique to the
// run, so they do not interfere with each other or with parallel packages.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := migrations.Apply(ctx, pool, zap.NewNop()); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	return pool
}

func seedQuote(t *testing.T, pool *pgxpool.Pool) *quote.QuoteRequest {
	t.Helper()
	repo := postgres.NewQuoteRepository(pool)
	q := &quote.QuoteRequest{
		Reference: "Q-" + uuid.NewString()[:26],
		Name:      "Test Customer",
		Email:     "customer@example.com",
		Phone:     "0661234567",
		Service:   "CCTV Installation",
		Message:   "Eight cameras for the warehouse.",
		Lang:      "ar",
		Status:    quote.StatusNew,
	}
	if err := repo.Create(context.Background(), q); err != nil {
		t.Fatalf("failed to seed quote: %v", err)
	}
	return q
}

// stubGateway stands in for the card provider so settlement answers can be
// scripted.
type stubGateway struct {
	session    *gateway.Session
	sessionErr error
	verify     *gateway.VerifyResult
	verifyErr  error
}

func (g *stubGateway) Name() string { return "stripe" }

func (g *stubGateway) CreateSession(ctx context.Context, amount float64, currency string, metadata map[string]string) (*gateway.Session, error) {
	return g.session, g.sessionErr
}

func (g *stubGateway) VerifyPayment(ctx context.Context, reference string) (*gateway.VerifyResult, error) {
	return g.verify, g.verifyErr
}

func (g *stubGateway) Refund(ctx context.Context, reference string) error { return nil }

func newPaymentService(pool *pgxpool.Pool, card gateway.Gateway) *service.PaymentService {
	return service.NewPaymentService(
		postgres.NewPaymentRepository(pool),
		postgres.NewInvoiceRepository(pool),
		postgres.NewQuoteRepository(pool),
		postgres.NewDB(pool),
		card,
		gateway.NewWalletGateway(),
		zap.NewNop(),
	)
}

func TestVerify_UnsettledSessionReportsFailure(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	q := seedQuote(t, pool)
	sessionID := "cs_test_" + uuid.NewString()
	card := &stubGateway{
		session: &gateway.Session{ID: sessionID, URL: "https://checkout.example/" + sessionID},
		verify:  &gateway.VerifyResult{Status: "unpaid", Amount: 1200},
	}
	svc := newPaymentService(pool, card)

	resp, err := svc.Create(ctx, &payment.CreateRequest{
		QuoteID: q.ID, Amount: 1200, PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Verify(ctx, &payment.VerifyRequest{PaymentID: resp.Payment.ID, SessionID: sessionID})
	if !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput when the session is not paid", err)
	}

	p, err := svc.Get(ctx, resp.Payment.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if p.Status != payment.StatusPending {
		t.Errorf("payment status = %s, want pending to stay untouched", p.Status)
	}

	fresh, err := postgres.NewQuoteRepository(pool).FindByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("quote lookup failed: %v", err)
	}
	if fresh.Status != quote.StatusNew {
		t.Errorf("quote status = %s, want new", fresh.Status)
	}
}

func TestVerify_PaidSessionSettlesAndCascades(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	q := seedQuote(t, pool)
	sessionID := "cs_test_" + uuid.NewString()
	card := &stubGateway{
		session: &gateway.Session{ID: sessionID, URL: "https://checkout.example/" + sessionID},
		verify:  &gateway.VerifyResult{Status: gateway.StatusPaid, Amount: 1200},
	}
	svc := newPaymentService(pool, card)

	resp, err := svc.Create(ctx, &payment.CreateRequest{
		QuoteID: q.ID, Amount: 1200, PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	p, err := svc.Verify(ctx, &payment.VerifyRequest{PaymentID: resp.Payment.ID, SessionID: sessionID})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if p.Status != payment.StatusCompleted {
		t.Errorf("payment status = %s, want completed", p.Status)
	}
	if !p.PaidAt.Valid {
		t.Error("paid_at should be set on settlement")
	}

	fresh, err := postgres.NewQuoteRepository(pool).FindByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("quote lookup failed: %v", err)
	}
	if fresh.Status != quote.StatusConverted {
		t.Errorf("quote status = %s, want converted", fresh.Status)
	}

	// Verifying again is a no-op returning the settled record.
	again, err := svc.Verify(ctx, &payment.VerifyRequest{PaymentID: resp.Payment.ID, SessionID: sessionID})
	if err != nil {
		t.Fatalf("repeat verify failed: %v", err)
	}
	if again.Status != payment.StatusCompleted {
		t.Errorf("repeat verify status = %s, want completed", again.Status)
	}
}

func TestCreate_SecondPaymentForQuoteRejected(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	q := seedQuote(t, pool)
	svc := newPaymentService(pool, &stubGateway{})

	if _, err := svc.Create(ctx, &payment.CreateRequest{
		QuoteID: q.ID, Amount: 900, PaymentMethod: "cash",
	}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(ctx, &payment.CreateRequest{
		QuoteID: q.ID, Amount: 900, PaymentMethod: "bank_transfer",
	})
	if !errors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("got %v, want ErrConflict for a second payment on the same quote", err)
	}
}

func TestCreate_GatewayFailureLeavesNoRow(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	q := seedQuote(t, pool)
	card := &stubGateway{
		sessionErr: fmt.Errorf("%w: provider unavailable", xerrors.ErrGateway),
	}
	svc := newPaymentService(pool, card)

	if _, err := svc.Create(ctx, &payment.CreateRequest{
		QuoteID: q.ID, Amount: 1500, PaymentMethod: "card",
	}); !errors.Is(err, xerrors.ErrGateway) {
		t.Fatalf("got %v, want ErrGateway", err)
	}

	_, err := postgres.NewPaymentRepository(pool).FindByQuoteID(ctx, q.ID)
	if !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound: the failed payment must be rolled back", err)
	}
}
