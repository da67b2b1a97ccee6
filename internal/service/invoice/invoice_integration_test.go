package invoice_test

import (
	"context"
	"os"
	"testing"

	"cctv-service/internal/domain/invoice"
	"cctv-service/internal/domain/quote"
	"cctv-service/internal/repository/postgres"
	service "cctv-service/internal/service/invoice"
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

func TestGenerate_Idempotent(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := service.NewInvoiceService(
		postgres.NewInvoiceRepository(pool),
		postgres.NewPaymentRepository(pool),
		postgres.NewQuoteRepository(pool),
		zap.NewNop(),
	)
	q := seedQuote(t, pool)

	first, err := svc.Generate(ctx, q.ID, &invoice.GenerateRequest{Subtotal: 28300})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if first.Status != invoice.StatusIssued {
		t.Errorf("status = %s, want issued", first.Status)
	}
	if first.TaxAmount != 5660 || first.TotalAmount != 33960 {
		t.Errorf("totals = %v/%v, want 5660/33960", first.TaxAmount, first.TotalAmount)
	}
	if !first.DueDate.Valid {
		t.Error("due date should be set from the payment terms")
	}

	// Generating again returns the same invoice, never a second number.
	second, err := svc.Generate(ctx, q.ID, &invoice.GenerateRequest{Subtotal: 99999})
	if err != nil {
		t.Fatalf("repeat generate failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("repeat generate created invoice %d, want existing %d", second.ID, first.ID)
	}
	if second.InvoiceNumber != first.InvoiceNumber {
		t.Errorf("repeat generate issued number %q, want %q", second.InvoiceNumber, first.InvoiceNumber)
	}
	if second.Subtotal != first.Subtotal {
		t.Errorf("repeat generate changed subtotal to %v", second.Subtotal)
	}
}
