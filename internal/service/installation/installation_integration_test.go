package installation_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cctv-service/internal/domain/installation"
	"cctv-service/internal/domain/quote"
	"cctv-service/internal/domain/technician"
	xerrors "cctv-service/internal/pkg/errors"
	"cctv-service/internal/repository/postgres"
	service "cctv-service/internal/service/installation"
	"cctv-service/internal/service/storage"
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

func seedTechnician(t *testing.T, pool *pgxpool.Pool) *technician.Technician {
	t.Helper()
	repo := postgres.NewTechnicianRepository(pool)
	tech := &technician.Technician{
		Name:   "Test Technician",
		Email:  uuid.NewString() + "@crew.example.com",
		Phone:  "0662345678",
		Status: technician.StatusAvailable,
	}
	if err := repo.Create(context.Background(), tech); err != nil {
		t.Fatalf("failed to seed technician: %v", err)
	}
	return tech
}

func newInstallationService(t *testing.T, pool *pgxpool.Pool) *service.InstallationService {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("failed to build file store: %v", err)
	}
	return service.NewInstallationService(
		postgres.NewInstallationRepository(pool),
		postgres.NewQuoteRepository(pool),
		postgres.NewTechnicianRepository(pool),
		postgres.NewDB(pool),
		store,
		zap.NewNop(),
	)
}

func TestComplete_RepeatRefusedAndCountsOnce(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	q := seedQuote(t, pool)
	tech := seedTechnician(t, pool)
	techRepo := postgres.NewTechnicianRepository(pool)
	svc := newInstallationService(t, pool)

	ins, err := svc.Assign(ctx, q.ID, &installation.AssignRequest{
		TechnicianID:  tech.ID,
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	booked, err := techRepo.FindByID(ctx, tech.ID)
	if err != nil {
		t.Fatalf("technician lookup failed: %v", err)
	}
	if booked.CurrentJobs != 1 {
		t.Errorf("current_jobs = %d after assign, want 1", booked.CurrentJobs)
	}

	if _, err := svc.Start(ctx, ins.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := svc.Complete(ctx, ins.ID, &installation.CompleteRequest{LaborHours: 8}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	done, err := techRepo.FindByID(ctx, tech.ID)
	if err != nil {
		t.Fatalf("technician lookup failed: %v", err)
	}
	if done.CurrentJobs != 0 {
		t.Errorf("current_jobs = %d after completion, want 0", done.CurrentJobs)
	}
	if done.TotalCompleted != 1 {
		t.Errorf("total_completed = %d, want 1", done.TotalCompleted)
	}

	converted, err := postgres.NewQuoteRepository(pool).FindByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("quote lookup failed: %v", err)
	}
	if converted.Status != quote.StatusConverted {
		t.Errorf("quote status = %s, want converted", converted.Status)
	}

	// A second completion is refused and never touches the counters.
	if _, err := svc.Complete(ctx, ins.ID, &installation.CompleteRequest{LaborHours: 8}); !errors.Is(err, xerrors.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition on repeat completion", err)
	}

	after, err := techRepo.FindByID(ctx, tech.ID)
	if err != nil {
		t.Fatalf("technician lookup failed: %v", err)
	}
	if after.TotalCompleted != 1 {
		t.Errorf("total_completed = %d after repeat completion, want 1", after.TotalCompleted)
	}
	if after.CurrentJobs != 0 {
		t.Errorf("current_jobs = %d after repeat completion, want 0", after.CurrentJobs)
	}
}

func TestAssign_SecondInstallationForQuoteRejected(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	q := seedQuote(t, pool)
	tech := seedTechnician(t, pool)
	svc := newInstallationService(t, pool)

	req := &installation.AssignRequest{
		TechnicianID:  tech.ID,
		ScheduledDate: time.Now().Add(24 * time.Hour),
	}
	if _, err := svc.Assign(ctx, q.ID, req); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}

	if _, err := svc.Assign(ctx, q.ID, req); !errors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("got %v, want ErrConflict for a second installation on the same quote", err)
	}
}

func TestFail_KeepsTechnicianSlot(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	q := seedQuote(t, pool)
	tech := seedTechnician(t, pool)
	techRepo := postgres.NewTechnicianRepository(pool)
	svc := newInstallationService(t, pool)

	ins, err := svc.Assign(ctx, q.ID, &installation.AssignRequest{
		TechnicianID:  tech.ID,
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if _, err := svc.Fail(ctx, ins.ID, &installation.FailRequest{IssueDescription: "site access refused"}); err != nil {
		t.Fatalf("fail failed: %v", err)
	}

	after, err := techRepo.FindByID(ctx, tech.ID)
	if err != nil {
		t.Fatalf("technician lookup failed: %v", err)
	}
	if after.CurrentJobs != 1 {
		t.Errorf("current_jobs = %d after failure, want 1: the slot stays consumed", after.CurrentJobs)
	}
	if after.TotalCompleted != 0 {
		t.Errorf("total_completed = %d after failure, want 0", after.TotalCompleted)
	}
}
