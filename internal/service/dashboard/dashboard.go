// internal/service/dashboard/dashboard.go
package dashboard

import (
	"context"
	"fmt"

	"cctv-service/internal/domain/installation"
	"cctv-service/internal/domain/quote"
	"cctv-service/internal/domain/technician"
	"cctv-service/internal/repository/postgres"

	"go.uber.org/zap"
)

// Stats is the back-office landing page snapshot.
type Stats struct {
	Quotes        *quote.QuoteStats               `json:"quotes"`
	Installations *installation.InstallationStats `json:"installations"`
	Team          *technician.TeamStats           `json:"team"`
	Revenue30Days float64                         `json:"revenue_30_days"`
}

type DashboardService struct {
	quoteRepo   *postgres.QuoteRepository
	installRepo *postgres.InstallationRepository
	techRepo    *postgres.TechnicianRepository
	paymentRepo *postgres.PaymentRepository
	logger      *zap.Logger
}

func NewDashboardService(
	quoteRepo *postgres.QuoteRepository,
	installRepo *postgres.InstallationRepository,
	techRepo *postgres.TechnicianRepository,
	paymentRepo *postgres.PaymentRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		quoteRepo:   quoteRepo,
		installRepo: installRepo,
		techRepo:    techRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// Overview aggregates the dashboard counters.
func (s *DashboardService) Overview(ctx context.Context) (*Stats, error) {
	quoteStats, err := s.quoteRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("quote stats: %w", err)
	}
	installStats, err := s.installRepo.StatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("installation stats: %w", err)
	}
	teamStats, err := s.techRepo.TeamStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("team stats: %w", err)
	}
	revenue, err := s.paymentRepo.Revenue(ctx, 30)
	if err != nil {
		return nil, fmt.Errorf("revenue: %w", err)
	}

	return &Stats{
		Quotes:        quoteStats,
		Installations: installStats,
		Team:          teamStats,
		Revenue30Days: revenue,
	}, nil
}
