// internal/service/technician/technician.go
package technician

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cctv-service/internal/domain/technician"
	xerrors "cctv-service/internal/pkg/errors"
	"cctv-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type TechnicianService struct {
	techRepo *postgres.TechnicianRepository
	logger   *zap.Logger
}

func NewTechnicianService(techRepo *postgres.TechnicianRepository, logger *zap.Logger) *TechnicianService {
	return &TechnicianService{
		techRepo: techRepo,
		logger:   logger,
	}
}

// Create registers a new field technician.
func (s *TechnicianService) Create(ctx context.Context, req *technician.CreateRequest) (*technician.Technician, error) {
	t := &technician.Technician{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          strings.TrimSpace(req.Phone),
		Specialization: sql.NullString{String: req.Specialization, Valid: req.Specialization != ""},
		Status:         technician.StatusAvailable,
		Salary:         sql.NullFloat64{Float64: req.Salary, Valid: req.Salary > 0},
	}

	if err := s.techRepo.Create(ctx, t); err != nil {
		s.logger.Error("failed to create technician", zap.Error(err))
		return nil, err
	}

	s.logger.Info("technician created",
		zap.Int64("technician_id", t.ID),
		zap.String("email", t.Email),
	)
	return t, nil
}

// Get retrieves a technician by ID.
func (s *TechnicianService) Get(ctx context.Context, id int64) (*technician.Technician, error) {
	return s.techRepo.FindByID(ctx, id)
}

// Update applies a partial update to a technician.
func (s *TechnicianService) Update(ctx context.Context, id int64, req *technician.UpdateRequest) (*technician.Technician, error) {
	if req.Status != nil && !technician.Status(*req.Status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", xerrors.ErrInvalidInput, *req.Status)
	}

	if err := s.techRepo.Update(ctx, id, req); err != nil {
		return nil, err
	}

	s.logger.Info("technician updated", zap.Int64("technician_id", id))
	return s.techRepo.FindByID(ctx, id)
}

// List retrieves technicians with filters and pagination.
func (s *TechnicianService) List(ctx context.Context, filters *technician.ListFilters) (*technician.ListResponse, error) {
	if filters.Status != "" && !technician.Status(filters.Status).Valid() {
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

	techs, total, err := s.techRepo.List(ctx, *filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list technicians: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &technician.ListResponse{
		Technicians: techs,
		Total:       total,
		Page:        filters.Page,
		PageSize:    filters.PageSize,
		TotalPages:  totalPages,
	}, nil
}

// Profile returns a technician with their job history aggregates. Salary is
// never serialized out of this endpoint.
func (s *TechnicianService) Profile(ctx context.Context, id int64) (*technician.ProfileResponse, error) {
	t, err := s.techRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.techRepo.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	stats.CurrentJobs = t.CurrentJobs
	stats.TotalCompleted = t.TotalCompleted
	stats.Rating = t.Rating

	return &technician.ProfileResponse{
		Profile: *t,
		Stats:   *stats,
	}, nil
}

// TeamStats returns the dashboard team counters.
func (s *TechnicianService) TeamStats(ctx context.Context) (*technician.TeamStats, error) {
	return s.techRepo.TeamStats(ctx)
}
