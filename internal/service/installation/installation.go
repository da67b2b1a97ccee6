// internal/service/installation/installation.go
package installation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"cctv-service/internal/domain/installation"
	"cctv-service/internal/domain/quote"
	"cctv-service/internal/domain/technician"
	xerrors "cctv-service/internal/pkg/errors"
	"cctv-service/internal/repository/postgres"
	"cctv-service/internal/service/storage"

	"go.uber.org/zap"
)

var allowedPhotoExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

type InstallationService struct {
	installRepo *postgres.InstallationRepository
	quoteRepo   *postgres.QuoteRepository
	techRepo    *postgres.TechnicianRepository
	db          *postgres.DB
	files       storage.FileStore
	logger      *zap.Logger
}

func NewInstallationService(
	installRepo *postgres.InstallationRepository,
	quoteRepo *postgres.QuoteRepository,
	techRepo *postgres.TechnicianRepository,
	db *postgres.DB,
	files storage.FileStore,
	logger *zap.Logger,
) *InstallationService {
	return &InstallationService{
		installRepo: installRepo,
		quoteRepo:   quoteRepo,
		techRepo:    techRepo,
		db:          db,
		files:       files,
		logger:      logger,
	}
}

// Assign creates the installation for a quote and books the technician. The
// whole step runs in one transaction: the installation row, the technician's
// job counter, and the quote moving to contacted commit together or not at
// all.
func (s *InstallationService) Assign(ctx context.Context, quoteID int64, req *installation.AssignRequest) (*installation.Installation, error) {
	tech, err := s.techRepo.FindByID(ctx, req.TechnicianID)
	if err != nil {
		return nil, fmt.Errorf("technician: %w", err)
	}
	if tech.Status == technician.StatusOffDuty {
		return nil, fmt.Errorf("%w: technician is off duty", xerrors.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q, err := s.quoteRepo.FindByIDTx(ctx, tx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}
	if q.Status == quote.StatusRejected {
		return nil, fmt.Errorf("%w: quote was rejected", xerrors.ErrInvalidTransition)
	}

	ins := &installation.Installation{
		QuoteID:       quoteID,
		TechnicianID:  sql.NullInt64{Int64: req.TechnicianID, Valid: true},
		Status:        installation.StatusPending,
		ScheduledDate: sql.NullTime{Time: req.ScheduledDate, Valid: true},
	}
	if err := s.installRepo.Create(ctx, tx, ins); err != nil {
		return nil, err
	}

	if err := s.techRepo.IncrementJobs(ctx, tx, req.TechnicianID); err != nil {
		return nil, err
	}

	if q.Status == quote.StatusNew {
		if err := s.quoteRepo.UpdateStatus(ctx, tx, quoteID, quote.StatusContacted); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit assignment: %w", err)
	}

	s.logger.Info("installation assigned",
		zap.Int64("installation_id", ins.ID),
		zap.Int64("quote_id", quoteID),
		zap.Int64("technician_id", req.TechnicianID),
	)

	return ins, nil
}

// Reassign moves a pending installation to another technician, releasing the
// previous technician's slot.
func (s *InstallationService) Reassign(ctx context.Context, id int64, req *installation.AssignRequest) (*installation.Installation, error) {
	tech, err := s.techRepo.FindByID(ctx, req.TechnicianID)
	if err != nil {
		return nil, fmt.Errorf("technician: %w", err)
	}
	if tech.Status == technician.StatusOffDuty {
		return nil, fmt.Errorf("%w: technician is off duty", xerrors.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ins, err := s.installRepo.FindByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if ins.Status != installation.StatusPending {
		return nil, fmt.Errorf("%w: only pending installations can be reassigned",
			xerrors.ErrInvalidTransition)
	}

	if err := s.installRepo.Reassign(ctx, tx, id, req.TechnicianID, req.ScheduledDate); err != nil {
		return nil, err
	}

	if ins.TechnicianID.Valid && ins.TechnicianID.Int64 != req.TechnicianID {
		if err := s.techRepo.DecrementJobs(ctx, tx, ins.TechnicianID.Int64); err != nil {
			return nil, err
		}
		if err := s.techRepo.IncrementJobs(ctx, tx, req.TechnicianID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit reassignment: %w", err)
	}

	s.logger.Info("installation reassigned",
		zap.Int64("installation_id", id),
		zap.Int64("technician_id", req.TechnicianID),
	)

	return s.installRepo.FindByID(ctx, id)
}

// Start moves a pending installation to in-progress.
func (s *InstallationService) Start(ctx context.Context, id int64) (*installation.Installation, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := s.installRepo.FindByIDTx(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := s.installRepo.Start(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit start: %w", err)
	}

	s.logger.Info("installation started", zap.Int64("installation_id", id))
	return s.installRepo.FindByID(ctx, id)
}

// Complete finalizes an in-progress installation. In the same transaction
// the technician's slot is released, their completed counter bumped, and the
// quote marked converted. Completing twice is refused by the status guard.
func (s *InstallationService) Complete(ctx context.Context, id int64, req *installation.CompleteRequest) (*installation.Installation, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ins, err := s.installRepo.FindByIDTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := s.installRepo.Complete(ctx, tx, id, req); err != nil {
		return nil, err
	}

	if ins.TechnicianID.Valid {
		if err := s.techRepo.RecordCompletion(ctx, tx, ins.TechnicianID.Int64); err != nil {
			return nil, err
		}
	}

	if err := s.markQuoteConverted(ctx, tx, ins.QuoteID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit completion: %w", err)
	}

	s.logger.Info("installation completed",
		zap.Int64("installation_id", id),
		zap.Int64("quote_id", ins.QuoteID),
		zap.Float64("labor_hours", req.LaborHours),
	)

	return s.installRepo.FindByID(ctx, id)
}

// Fail marks the installation failed. The technician's slot is not
// released: a failed job still needs their attention before rebooking.
func (s *InstallationService) Fail(ctx context.Context, id int64, req *installation.FailRequest) (*installation.Installation, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := s.installRepo.FindByIDTx(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := s.installRepo.Fail(ctx, tx, id, req); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit failure: %w", err)
	}

	s.logger.Warn("installation failed",
		zap.Int64("installation_id", id),
		zap.String("issue", req.IssueDescription),
	)

	return s.installRepo.FindByID(ctx, id)
}

// RecordFeedback stores customer satisfaction for a completed installation.
func (s *InstallationService) RecordFeedback(ctx context.Context, id int64, req *installation.FeedbackRequest) error {
	if err := s.installRepo.SetSatisfaction(ctx, id, req.Satisfaction); err != nil {
		if errors.Is(err, xerrors.ErrInvalidTransition) {
			return fmt.Errorf("%w: feedback is only accepted on completed installations",
				xerrors.ErrInvalidTransition)
		}
		return err
	}

	s.logger.Info("installation feedback recorded",
		zap.Int64("installation_id", id),
		zap.Int("satisfaction", req.Satisfaction),
	)
	return nil
}

// AddPhoto stores an uploaded site photo and attaches its URL.
func (s *InstallationService) AddPhoto(ctx context.Context, id int64, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filename[strings.LastIndex(filename, ".")+1:])
	if !allowedPhotoExts["."+ext] {
		return "", fmt.Errorf("%w: unsupported photo format %q", xerrors.ErrInvalidInput, ext)
	}

	if _, err := s.installRepo.FindByID(ctx, id); err != nil {
		return "", err
	}

	url, err := s.files.Save(filename, r)
	if err != nil {
		s.logger.Error("failed to store installation photo", zap.Error(err))
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	if err := s.installRepo.AppendPhoto(ctx, id, url); err != nil {
		return "", err
	}

	s.logger.Info("installation photo added",
		zap.Int64("installation_id", id),
		zap.String("url", url),
	)
	return url, nil
}

// Get retrieves an installation by ID.
func (s *InstallationService) Get(ctx context.Context, id int64) (*installation.Installation, error) {
	return s.installRepo.FindByID(ctx, id)
}

// GetByQuote retrieves the installation for a quote.
func (s *InstallationService) GetByQuote(ctx context.Context, quoteID int64) (*installation.Installation, error) {
	return s.installRepo.FindByQuoteID(ctx, quoteID)
}

// List retrieves installations with filters and pagination.
func (s *InstallationService) List(ctx context.Context, filters *installation.ListFilters) (*installation.ListResponse, error) {
	if filters.Status != "" && !installation.Status(filters.Status).Valid() {
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

	installs, total, err := s.installRepo.List(ctx, *filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list installations: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &installation.ListResponse{
		Installations: installs,
		Total:         total,
		Page:          filters.Page,
		PageSize:      filters.PageSize,
		TotalPages:    totalPages,
	}, nil
}

// Stats returns the dashboard installation counters.
func (s *InstallationService) Stats(ctx context.Context) (*installation.InstallationStats, error) {
	return s.installRepo.StatusCounts(ctx)
}

// markQuoteConverted moves the quote to converted if it is not already
// there. Already-converted quotes are left alone so cascades stay
// idempotent.
func (s *InstallationService) markQuoteConverted(ctx context.Context, tx postgres.Querier, quoteID int64) error {
	q, err := s.quoteRepo.FindByIDTx(ctx, tx, quoteID)
	if err != nil {
		return err
	}
	if q.Status == quote.StatusConverted {
		return nil
	}
	if !quote.CanTransition(q.Status, quote.StatusConverted) {
		return fmt.Errorf("%w: cannot convert quote in status %s",
			xerrors.ErrInvalidTransition, q.Status)
	}
	return s.quoteRepo.UpdateStatus(ctx, tx, quoteID, quote.StatusConverted)
}
