// internal/service/quote/quote.go
package quote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cctv-service/internal/domain/quote"
	xerrors "cctv-service/internal/pkg/errors"
	"cctv-service/internal/repository/postgres"
	"cctv-service/internal/service/catalog"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type QuoteService struct {
	quoteRepo   *postgres.QuoteRepository
	db          *postgres.DB
	catalogSvc  *catalog.CatalogService
	emailHelper *EmailHelper
	logger      *zap.Logger
}

func NewQuoteService(
	quoteRepo *postgres.QuoteRepository,
	db *postgres.DB,
	catalogSvc *catalog.CatalogService,
	emailHelper *EmailHelper,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		db:          db,
		catalogSvc:  catalogSvc,
		emailHelper: emailHelper,
		logger:      logger,
	}
}

// Submit handles a public quote request. Contact fields are validated, and
// when the request carries full pricing details an estimate is computed and
// stored with the quote. Confirmation and notification emails go out after
// the write.
func (s *QuoteService) Submit(ctx context.Context, req *quote.SubmitRequest, ip, userAgent string) (*quote.QuoteRequest, map[string]string, error) {
	req.Normalize()
	if fieldErrs, err := req.Validate(); err != nil {
		return nil, fieldErrs, err
	}

	q := &quote.QuoteRequest{
		Reference: generateReference(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Service:   req.Service,
		Message:   req.Message,
		Lang:      req.Lang,
		IPAddress: sql.NullString{String: ip, Valid: ip != ""},
		UserAgent: sql.NullString{String: userAgent, Valid: userAgent != ""},
		Status:    quote.StatusNew,
	}

	if req.HasPricingDetails() {
		breakdown, err := s.catalogSvc.CalculatePrice(ctx, &catalog.CalculateRequest{
			LocationID:      req.LocationID,
			CameraCount:     req.CameraCount,
			Resolution:      req.Resolution,
			DifficultyLevel: req.DifficultyLevel,
		})
		if err != nil {
			if errors.Is(err, xerrors.ErrNotFound) || errors.Is(err, xerrors.ErrInvalidInput) {
				return nil, nil, fmt.Errorf("%w: %s", xerrors.ErrInvalidInput, err.Error())
			}
			return nil, nil, err
		}

		q.LocationID = sql.NullInt64{Int64: req.LocationID, Valid: true}
		q.CameraCount = sql.NullInt32{Int32: int32(req.CameraCount), Valid: true}
		q.Resolution = sql.NullString{String: req.Resolution, Valid: true}
		q.DifficultyLevel = sql.NullString{String: req.DifficultyLevel, Valid: true}
		q.EstimatedPrice = sql.NullFloat64{Float64: breakdown.TotalPrice, Valid: true}
	}

	if err := s.quoteRepo.Create(ctx, q); err != nil {
		s.logger.Error("failed to create quote", zap.Error(err))
		return nil, nil, err
	}

	s.logger.Info("quote submitted",
		zap.Int64("quote_id", q.ID),
		zap.String("reference", q.Reference),
		zap.Bool("priced", q.EstimatedPrice.Valid),
	)

	s.emailHelper.SendQuoteEmails(q)
	return q, nil, nil
}

// Get retrieves a quote by ID.
func (s *QuoteService) Get(ctx context.Context, id int64) (*quote.QuoteRequest, error) {
	return s.quoteRepo.FindByID(ctx, id)
}

// List retrieves quotes with filters and pagination.
func (s *QuoteService) List(ctx context.Context, filters *quote.ListFilters) (*quote.ListResponse, error) {
	if filters.Status != "" && !quote.Status(filters.Status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", xerrors.ErrInvalidInput, filters.Status)
	}
	clampPaging(&filters.Page, &filters.PageSize)

	quotes, total, err := s.quoteRepo.List(ctx, *filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	return &quote.ListResponse{
		Quotes:     quotes,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages(total, filters.PageSize),
	}, nil
}

// UpdateStatus moves a quote through its lifecycle. Terminal quotes refuse
// any further change.
func (s *QuoteService) UpdateStatus(ctx context.Context, id int64, newStatus string) (*quote.QuoteRequest, error) {
	target := quote.Status(newStatus)
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", xerrors.ErrInvalidInput, newStatus)
	}

	q, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if q.Status == target {
		return q, nil
	}
	if !quote.CanTransition(q.Status, target) {
		return nil, fmt.Errorf("%w: cannot move quote from %s to %s",
			xerrors.ErrInvalidTransition, q.Status, target)
	}

	if err := s.quoteRepo.UpdateStatus(ctx, s.db.Pool(), id, target); err != nil {
		return nil, err
	}

	s.logger.Info("quote status updated",
		zap.Int64("quote_id", id),
		zap.String("from", string(q.Status)),
		zap.String("to", string(target)),
	)

	q.Status = target
	return q, nil
}

// Stats returns the dashboard quote counters.
func (s *QuoteService) Stats(ctx context.Context) (*quote.QuoteStats, error) {
	return s.quoteRepo.Stats(ctx)
}

// generateReference issues a sortable unique quote reference.
func generateReference() string {
	return "Q-" + ulid.Make().String()
}

func clampPaging(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 {
		*pageSize = 20
	}
	if *pageSize > 100 {
		*pageSize = 100
	}
}

func totalPages(total int64, pageSize int) int {
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
