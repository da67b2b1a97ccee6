// internal/service/catalog/catalog.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cctv-service/internal/domain/catalog"
	"cctv-service/internal/pricing"
	"cctv-service/internal/repository/postgres"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheTTL = 10 * time.Minute

const (
	cacheKeyLocations    = "catalog:locations"
	cacheKeyCameras      = "catalog:cameras"
	cacheKeyDifficulties = "catalog:difficulties"
)

// CatalogService serves the pricing reference data with a Redis read-through
// cache, and runs price calculations against it.
type CatalogService struct {
	catalogRepo *postgres.CatalogRepository
	cache       *redis.Client
	logger      *zap.Logger
}

func NewCatalogService(catalogRepo *postgres.CatalogRepository, cache *redis.Client, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		cache:       cache,
		logger:      logger,
	}
}

// CalculateRequest names the inputs for a price calculation. Field names
// surface in validation errors, so they match the JSON contract.
type CalculateRequest struct {
	LocationID      int64  `json:"location_id" binding:"required"`
	CameraCount     int    `json:"camera_count" binding:"required"`
	Resolution      string `json:"resolution" binding:"required"`
	DifficultyLevel string `json:"difficulty_level" binding:"required"`
}

func (s *CatalogService) ListLocations(ctx context.Context) ([]catalog.Location, error) {
	var out []catalog.Location
	if s.cacheGet(ctx, cacheKeyLocations, &out) {
		return out, nil
	}

	out, err := s.catalogRepo.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, cacheKeyLocations, out)
	return out, nil
}

func (s *CatalogService) ListCameraSpecs(ctx context.Context) ([]catalog.CameraSpec, error) {
	var out []catalog.CameraSpec
	if s.cacheGet(ctx, cacheKeyCameras, &out) {
		return out, nil
	}

	out, err := s.catalogRepo.ListCameraSpecs(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, cacheKeyCameras, out)
	return out, nil
}

func (s *CatalogService) ListDifficulties(ctx context.Context) ([]catalog.Difficulty, error) {
	var out []catalog.Difficulty
	if s.cacheGet(ctx, cacheKeyDifficulties, &out) {
		return out, nil
	}

	out, err := s.catalogRepo.ListDifficulties(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, cacheKeyDifficulties, out)
	return out, nil
}

// CalculatePrice resolves the reference rows and runs the pricing engine.
// Unknown reference values surface as not-found errors naming the field.
func (s *CatalogService) CalculatePrice(ctx context.Context, req *CalculateRequest) (*pricing.Breakdown, error) {
	loc, err := s.catalogRepo.FindLocation(ctx, req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}
	cam, err := s.catalogRepo.FindCameraByResolution(ctx, req.Resolution)
	if err != nil {
		return nil, fmt.Errorf("resolution: %w", err)
	}
	diff, err := s.catalogRepo.FindDifficultyByLevel(ctx, req.DifficultyLevel)
	if err != nil {
		return nil, fmt.Errorf("difficulty_level: %w", err)
	}

	return pricing.Calculate(pricing.Input{
		CameraCount: req.CameraCount,
		Camera:      *cam,
		Location:    *loc,
		Difficulty:  *diff,
	})
}

// InvalidateCache drops the cached reference data after seeding.
func (s *CatalogService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKeyLocations, cacheKeyCameras, cacheKeyDifficulties).Err(); err != nil {
		s.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}

// cacheGet loads a cached value. Cache errors degrade to a DB read.
func (s *CatalogService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("failed to decode cached catalog entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, val any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache catalog entry", zap.String("key", key), zap.Error(err))
	}
}
