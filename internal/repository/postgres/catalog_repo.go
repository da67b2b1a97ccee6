// internal/repository/postgres/catalog_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"cctv-service/internal/domain/catalog"
	xerrors "cctv-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository serves the seeded reference data: locations, camera
// specifications and installation difficulties.
type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListLocations(ctx context.Context) ([]catalog.Location, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, difficulty_multiplier, travel_fee, created_at
		FROM locations ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var out []catalog.Location
	for rows.Next() {
		var l catalog.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.DifficultyMultiplier, &l.TravelFee, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) FindLocation(ctx context.Context, id int64) (*catalog.Location, error) {
	var l catalog.Location
	err := r.db.QueryRow(ctx, `
		SELECT id, name, difficulty_multiplier, travel_fee, created_at
		FROM locations WHERE id = $1
	`, id).Scan(&l.ID, &l.Name, &l.DifficultyMultiplier, &l.TravelFee, &l.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find location: %w", err)
	}
	return &l, nil
}

func (r *CatalogRepository) ListCameraSpecs(ctx context.Context) ([]catalog.CameraSpec, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, resolution, base_price, description, created_at
		FROM camera_specifications ORDER BY base_price
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list camera specs: %w", err)
	}
	defer rows.Close()

	var out []catalog.CameraSpec
	for rows.Next() {
		var c catalog.CameraSpec
		if err := rows.Scan(&c.ID, &c.Resolution, &c.BasePrice, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan camera spec: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) FindCameraByResolution(ctx context.Context, resolution string) (*catalog.CameraSpec, error) {
	var c catalog.CameraSpec
	err := r.db.QueryRow(ctx, `
		SELECT id, resolution, base_price, description, created_at
		FROM camera_specifications WHERE resolution = $1
	`, resolution).Scan(&c.ID, &c.Resolution, &c.BasePrice, &c.Description, &c.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find camera spec: %w", err)
	}
	return &c, nil
}

func (r *CatalogRepository) ListDifficulties(ctx context.Context) ([]catalog.Difficulty, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, level, cost_multiplier, hours_required, description, created_at
		FROM installation_difficulties ORDER BY cost_multiplier
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list difficulties: %w", err)
	}
	defer rows.Close()

	var out []catalog.Difficulty
	for rows.Next() {
		var d catalog.Difficulty
		if err := rows.Scan(&d.ID, &d.Level, &d.CostMultiplier, &d.HoursRequired, &d.Description, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan difficulty: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) FindDifficultyByLevel(ctx context.Context, level string) (*catalog.Difficulty, error) {
	var d catalog.Difficulty
	err := r.db.QueryRow(ctx, `
		SELECT id, level, cost_multiplier, hours_required, description, created_at
		FROM installation_difficulties WHERE level = $1
	`, level).Scan(&d.ID, &d.Level, &d.CostMultiplier, &d.HoursRequired, &d.Description, &d.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find difficulty: %w", err)
	}
	return &d, nil
}

// UpsertLocation seeds or refreshes a location by name.
func (r *CatalogRepository) UpsertLocation(ctx context.Context, l *catalog.Location) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO locations (name, difficulty_multiplier, travel_fee)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET difficulty_multiplier = EXCLUDED.difficulty_multiplier,
		    travel_fee = EXCLUDED.travel_fee
		RETURNING id, created_at
	`, l.Name, l.DifficultyMultiplier, l.TravelFee).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert location: %w", err)
	}
	return nil
}

// UpsertCameraSpec seeds or refreshes a camera spec by resolution.
func (r *CatalogRepository) UpsertCameraSpec(ctx context.Context, c *catalog.CameraSpec) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO camera_specifications (resolution, base_price, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (resolution) DO UPDATE
		SET base_price = EXCLUDED.base_price,
		    description = EXCLUDED.description
		RETURNING id, created_at
	`, c.Resolution, c.BasePrice, c.Description).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert camera spec: %w", err)
	}
	return nil
}

// UpsertDifficulty seeds or refreshes a difficulty tier by level.
func (r *CatalogRepository) UpsertDifficulty(ctx context.Context, d *catalog.Difficulty) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO installation_difficulties (level, cost_multiplier, hours_required, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (level) DO UPDATE
		SET cost_multiplier = EXCLUDED.cost_multiplier,
		    hours_required = EXCLUDED.hours_required,
		    description = EXCLUDED.description
		RETURNING id, created_at
	`, d.Level, d.CostMultiplier, d.HoursRequired, d.Description).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert difficulty: %w", err)
	}
	return nil
}
