// cmd/seed/main.go
//
// Seeds the pricing reference data and the bootstrap admin account.
// Safe to run repeatedly: catalog rows are upserted by their natural key.
package main

import (
	"context"
	"database/sql"
	"log"

	"cctv-service/internal/config"
	"cctv-service/internal/db"
	"cctv-service/internal/domain/catalog"
	"cctv-service/internal/pkg/jwt"
	"cctv-service/internal/repository/postgres"
	authService "cctv-service/internal/service/auth"
	"cctv-service/migrations"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var locations = []catalog.Location{
	{Name: "Casablanca", DifficultyMultiplier: 1.0, TravelFee: 0},
	{Name: "Rabat", DifficultyMultiplier: 1.0, TravelFee: 150},
	{Name: "Marrakech", DifficultyMultiplier: 1.1, TravelFee: 300},
	{Name: "Tangier", DifficultyMultiplier: 1.1, TravelFee: 350},
	{Name: "Agadir", DifficultyMultiplier: 1.2, TravelFee: 450},
	{Name: "Fes", DifficultyMultiplier: 1.1, TravelFee: 300},
}

var cameras = []catalog.CameraSpec{
	{Resolution: "2MP", BasePrice: 800, Description: sql.NullString{String: "1080p fixed dome, indoor", Valid: true}},
	{Resolution: "4MP", BasePrice: 1400, Description: sql.NullString{String: "2K varifocal bullet, IR 40m", Valid: true}},
	{Resolution: "5MP", BasePrice: 1900, Description: sql.NullString{String: "5MP turret, motorized zoom", Valid: true}},
	{Resolution: "8MP", BasePrice: 2500, Description: sql.NullString{String: "4K bullet, IR 60m, outdoor rated", Valid: true}},
}

var difficulties = []catalog.Difficulty{
	{Level: "easy", CostMultiplier: 1.0, HoursRequired: 4, Description: sql.NullString{String: "Single floor, existing conduits", Valid: true}},
	{Level: "medium", CostMultiplier: 1.3, HoursRequired: 8, Description: sql.NullString{String: "Multi-floor or exterior runs", Valid: true}},
	{Level: "hard", CostMultiplier: 1.6, HoursRequired: 14, Description: sql.NullString{String: "Masonry drilling, high mounts, long runs", Valid: true}},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[SEED] No .env file found, relying on system env vars")
	}

	cfg := config.Load()
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	pool, err := db.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool, logger); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	catalogRepo := postgres.NewCatalogRepository(pool)

	for i := range locations {
		if err := catalogRepo.UpsertLocation(ctx, &locations[i]); err != nil {
			logger.Fatal("failed to seed location", zap.String("name", locations[i].Name), zap.Error(err))
		}
	}
	logger.Info("locations seeded", zap.Int("count", len(locations)))

	for i := range cameras {
		if err := catalogRepo.UpsertCameraSpec(ctx, &cameras[i]); err != nil {
			logger.Fatal("failed to seed camera spec", zap.String("resolution", cameras[i].Resolution), zap.Error(err))
		}
	}
	logger.Info("camera specifications seeded", zap.Int("count", len(cameras)))

	for i := range difficulties {
		if err := catalogRepo.UpsertDifficulty(ctx, &difficulties[i]); err != nil {
			logger.Fatal("failed to seed difficulty", zap.String("level", difficulties[i].Level), zap.Error(err))
		}
	}
	logger.Info("difficulties seeded", zap.Int("count", len(difficulties)))

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		jwtManager, err := jwt.NewManager(jwt.Config{
			Secret: cfg.JWTSecret,
			Issuer: cfg.JWTIssuer,
			TTL:    cfg.JWTTTL,
		})
		if err != nil {
			logger.Fatal("failed to build JWT manager", zap.Error(err))
		}

		staffRepo := postgres.NewStaffRepository(pool)
		authSvc := authService.NewAuthService(staffRepo, jwtManager, logger)
		if err := authSvc.EnsureAdminExists(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Fatal("failed to seed admin account", zap.Error(err))
		}
	}

	logger.Info("seed complete")
}
