// internal/app/server.go
package app

import (
	"context"
	"fmt"

	"cctv-service/internal/config"
	"cctv-service/internal/db"
	"cctv-service/internal/gateway"
	authHandler "cctv-service/internal/handlers/auth"
	catalogHandler "cctv-service/internal/handlers/catalog"
	dashboardHandler "cctv-service/internal/handlers/dashboard"
	installationHandler "cctv-service/internal/handlers/installation"
	invoiceHandler "cctv-service/internal/handlers/invoice"
	paymentHandler "cctv-service/internal/handlers/payment"
	quoteHandler "cctv-service/internal/handlers/quote"
	technicianHandler "cctv-service/internal/handlers/technician"
	"cctv-service/internal/middleware"
	"cctv-service/internal/pkg/jwt"
	"cctv-service/internal/repository/postgres"
	authService "cctv-service/internal/service/auth"
	catalogService "cctv-service/internal/service/catalog"
	dashboardService "cctv-service/internal/service/dashboard"
	"cctv-service/internal/service/email"
	installationService "cctv-service/internal/service/installation"
	invoiceService "cctv-service/internal/service/invoice"
	paymentService "cctv-service/internal/service/payment"
	quoteService "cctv-service/internal/service/quote"
	"cctv-service/internal/service/storage"
	technicianService "cctv-service/internal/service/technician"
	"cctv-service/migrations"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := migrations.Apply(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		// The catalog cache degrades to plain DB reads without Redis.
		logger.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		redisClient = nil
	}

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(jwt.Config{
		Secret: s.cfg.JWTSecret,
		Issuer: s.cfg.JWTIssuer,
		TTL:    s.cfg.JWTTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	// ----- Email -----
	emailSender := email.NewEmailSender(
		s.cfg.SMTPHost,
		s.cfg.SMTPPort,
		s.cfg.SMTPUser,
		s.cfg.SMTPPass,
		s.cfg.SMTPFromName,
		s.cfg.SMTPSecure,
	)

	// ----- File storage -----
	fileStore, err := storage.NewLocalStore(s.cfg.UploadDir, s.cfg.AppURL)
	if err != nil {
		return fmt.Errorf("failed to set up file storage: %w", err)
	}

	// ----- Payment gateways -----
	gwConfig := gateway.Config{
		StripeSecretKey: s.cfg.StripeSecretKey,
		AppURL:          s.cfg.AppURL,
	}
	cardGW, err := gateway.New(s.cfg.CardGateway, gwConfig)
	if err != nil {
		return fmt.Errorf("failed to build card gateway: %w", err)
	}
	walletGW, err := gateway.New(s.cfg.WalletGateway, gwConfig)
	if err != nil {
		return fmt.Errorf("failed to build wallet gateway: %w", err)
	}

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	techRepo := postgres.NewTechnicianRepository(pool)
	installRepo := postgres.NewInstallationRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	staffRepo := postgres.NewStaffRepository(pool)

	// ----- Services -----
	catalogSvc := catalogService.NewCatalogService(catalogRepo, redisClient, logger)
	quoteEmails := quoteService.NewEmailHelper(emailSender, logger, s.cfg.CompanyEmail)
	quoteSvc := quoteService.NewQuoteService(quoteRepo, dbWrapper, catalogSvc, quoteEmails, logger)
	techSvc := technicianService.NewTechnicianService(techRepo, logger)
	installSvc := installationService.NewInstallationService(installRepo, quoteRepo, techRepo, dbWrapper, fileStore, logger)
	paymentSvc := paymentService.NewPaymentService(paymentRepo, invoiceRepo, quoteRepo, dbWrapper, cardGW, walletGW, logger)
	invoiceSvc := invoiceService.NewInvoiceService(invoiceRepo, paymentRepo, quoteRepo, logger)
	authSvc := authService.NewAuthService(staffRepo, jwtManager, logger)
	dashboardSvc := dashboardService.NewDashboardService(quoteRepo, installRepo, techRepo, paymentRepo, logger)

	if err := authSvc.EnsureAdminExists(ctx, s.cfg.AdminEmail, s.cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}

	// ----- Middleware -----
	authMw := middleware.NewAuthMiddleware(jwtManager)
	s.engine.Use(middleware.RecoveryMiddleware(logger))
	s.engine.Use(middleware.LoggingMiddleware(logger))
	s.engine.Use(middleware.CORSMiddleware())

	// ----- Handlers & routes -----
	handlers := &Handlers{
		AuthHandler:         authHandler.NewAuthHandler(authSvc),
		CatalogHandler:      catalogHandler.NewCatalogHandler(catalogSvc),
		QuoteHandler:        quoteHandler.NewQuoteHandler(quoteSvc),
		TechnicianHandler:   technicianHandler.NewTechnicianHandler(techSvc),
		InstallationHandler: installationHandler.NewInstallationHandler(installSvc),
		PaymentHandler:      paymentHandler.NewPaymentHandler(paymentSvc),
		InvoiceHandler:      invoiceHandler.NewInvoiceHandler(invoiceSvc),
		DashboardHandler:    dashboardHandler.NewDashboardHandler(dashboardSvc),
		AuthMiddleware:      authMw,
	}
	SetupRouter(s.engine, logger, s.cfg.UploadDir, handlers)

	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}
