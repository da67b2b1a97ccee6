// internal/app/router.go
package app

import (
	authHandler "cctv-service/internal/handlers/auth"
	catalogHandler "cctv-service/internal/handlers/catalog"
	dashboardHandler "cctv-service/internal/handlers/dashboard"
	installationHandler "cctv-service/internal/handlers/installation"
	invoiceHandler "cctv-service/internal/handlers/invoice"
	paymentHandler "cctv-service/internal/handlers/payment"
	quoteHandler "cctv-service/internal/handlers/quote"
	technicianHandler "cctv-service/internal/handlers/technician"
	"cctv-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler         *authHandler.AuthHandler
	CatalogHandler      *catalogHandler.CatalogHandler
	QuoteHandler        *quoteHandler.QuoteHandler
	TechnicianHandler   *technicianHandler.TechnicianHandler
	InstallationHandler *installationHandler.InstallationHandler
	PaymentHandler      *paymentHandler.PaymentHandler
	InvoiceHandler      *invoiceHandler.InvoiceHandler
	DashboardHandler    *dashboardHandler.DashboardHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, uploadDir string, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Uploaded Files ====================
	r.Static("/uploads", uploadDir)

	// ==================== Public Routes ====================
	catalog := api.Group("/catalog")
	{
		catalog.GET("/locations", h.CatalogHandler.ListLocations)
		catalog.GET("/cameras", h.CatalogHandler.ListCameraSpecs)
		catalog.GET("/difficulties", h.CatalogHandler.ListDifficulties)
	}
	api.POST("/calculate-price", h.CatalogHandler.CalculatePrice)
	api.POST("/quotes", h.QuoteHandler.Submit)

	// Gateway redirects land here, so verification stays public.
	api.POST("/payments/verify", h.PaymentHandler.Verify)

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.AuthHandler.Login)
		auth.GET("/me", h.AuthMiddleware.Auth(), h.AuthHandler.GetMe)
	}

	// ==================== Quotes (back office) ====================
	quotes := api.Group("/quotes")
	quotes.Use(h.AuthMiddleware.Auth())
	{
		quotes.GET("", h.QuoteHandler.List)
		quotes.GET("/stats", h.QuoteHandler.Stats)
		quotes.GET("/:id", h.QuoteHandler.Get)
		quotes.PUT("/:id/status", h.QuoteHandler.UpdateStatus)
		quotes.GET("/:id/payment", h.PaymentHandler.GetByQuote)
		quotes.GET("/:id/invoice", h.InvoiceHandler.GetByQuote)
		quotes.POST("/:id/installation", h.InstallationHandler.Assign)
		quotes.POST("/:id/invoice", h.InvoiceHandler.Generate)
	}

	// ==================== Technicians ====================
	technicians := api.Group("/technicians")
	technicians.Use(h.AuthMiddleware.Auth())
	{
		technicians.GET("", h.TechnicianHandler.List)
		technicians.GET("/:id", h.TechnicianHandler.Get)
		technicians.GET("/:id/profile", h.TechnicianHandler.Profile)
		technicians.POST("", h.AuthMiddleware.RequireRole("admin"), h.TechnicianHandler.Create)
		technicians.PUT("/:id", h.AuthMiddleware.RequireRole("admin"), h.TechnicianHandler.Update)
	}

	// ==================== Installations ====================
	installations := api.Group("/installations")
	installations.Use(h.AuthMiddleware.Auth())
	{
		installations.GET("", h.InstallationHandler.List)
		installations.GET("/:id", h.InstallationHandler.Get)
		installations.PUT("/:id/reassign", h.AuthMiddleware.RequireRole("admin"), h.InstallationHandler.Reassign)
		installations.POST("/:id/start", h.InstallationHandler.Start)
		installations.POST("/:id/complete", h.InstallationHandler.Complete)
		installations.POST("/:id/fail", h.InstallationHandler.Fail)
		installations.POST("/:id/feedback", h.InstallationHandler.Feedback)
		installations.POST("/:id/photos", h.InstallationHandler.UploadPhoto)
	}

	// ==================== Payments ====================
	payments := api.Group("/payments")
	payments.Use(h.AuthMiddleware.Auth())
	{
		payments.GET("", h.PaymentHandler.List)
		payments.GET("/:id", h.PaymentHandler.Get)
		payments.POST("", h.PaymentHandler.Create)
		payments.POST("/:id/confirm", h.AuthMiddleware.RequireRole("admin"), h.PaymentHandler.ConfirmManual)
		payments.POST("/:id/refund", h.AuthMiddleware.RequireRole("admin"), h.PaymentHandler.Refund)
		payments.POST("/:id/fail", h.AuthMiddleware.RequireRole("admin"), h.PaymentHandler.MarkFailed)
	}

	// ==================== Invoices ====================
	invoices := api.Group("/invoices")
	invoices.Use(h.AuthMiddleware.Auth())
	{
		invoices.GET("", h.InvoiceHandler.List)
		invoices.GET("/:id", h.InvoiceHandler.Get)
	}

	// ==================== Dashboard ====================
	api.GET("/dashboard", h.AuthMiddleware.Auth(), h.DashboardHandler.Overview)
}
