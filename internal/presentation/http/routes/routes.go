package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/obakr/qayd-api/internal/config"
	"github.com/obakr/qayd-api/internal/domain/entity"
	domainRepo "github.com/obakr/qayd-api/internal/domain/repository"
	"github.com/obakr/qayd-api/internal/presentation/http/handler"
	"github.com/obakr/qayd-api/internal/presentation/http/middleware"
	"github.com/obakr/qayd-api/pkg/logger"
	"github.com/obakr/qayd-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	POS       *handler.POSHandler
	Invoice   *handler.InvoiceHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Catalog   *handler.CatalogHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
	User      *handler.UserHandler
	Company   *handler.CompanyHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *logger.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-register rate limiter; keys fall back to client IP outside
		// the register scope
		rateLimiter := middleware.NewRegisterRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Register-facing cart and settlement routes
	registerPOSRoutes(protected, h, deps)

	// Invoices
	registerInvoiceRoutes(protected, h, deps)

	// Products
	registerProductRoutes(protected, h)

	// Categories, sales categories and payment types
	registerCatalogRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Dashboard and reports
	registerDashboardRoutes(protected, h)

	// Users (Admin)
	registerUserRoutes(protected, h)

	// Company profile
	registerCompanyRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerPOSRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	pos := protected.Group("/pos/:register")
	{
		pos.GET("/cart", h.POS.GetCart)
		pos.DELETE("/cart", h.POS.ResetCart)
		pos.POST("/cart/items", h.POS.AddProduct)
		pos.PUT("/cart/items", h.POS.UpdateQuantity)
		pos.DELETE("/cart/items", h.POS.RemoveLine)
		pos.POST("/cart/barcode", h.POS.AddByBarcode)
		pos.POST("/payments", h.POS.AddPaymentEntry)
		pos.DELETE("/payments", h.POS.RemovePaymentEntry)

		// Settlement endpoints require an idempotency key so a retried
		// request never issues a second invoice
		pos.POST("/sale", idempotency, h.POS.DirectSale)
		pos.POST("/split", idempotency, h.POS.BeginSplit)
		pos.POST("/settle", idempotency, h.POS.ProcessSplit)
		pos.POST("/refund", idempotency, h.POS.RefundCart)
		pos.POST("/transfer", idempotency, h.POS.Transfer)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/open", h.Invoice.ListOpen)
		invoices.GET("/number/:number", h.Invoice.GetByNumber)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/:id/payments", h.Invoice.ListPayments)
		invoices.POST("/:id/refund", idempotency, h.POS.RefundInvoice)
		invoices.POST("/:id/print", h.Printer.PrintInvoice)
		invoices.GET("/:id/receipt", h.Printer.PreviewInvoice)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
	}

	manage := products.Group("")
	manage.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		manage.POST("", h.Product.Create)
		manage.PUT("/:id", h.Product.Update)
		manage.DELETE("/:id", h.Product.Delete)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	manageRoles := middleware.RequireRole(entity.RoleAdmin, entity.RoleManager)

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.POST("", manageRoles, h.Catalog.CreateCategory)
		categories.PUT("/:id", manageRoles, h.Catalog.UpdateCategory)
		categories.DELETE("/:id", manageRoles, h.Catalog.DeleteCategory)
	}

	salesCategories := protected.Group("/sales-categories")
	{
		salesCategories.GET("", h.Catalog.ListSalesCategories)
		salesCategories.POST("", manageRoles, h.Catalog.CreateSalesCategory)
		salesCategories.PUT("/:id", manageRoles, h.Catalog.UpdateSalesCategory)
		salesCategories.PUT("/:id/default", manageRoles, h.Catalog.SetDefaultSalesCategory)
		salesCategories.DELETE("/:id", manageRoles, h.Catalog.DeleteSalesCategory)
	}

	paymentTypes := protected.Group("/payment-types")
	{
		paymentTypes.GET("", h.Catalog.ListPaymentTypes)
		paymentTypes.POST("", manageRoles, h.Catalog.CreatePaymentType)
		paymentTypes.PUT("/:id", manageRoles, h.Catalog.UpdatePaymentType)
		paymentTypes.PUT("/:id/default", manageRoles, h.Catalog.SetDefaultPaymentType)
		paymentTypes.DELETE("/:id", manageRoles, h.Catalog.DeletePaymentType)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin, entity.RoleManager), h.Customer.Delete)
	}
}

func registerDashboardRoutes(protected *gin.RouterGroup, h *Handlers) {
	dashboard := protected.Group("/dashboard")
	dashboard.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		dashboard.GET("/stats", h.Dashboard.GetStats)
		dashboard.GET("/vat-report", h.Dashboard.GetVATReport)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerCompanyRoutes(protected *gin.RouterGroup, h *Handlers) {
	company := protected.Group("/company")
	{
		company.GET("", h.Company.Get)
		company.PUT("", middleware.RequireRole(entity.RoleAdmin), h.Company.Update)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
