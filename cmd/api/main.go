package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/obakr/qayd-api/internal/application/service"
	"github.com/obakr/qayd-api/internal/config"
	"github.com/obakr/qayd-api/internal/infrastructure/database"
	"github.com/obakr/qayd-api/internal/infrastructure/repository"
	"github.com/obakr/qayd-api/internal/presentation/http/handler"
	"github.com/obakr/qayd-api/internal/presentation/http/routes"
	"github.com/obakr/qayd-api/pkg/logger"
	"github.com/obakr/qayd-api/pkg/printer"
	"github.com/obakr/qayd-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.App.Debug {
		logLevel = "debug"
	}
	log, err := logger.New(logger.Config{
		Level:       logLevel,
		Development: cfg.App.Env != "production",
	})
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalw("Failed to connect to database", "error", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalw("Failed to run migrations", "error", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Warnw("Failed to seed default data", "error", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	salesCategoryRepo := repository.NewSalesCategoryRepository(db)
	paymentTypeRepo := repository.NewPaymentTypeRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo, categoryRepo, cfg.POS.DefaultVATRate)
	catalogService := service.NewCatalogService(categoryRepo, salesCategoryRepo, paymentTypeRepo)
	customerService := service.NewCustomerService(customerRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, paymentRepo)
	dashboardService := service.NewDashboardService(dashboardRepo, invoiceRepo)
	userService := service.NewUserService(userRepo)
	companyService := service.NewCompanyService(companyRepo)
	posService := service.NewPOSService(
		invoiceRepo,
		paymentRepo,
		productRepo,
		customerRepo,
		salesCategoryRepo,
		paymentTypeRepo,
		companyRepo,
		cfg.POS,
		log,
	)

	// Initialize thermal printer
	printerType := cfg.Printer.Type
	if !cfg.Printer.Enabled {
		printerType = "null"
	}
	device, err := printer.NewPrinterFromConfig(printerType, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Warnw("Failed to initialize printer, receipts disabled", "error", err)
		device = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(invoiceRepo, companyRepo, device, cfg.Printer, log)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		POS:       handler.NewPOSHandler(posService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Product:   handler.NewProductHandler(productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
		User:      handler.NewUserHandler(userService),
		Company:   handler.NewCompanyHandler(companyService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          log,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Infow("Starting server", "service", cfg.App.Name, "port", port, "env", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalw("Failed to start server", "error", err)
	}
}
