package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/obakr/qayd-api/internal/config"
	"github.com/obakr/qayd-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// System entities
		&entity.User{},
		&entity.Company{},
		&entity.IdempotencyKey{},

		// Catalog entities
		&entity.Category{},
		&entity.Product{},
		&entity.SalesCategory{},
		&entity.PaymentType{},

		// Invoicing entities
		&entity.Customer{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Payment{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the reference data every register needs on first
// boot: sales categories, payment types, the walk-in customer, the seller
// profile and an admin user from the environment.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	salesCategories := []entity.SalesCategory{
		{Name: "Dine-in", NameArabic: "محلي", Code: "dine_in", IsDefault: true, IsActive: true},
		{Name: "Takeaway", NameArabic: "سفري", Code: "takeaway", IsActive: true},
		{Name: "Delivery", NameArabic: "توصيل", Code: "delivery", IsActive: true},
	}
	for i := range salesCategories {
		var existing entity.SalesCategory
		if err := db.Where("code = ?", salesCategories[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&salesCategories[i]).Error; err != nil {
				log.Printf("Warning: failed to create sales category %s: %v", salesCategories[i].Code, err)
			}
		}
	}

	paymentTypes := []entity.PaymentType{
		{Name: "Cash", NameArabic: "نقدي", Code: "cash", IsDefault: true, IsActive: true},
		{Name: "Card", NameArabic: "شبكة", Code: "card", IsActive: true},
		{Name: "Bank Transfer", NameArabic: "تحويل بنكي", Code: "bank_transfer", IsActive: true},
	}
	for i := range paymentTypes {
		var existing entity.PaymentType
		if err := db.Where("code = ?", paymentTypes[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&paymentTypes[i]).Error; err != nil {
				log.Printf("Warning: failed to create payment type %s: %v", paymentTypes[i].Code, err)
			}
		}
	}

	// Walk-in customer for anonymous counter sales
	var walkIn entity.Customer
	if err := db.Where("is_walk_in = ?", true).First(&walkIn).Error; err != nil {
		walkIn = entity.Customer{
			Name:       "Walk-in Customer",
			NameArabic: "عميل نقدي",
			IsWalkIn:   true,
		}
		if err := db.Create(&walkIn).Error; err != nil {
			log.Printf("Warning: failed to create walk-in customer: %v", err)
		}
	}

	// Seller profile used on every invoice QR
	var company entity.Company
	if err := db.First(&company).Error; err != nil {
		company = entity.Company{
			Name:       viper.GetString("COMPANY_NAME"),
			NameArabic: viper.GetString("COMPANY_NAME_ARABIC"),
			VATNumber:  viper.GetString("COMPANY_VAT_NUMBER"),
			CRNumber:   viper.GetString("COMPANY_CR_NUMBER"),
			Address:    viper.GetString("COMPANY_ADDRESS"),
		}
		if company.Name == "" {
			company.Name = "Qayd Store"
		}
		if err := db.Create(&company).Error; err != nil {
			log.Printf("Warning: failed to create company profile: %v", err)
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Admin"
				}
				adminUser := entity.User{
					Name:     adminName,
					Email:    adminEmail,
					Password: string(hashedPassword),
					Role:     entity.RoleAdmin,
					IsActive: true,
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
