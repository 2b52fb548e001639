package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold float64
	Revenue      float64
}

// SalesCategoryTotal represents revenue aggregated by sales category
type SalesCategoryTotal struct {
	SalesCategoryID uuid.UUID
	CategoryName    string
	TotalSales      float64
	InvoiceCount    int
}

// PaymentTypeTotal represents takings aggregated by payment method
type PaymentTypeTotal struct {
	PaymentTypeID uuid.UUID
	TypeName      string
	TotalAmount   float64
	PaymentCount  int
}

// DailySalesResult represents revenue and VAT collected for a single day
type DailySalesResult struct {
	Date      time.Time
	Revenue   float64
	VATAmount float64
}

// DashboardRepository defines interface for sales aggregation queries
type DashboardRepository interface {
	// GetTopProducts returns top selling products by revenue
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)

	// GetSalesByCategory returns revenue aggregated by sales category
	GetSalesByCategory(ctx context.Context, start, end time.Time) ([]SalesCategoryTotal, error)

	// GetTakingsByPaymentType returns takings per payment method for the period
	GetTakingsByPaymentType(ctx context.Context, start, end time.Time) ([]PaymentTypeTotal, error)

	// GetDailySales returns daily revenue and VAT for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetTotalRevenue returns total revenue from paid invoices
	GetTotalRevenue(ctx context.Context) (float64, error)

	// GetVATCollected returns VAT collected for the period, refunds netted out
	GetVATCollected(ctx context.Context, start, end time.Time) (float64, error)
}
