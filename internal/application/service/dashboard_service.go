package service

import (
	"context"
	"time"

	"github.com/obakr/qayd-api/internal/domain/repository"
)

// DashboardService aggregates sales figures for the back-office dashboard
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	invoiceRepo   repository.InvoiceRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo repository.DashboardRepository, invoiceRepo repository.InvoiceRepository) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		invoiceRepo:   invoiceRepo,
	}
}

// DashboardStats holds the headline numbers shown on the dashboard
type DashboardStats struct {
	TotalRevenue  float64                           `json:"total_revenue"`
	TodayRevenue  float64                           `json:"today_revenue"`
	TodayVAT      float64                           `json:"today_vat"`
	InvoiceCount  int64                             `json:"invoice_count"`
	TopProducts   []repository.TopProductResult     `json:"top_products"`
	SalesByType   []repository.SalesCategoryTotal   `json:"sales_by_category"`
	TakingsByType []repository.PaymentTypeTotal     `json:"takings_by_payment_type"`
	DailySales    []repository.DailySalesResult     `json:"daily_sales"`
}

// GetStats assembles the dashboard headline figures
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	totalRevenue, err := s.dashboardRepo.GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	todayVAT, err := s.dashboardRepo.GetVATCollected(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}

	invoiceCount, err := s.invoiceRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.dashboardRepo.GetTopProducts(ctx, 5)
	if err != nil {
		return nil, err
	}

	salesByCategory, err := s.dashboardRepo.GetSalesByCategory(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}

	takings, err := s.dashboardRepo.GetTakingsByPaymentType(ctx, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}

	dailySales, err := s.dashboardRepo.GetDailySales(ctx, 7)
	if err != nil {
		return nil, err
	}

	var todayRevenue float64
	if len(dailySales) > 0 {
		todayRevenue = dailySales[len(dailySales)-1].Revenue
	}

	return &DashboardStats{
		TotalRevenue:  totalRevenue,
		TodayRevenue:  todayRevenue,
		TodayVAT:      todayVAT,
		InvoiceCount:  invoiceCount,
		TopProducts:   topProducts,
		SalesByType:   salesByCategory,
		TakingsByType: takings,
		DailySales:    dailySales,
	}, nil
}

// GetVATReport returns VAT collected for an arbitrary period
func (s *DashboardService) GetVATReport(ctx context.Context, start, end time.Time) (float64, error) {
	return s.dashboardRepo.GetVATCollected(ctx, start, end)
}
