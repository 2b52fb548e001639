package repository

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	domainRepo "github.com/obakr/qayd-api/internal/domain/repository"
)

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *gorm.DB) domainRepo.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetTopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id as product_id,
			p.name as product_name,
			COALESCE(SUM(ii.quantity), 0) as quantity_sold,
			COALESCE(SUM(ii.total_amount), 0) as revenue
		FROM sales_invoice_items ii
		JOIN products p ON p.id = ii.product_id
		JOIN sales_invoices i ON i.id = ii.invoice_id
		WHERE i.status = 'paid' AND i.deleted_at IS NULL
		GROUP BY p.id, p.name
		ORDER BY revenue DESC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *dashboardRepository) GetSalesByCategory(ctx context.Context, start, end time.Time) ([]domainRepo.SalesCategoryTotal, error) {
	var results []domainRepo.SalesCategoryTotal

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			sc.id as sales_category_id,
			sc.name as category_name,
			COALESCE(SUM(i.total_amount), 0) as total_sales,
			COUNT(i.id) as invoice_count
		FROM sales_invoices i
		JOIN sales_categories sc ON sc.id = i.sales_category_id
		WHERE i.status IN ('paid', 'refunded')
		AND i.issue_date >= ? AND i.issue_date < ?
		AND i.deleted_at IS NULL
		GROUP BY sc.id, sc.name
		ORDER BY total_sales DESC
	`, start, end).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *dashboardRepository) GetTakingsByPaymentType(ctx context.Context, start, end time.Time) ([]domainRepo.PaymentTypeTotal, error) {
	var results []domainRepo.PaymentTypeTotal

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			pt.id as payment_type_id,
			pt.name as type_name,
			COALESCE(SUM(p.amount), 0) as total_amount,
			COUNT(p.id) as payment_count
		FROM payments p
		JOIN payment_types pt ON pt.id = p.payment_type_id
		WHERE p.status IN ('completed', 'refunded')
		AND p.payment_date >= ? AND p.payment_date < ?
		AND p.deleted_at IS NULL
		GROUP BY pt.id, pt.name
		ORDER BY total_amount DESC
	`, start, end).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *dashboardRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	results := make([]domainRepo.DailySalesResult, 0, days)
	now := time.Now()

	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		var row struct {
			Revenue   sql.NullFloat64
			VATAmount sql.NullFloat64
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT
				COALESCE(SUM(total_amount), 0) as revenue,
				COALESCE(SUM(vat_amount), 0) as vat_amount
			FROM sales_invoices
			WHERE status IN ('paid', 'refunded')
			AND issue_date >= ? AND issue_date < ?
			AND deleted_at IS NULL
		`, startOfDay, endOfDay).Scan(&row).Error

		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailySalesResult{
			Date:      startOfDay,
			Revenue:   row.Revenue.Float64,
			VATAmount: row.VATAmount.Float64,
		})
	}

	return results, nil
}

func (r *dashboardRepository) GetTotalRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales_invoices
		WHERE status = 'paid' AND deleted_at IS NULL
	`).Scan(&revenue).Error

	return revenue, err
}

func (r *dashboardRepository) GetVATCollected(ctx context.Context, start, end time.Time) (float64, error) {
	// Refund invoices carry negative VAT, so a plain sum nets them out
	var vat float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(vat_amount), 0)
		FROM sales_invoices
		WHERE status IN ('paid', 'refunded')
		AND issue_date >= ? AND issue_date < ?
		AND deleted_at IS NULL
	`, start, end).Scan(&vat).Error

	return vat, err
}
