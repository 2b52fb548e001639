package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/obakr/qayd-api/internal/application/service"
	"github.com/obakr/qayd-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard and reporting HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns the dashboard headline figures
// @Summary Dashboard Stats
// @Description Get revenue, VAT, top products and takings breakdowns
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// GetVATReport returns the VAT collected over a date range
// @Summary VAT Report
// @Description Get net VAT collected between two dates
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /dashboard/vat-report [get]
func (h *DashboardHandler) GetVATReport(c *gin.Context) {
	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")
	if startDateStr == "" || endDateStr == "" {
		response.BadRequest(c, "start_date and end_date are required")
		return
	}

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		response.BadRequest(c, "Invalid start date format, use YYYY-MM-DD")
		return
	}

	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		response.BadRequest(c, "Invalid end date format, use YYYY-MM-DD")
		return
	}
	endDate = endDate.Add(24*time.Hour - time.Second)

	if endDate.Before(startDate) {
		response.BadRequest(c, "end_date must not be before start_date")
		return
	}

	vatCollected, err := h.dashboardService.GetVATReport(c.Request.Context(), startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "VAT report retrieved successfully", gin.H{
		"start_date":    startDateStr,
		"end_date":      endDateStr,
		"vat_collected": vatCollected,
	})
}
