package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/obakr/qayd-api/internal/application/service"
	"github.com/obakr/qayd-api/internal/domain/enum"
	"github.com/obakr/qayd-api/internal/domain/repository"
	"github.com/obakr/qayd-api/internal/presentation/http/dto/response"
	"github.com/obakr/qayd-api/pkg/pagination"
)

// InvoiceHandler handles read access to settled invoices
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List returns invoices matching the filter parameters
// @Summary List Invoices
// @Description List invoices with optional search, status and date filters
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search by invoice number"
// @Param status query string false "Invoice status"
// @Param customer_id query string false "Customer ID"
// @Param sales_category_id query string false "Sales category ID"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var paginationParams pagination.PaginationParams
	if err := c.ShouldBindQuery(&paginationParams); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &paginationParams,
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseInvoiceStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid invoice status")
			return
		}
		params.Status = &status
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = &customerID
	}

	if categoryIDStr := c.Query("sales_category_id"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid sales category ID")
			return
		}
		params.SalesCategoryID = &categoryID
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			response.BadRequest(c, "Invalid start date format, use YYYY-MM-DD")
			return
		}
		params.StartDate = &startDate
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			response.BadRequest(c, "Invalid end date format, use YYYY-MM-DD")
			return
		}
		// Make the end date inclusive
		endDate = endDate.Add(24*time.Hour - time.Second)
		params.EndDate = &endDate
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// ListOpen returns unsettled invoices, oldest first
// @Summary List Open Invoices
// @Description List draft, pending and partially paid invoices
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /invoices/open [get]
func (h *InvoiceHandler) ListOpen(c *gin.Context) {
	var paginationParams pagination.PaginationParams
	if err := c.ShouldBindQuery(&paginationParams); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.invoiceService.ListOpenInvoices(c.Request.Context(), &paginationParams)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Open invoices retrieved successfully", result)
}

// Get returns a single invoice with its items and payments
// @Summary Get Invoice
// @Description Get an invoice by ID with items and payments
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", gin.H{"invoice": invoice})
}

// GetByNumber returns a single invoice by its invoice number
// @Summary Get Invoice By Number
// @Description Get an invoice by its sequential number
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param number path string true "Invoice number"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /invoices/number/{number} [get]
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		response.BadRequest(c, "Invoice number is required")
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByNumber(c.Request.Context(), number)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", gin.H{"invoice": invoice})
}

// ListPayments returns the payments recorded against an invoice
// @Summary List Invoice Payments
// @Description List payments recorded against an invoice
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/payments [get]
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.invoiceService.ListInvoicePayments(c.Request.Context(), invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", gin.H{"payments": payments})
}
