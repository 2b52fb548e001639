package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/obakr/qayd-api/internal/application/service"
	"github.com/obakr/qayd-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles categories, sales categories and payment types
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type categoryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	NameArabic  string  `json:"name_arabic" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// CreateCategory handles category creation
// @Summary Create Category
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &service.CategoryInput{
		Name:        req.Name,
		NameArabic:  req.NameArabic,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", gin.H{"category": category})
}

// UpdateCategory handles category updates
// @Summary Update Category
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.APIResponse
// @Router /categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), categoryID, &service.CategoryInput{
		Name:        req.Name,
		NameArabic:  req.NameArabic,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated successfully", gin.H{"category": category})
}

// ListCategories returns all product categories
// @Summary List Categories
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", gin.H{"categories": categories})
}

// DeleteCategory handles category deletion
// @Summary Delete Category
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204
// @Router /categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

type salesCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	NameArabic  string  `json:"name_arabic" binding:"omitempty,max=255"`
	Code        string  `json:"code" binding:"required,min=2,max=50"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// CreateSalesCategory handles sales category creation
// @Summary Create Sales Category
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /sales-categories [post]
func (h *CatalogHandler) CreateSalesCategory(c *gin.Context) {
	var req salesCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.catalogService.CreateSalesCategory(c.Request.Context(), &service.SalesCategoryInput{
		Name:        req.Name,
		NameArabic:  req.NameArabic,
		Code:        req.Code,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sales category created successfully", gin.H{"sales_category": category})
}

// UpdateSalesCategory handles sales category updates
// @Summary Update Sales Category
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Sales category ID"
// @Success 200 {object} response.APIResponse
// @Router /sales-categories/{id} [put]
func (h *CatalogHandler) UpdateSalesCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sales category ID")
		return
	}

	var req salesCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.catalogService.UpdateSalesCategory(c.Request.Context(), categoryID, &service.SalesCategoryInput{
		Name:        req.Name,
		NameArabic:  req.NameArabic,
		Code:        req.Code,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales category updated successfully", gin.H{"sales_category": category})
}

// SetDefaultSalesCategory marks a sales category as the register default
// @Summary Set Default Sales Category
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "Sales category ID"
// @Success 200 {object} response.APIResponse
// @Router /sales-categories/{id}/default [put]
func (h *CatalogHandler) SetDefaultSalesCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sales category ID")
		return
	}

	if err := h.catalogService.SetDefaultSalesCategory(c.Request.Context(), categoryID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Default sales category updated", nil)
}

// ListSalesCategories returns sales categories
// @Summary List Sales Categories
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param active_only query bool false "Only active categories"
// @Success 200 {object} response.APIResponse
// @Router /sales-categories [get]
func (h *CatalogHandler) ListSalesCategories(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	categories, err := h.catalogService.ListSalesCategories(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales categories retrieved successfully", gin.H{"sales_categories": categories})
}

// DeleteSalesCategory handles sales category deletion
// @Summary Delete Sales Category
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "Sales category ID"
// @Success 204
// @Router /sales-categories/{id} [delete]
func (h *CatalogHandler) DeleteSalesCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sales category ID")
		return
	}

	if err := h.catalogService.DeleteSalesCategory(c.Request.Context(), categoryID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

type paymentTypeRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=255"`
	NameArabic string `json:"name_arabic" binding:"omitempty,max=255"`
	Code       string `json:"code" binding:"required,min=2,max=50"`
	IsActive   *bool  `json:"is_active"`
}

// CreatePaymentType handles payment type creation
// @Summary Create Payment Type
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /payment-types [post]
func (h *CatalogHandler) CreatePaymentType(c *gin.Context) {
	var req paymentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	paymentType, err := h.catalogService.CreatePaymentType(c.Request.Context(), &service.PaymentTypeInput{
		Name:       req.Name,
		NameArabic: req.NameArabic,
		Code:       req.Code,
		IsActive:   req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment type created successfully", gin.H{"payment_type": paymentType})
}

// UpdatePaymentType handles payment type updates
// @Summary Update Payment Type
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Payment type ID"
// @Success 200 {object} response.APIResponse
// @Router /payment-types/{id} [put]
func (h *CatalogHandler) UpdatePaymentType(c *gin.Context) {
	paymentTypeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment type ID")
		return
	}

	var req paymentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	paymentType, err := h.catalogService.UpdatePaymentType(c.Request.Context(), paymentTypeID, &service.PaymentTypeInput{
		Name:       req.Name,
		NameArabic: req.NameArabic,
		Code:       req.Code,
		IsActive:   req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment type updated successfully", gin.H{"payment_type": paymentType})
}

// SetDefaultPaymentType marks a payment type as the direct sale default
// @Summary Set Default Payment Type
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "Payment type ID"
// @Success 200 {object} response.APIResponse
// @Router /payment-types/{id}/default [put]
func (h *CatalogHandler) SetDefaultPaymentType(c *gin.Context) {
	paymentTypeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment type ID")
		return
	}

	if err := h.catalogService.SetDefaultPaymentType(c.Request.Context(), paymentTypeID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Default payment type updated", nil)
}

// ListPaymentTypes returns payment types
// @Summary List Payment Types
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param active_only query bool false "Only active payment types"
// @Success 200 {object} response.APIResponse
// @Router /payment-types [get]
func (h *CatalogHandler) ListPaymentTypes(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	paymentTypes, err := h.catalogService.ListPaymentTypes(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment types retrieved successfully", gin.H{"payment_types": paymentTypes})
}

// DeletePaymentType handles payment type deletion
// @Summary Delete Payment Type
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "Payment type ID"
// @Success 204
// @Router /payment-types/{id} [delete]
func (h *CatalogHandler) DeletePaymentType(c *gin.Context) {
	paymentTypeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment type ID")
		return
	}

	if err := h.catalogService.DeletePaymentType(c.Request.Context(), paymentTypeID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
