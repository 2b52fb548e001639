package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/obakr/qayd-api/internal/application/service"
	"github.com/obakr/qayd-api/internal/presentation/http/dto/response"
)

// CompanyHandler handles the seller profile HTTP requests
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Get returns the seller profile
// @Summary Get Company
// @Description Get the seller profile used on invoices and QR stamps
// @Tags company
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /company [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyService.GetCompany(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company retrieved successfully", gin.H{"company": company})
}

// Update handles seller profile updates
// @Summary Update Company
// @Description Update the seller profile
// @Tags company
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /company [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	var req struct {
		Name          string `json:"name" binding:"required,min=2,max=255"`
		NameArabic    string `json:"name_arabic" binding:"omitempty,max=255"`
		VATNumber     string `json:"vat_number" binding:"omitempty,len=15"`
		CRNumber      string `json:"cr_number" binding:"omitempty,max=50"`
		Email         string `json:"email" binding:"omitempty,email"`
		Phone         string `json:"phone" binding:"omitempty,max=50"`
		Address       string `json:"address" binding:"omitempty,max=500"`
		AddressArabic string `json:"address_arabic" binding:"omitempty,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), &service.CompanyInput{
		Name:          req.Name,
		NameArabic:    req.NameArabic,
		VATNumber:     req.VATNumber,
		CRNumber:      req.CRNumber,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		AddressArabic: req.AddressArabic,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company updated successfully", gin.H{"company": company})
}
