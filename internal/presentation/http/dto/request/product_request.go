package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name       string     `json:"name" binding:"required,min=2,max=255"`
	NameArabic string     `json:"name_arabic" binding:"omitempty,max=255"`
	SKU        *string    `json:"sku" binding:"omitempty,max=100"`
	Barcode    *string    `json:"barcode" binding:"omitempty,max=100"`
	CategoryID *uuid.UUID `json:"category_id"`
	UnitPrice  float64    `json:"unit_price" binding:"min=0"`
	VATRate    *float64   `json:"vat_rate" binding:"omitempty,min=0,max=100"`
	Unit       string     `json:"unit" binding:"omitempty,max=50"`
	Color      *string    `json:"color"`
	ImageURL   *string    `json:"image_url"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name       *string    `json:"name" binding:"omitempty,min=2,max=255"`
	NameArabic *string    `json:"name_arabic" binding:"omitempty,max=255"`
	SKU        *string    `json:"sku" binding:"omitempty,max=100"`
	Barcode    *string    `json:"barcode" binding:"omitempty,max=100"`
	CategoryID *uuid.UUID `json:"category_id"`
	UnitPrice  *float64   `json:"unit_price" binding:"omitempty,min=0"`
	VATRate    *float64   `json:"vat_rate" binding:"omitempty,min=0,max=100"`
	Unit       *string    `json:"unit" binding:"omitempty,max=50"`
	Color      *string    `json:"color"`
	ImageURL   *string    `json:"image_url"`
	IsActive   *bool      `json:"is_active"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
}
