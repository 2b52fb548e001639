package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/obakr/qayd-api/internal/domain/entity"
	"github.com/obakr/qayd-api/internal/domain/repository"
	"github.com/obakr/qayd-api/pkg/apperror"
	"github.com/obakr/qayd-api/pkg/pagination"
	"github.com/obakr/qayd-api/pkg/utils"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo    repository.ProductRepository
	categoryRepo   repository.CategoryRepository
	defaultVATRate float64
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	defaultVATRate float64,
) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
		defaultVATRate: defaultVATRate,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name       string
	NameArabic string
	SKU        *string
	Barcode    *string
	CategoryID *uuid.UUID
	UnitPrice  float64
	// VATRate nil means the configured default applies. An explicit zero
	// creates a zero-rated product.
	VATRate  *float64
	Unit     string
	Color    *string
	ImageURL *string
}

// CreateProduct creates a new product. The default VAT rate is applied
// here, at creation time, so the stored rate is always authoritative.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewFieldValidationError([]apperror.FieldError{
			{Field: "name", Message: "Name is required"},
		})
	}
	if input.UnitPrice < 0 {
		return nil, apperror.NewFieldValidationError([]apperror.FieldError{
			{Field: "unit_price", Message: "Unit price cannot be negative"},
		})
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A product with this name already exists")
	}

	vatRate := s.defaultVATRate
	if input.VATRate != nil {
		if *input.VATRate < 0 {
			return nil, apperror.NewFieldValidationError([]apperror.FieldError{
				{Field: "vat_rate", Message: "VAT rate cannot be negative"},
			})
		}
		vatRate = *input.VATRate
	}

	unit := input.Unit
	if unit == "" {
		unit = "pcs"
	}

	product := &entity.Product{
		Name:       input.Name,
		NameArabic: input.NameArabic,
		Slug:       slug,
		SKU:        input.SKU,
		Barcode:    input.Barcode,
		CategoryID: input.CategoryID,
		UnitPrice:  input.UnitPrice,
		VATRate:    vatRate,
		Unit:       unit,
		Color:      input.Color,
		ImageURL:   input.ImageURL,
		IsActive:   true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Name       *string
	NameArabic *string
	SKU        *string
	Barcode    *string
	CategoryID *uuid.UUID
	UnitPrice  *float64
	VATRate    *float64
	Unit       *string
	Color      *string
	ImageURL   *string
	IsActive   *bool
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil && *input.Name != product.Name {
		slug := utils.Slugify(*input.Name)
		existing, err := s.productRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("A product with this name already exists")
		}
		product.Name = *input.Name
		product.Slug = slug
	}

	if input.NameArabic != nil {
		product.NameArabic = *input.NameArabic
	}
	if input.SKU != nil {
		product.SKU = input.SKU
	}
	if input.Barcode != nil {
		product.Barcode = input.Barcode
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.UnitPrice != nil {
		if *input.UnitPrice < 0 {
			return nil, apperror.NewFieldValidationError([]apperror.FieldError{
				{Field: "unit_price", Message: "Unit price cannot be negative"},
			})
		}
		product.UnitPrice = *input.UnitPrice
	}
	if input.VATRate != nil {
		if *input.VATRate < 0 {
			return nil, apperror.NewFieldValidationError([]apperror.FieldError{
				{Field: "vat_rate", Message: "VAT rate cannot be negative"},
			})
		}
		product.VATRate = *input.VATRate
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.Color != nil {
		product.Color = input.Color
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode retrieves a product by its barcode
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}
