package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/obakr/qayd-api/internal/domain/entity"
	"github.com/obakr/qayd-api/internal/domain/repository"
	"github.com/obakr/qayd-api/pkg/apperror"
	"github.com/obakr/qayd-api/pkg/utils"
)

// CatalogService handles product categories, sales categories and payment
// types. These are small reference tables edited from the back office.
type CatalogService struct {
	categoryRepo      repository.CategoryRepository
	salesCategoryRepo repository.SalesCategoryRepository
	paymentTypeRepo   repository.PaymentTypeRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	salesCategoryRepo repository.SalesCategoryRepository,
	paymentTypeRepo repository.PaymentTypeRepository,
) *CatalogService {
	return &CatalogService{
		categoryRepo:      categoryRepo,
		salesCategoryRepo: salesCategoryRepo,
		paymentTypeRepo:   paymentTypeRepo,
	}
}

// CategoryInput represents the create/update category input
type CategoryInput struct {
	Name        string
	NameArabic  string
	Description *string
}

// CreateCategory creates a new product category
func (s *CatalogService) CreateCategory(ctx context.Context, input *CategoryInput) (*entity.Category, error) {
	if input.Name == "" {
		return nil, apperror.NewFieldValidationError([]apperror.FieldError{
			{Field: "name", Message: "Name is required"},
		})
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A category with this name already exists")
	}

	category := &entity.Category{
		Name:        input.Name,
		NameArabic:  input.NameArabic,
		Slug:        slug,
		Description: input.Description,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates an existing product category
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, input *CategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if input.Name != "" && input.Name != category.Name {
		slug := utils.Slugify(input.Name)
		existing, err := s.categoryRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("A category with this name already exists")
		}
		category.Name = input.Name
		category.Slug = slug
	}
	category.NameArabic = input.NameArabic
	category.Description = input.Description

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists all product categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// DeleteCategory soft-deletes a product category
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// SalesCategoryInput represents the create/update sales category input
type SalesCategoryInput struct {
	Name        string
	NameArabic  string
	Code        string
	Description *string
	IsActive    *bool
}

// CreateSalesCategory creates a new sales category
func (s *CatalogService) CreateSalesCategory(ctx context.Context, input *SalesCategoryInput) (*entity.SalesCategory, error) {
	if input.Name == "" || input.Code == "" {
		return nil, apperror.NewValidationError("Name and code are required")
	}

	existing, err := s.salesCategoryRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A sales category with this code already exists")
	}

	salesCategory := &entity.SalesCategory{
		Name:        input.Name,
		NameArabic:  input.NameArabic,
		Code:        input.Code,
		Description: input.Description,
		IsActive:    true,
	}
	if input.IsActive != nil {
		salesCategory.IsActive = *input.IsActive
	}

	if err := s.salesCategoryRepo.Create(ctx, salesCategory); err != nil {
		return nil, err
	}
	return salesCategory, nil
}

// UpdateSalesCategory updates an existing sales category
func (s *CatalogService) UpdateSalesCategory(ctx context.Context, id uuid.UUID, input *SalesCategoryInput) (*entity.SalesCategory, error) {
	salesCategory, err := s.salesCategoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if salesCategory == nil {
		return nil, apperror.NewNotFoundError("Sales category")
	}

	if input.Name != "" {
		salesCategory.Name = input.Name
	}
	salesCategory.NameArabic = input.NameArabic
	if input.Code != "" && input.Code != salesCategory.Code {
		existing, err := s.salesCategoryRepo.GetByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("A sales category with this code already exists")
		}
		salesCategory.Code = input.Code
	}
	salesCategory.Description = input.Description
	if input.IsActive != nil {
		salesCategory.IsActive = *input.IsActive
	}

	if err := s.salesCategoryRepo.Update(ctx, salesCategory); err != nil {
		return nil, err
	}
	return salesCategory, nil
}

// SetDefaultSalesCategory promotes a sales category to be the POS default
func (s *CatalogService) SetDefaultSalesCategory(ctx context.Context, id uuid.UUID) error {
	salesCategory, err := s.salesCategoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if salesCategory == nil {
		return apperror.NewNotFoundError("Sales category")
	}
	if !salesCategory.IsActive {
		return apperror.NewBadRequestError("An inactive sales category cannot be the default")
	}

	if err := s.salesCategoryRepo.ClearDefault(ctx); err != nil {
		return err
	}
	salesCategory.IsDefault = true
	return s.salesCategoryRepo.Update(ctx, salesCategory)
}

// ListSalesCategories lists sales categories
func (s *CatalogService) ListSalesCategories(ctx context.Context, activeOnly bool) ([]entity.SalesCategory, error) {
	return s.salesCategoryRepo.List(ctx, activeOnly)
}

// DeleteSalesCategory soft-deletes a sales category
func (s *CatalogService) DeleteSalesCategory(ctx context.Context, id uuid.UUID) error {
	salesCategory, err := s.salesCategoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if salesCategory == nil {
		return apperror.NewNotFoundError("Sales category")
	}
	if salesCategory.IsDefault {
		return apperror.NewBadRequestError("The default sales category cannot be deleted")
	}
	return s.salesCategoryRepo.Delete(ctx, id)
}

// PaymentTypeInput represents the create/update payment type input
type PaymentTypeInput struct {
	Name       string
	NameArabic string
	Code       string
	IsActive   *bool
}

// CreatePaymentType creates a new payment type
func (s *CatalogService) CreatePaymentType(ctx context.Context, input *PaymentTypeInput) (*entity.PaymentType, error) {
	if input.Name == "" || input.Code == "" {
		return nil, apperror.NewValidationError("Name and code are required")
	}

	existing, err := s.paymentTypeRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A payment type with this code already exists")
	}

	paymentType := &entity.PaymentType{
		Name:       input.Name,
		NameArabic: input.NameArabic,
		Code:       input.Code,
		IsActive:   true,
	}
	if input.IsActive != nil {
		paymentType.IsActive = *input.IsActive
	}

	if err := s.paymentTypeRepo.Create(ctx, paymentType); err != nil {
		return nil, err
	}
	return paymentType, nil
}

// UpdatePaymentType updates an existing payment type
func (s *CatalogService) UpdatePaymentType(ctx context.Context, id uuid.UUID, input *PaymentTypeInput) (*entity.PaymentType, error) {
	paymentType, err := s.paymentTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if paymentType == nil {
		return nil, apperror.NewNotFoundError("Payment type")
	}

	if input.Name != "" {
		paymentType.Name = input.Name
	}
	paymentType.NameArabic = input.NameArabic
	if input.Code != "" && input.Code != paymentType.Code {
		existing, err := s.paymentTypeRepo.GetByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("A payment type with this code already exists")
		}
		paymentType.Code = input.Code
	}
	if input.IsActive != nil {
		paymentType.IsActive = *input.IsActive
	}

	if err := s.paymentTypeRepo.Update(ctx, paymentType); err != nil {
		return nil, err
	}
	return paymentType, nil
}

// SetDefaultPaymentType promotes a payment type to be the POS default
func (s *CatalogService) SetDefaultPaymentType(ctx context.Context, id uuid.UUID) error {
	paymentType, err := s.paymentTypeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if paymentType == nil {
		return apperror.NewNotFoundError("Payment type")
	}
	if !paymentType.IsActive {
		return apperror.NewBadRequestError("An inactive payment type cannot be the default")
	}

	if err := s.paymentTypeRepo.ClearDefault(ctx); err != nil {
		return err
	}
	paymentType.IsDefault = true
	return s.paymentTypeRepo.Update(ctx, paymentType)
}

// ListPaymentTypes lists payment types
func (s *CatalogService) ListPaymentTypes(ctx context.Context, activeOnly bool) ([]entity.PaymentType, error) {
	return s.paymentTypeRepo.List(ctx, activeOnly)
}

// DeletePaymentType soft-deletes a payment type
func (s *CatalogService) DeletePaymentType(ctx context.Context, id uuid.UUID) error {
	paymentType, err := s.paymentTypeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if paymentType == nil {
		return apperror.NewNotFoundError("Payment type")
	}
	if paymentType.IsDefault {
		return apperror.NewBadRequestError("The default payment type cannot be deleted")
	}
	return s.paymentTypeRepo.Delete(ctx, id)
}
