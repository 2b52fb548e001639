package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obakr/qayd-api/internal/domain/entity"
	domainRepo "github.com/obakr/qayd-api/internal/domain/repository"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

type salesCategoryRepository struct {
	db *gorm.DB
}

// NewSalesCategoryRepository creates a new sales category repository
func NewSalesCategoryRepository(db *gorm.DB) domainRepo.SalesCategoryRepository {
	return &salesCategoryRepository{db: db}
}

func (r *salesCategoryRepository) Create(ctx context.Context, salesCategory *entity.SalesCategory) error {
	return r.db.WithContext(ctx).Create(salesCategory).Error
}

func (r *salesCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesCategory, error) {
	var salesCategory entity.SalesCategory
	err := r.db.WithContext(ctx).First(&salesCategory, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &salesCategory, err
}

func (r *salesCategoryRepository) GetByCode(ctx context.Context, code string) (*entity.SalesCategory, error) {
	var salesCategory entity.SalesCategory
	err := r.db.WithContext(ctx).First(&salesCategory, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &salesCategory, err
}

func (r *salesCategoryRepository) GetDefault(ctx context.Context) (*entity.SalesCategory, error) {
	var salesCategory entity.SalesCategory
	err := r.db.WithContext(ctx).
		Where("is_default = ? AND is_active = ?", true, true).
		First(&salesCategory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &salesCategory, err
}

func (r *salesCategoryRepository) Update(ctx context.Context, salesCategory *entity.SalesCategory) error {
	return r.db.WithContext(ctx).Save(salesCategory).Error
}

func (r *salesCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SalesCategory{}, "id = ?", id).Error
}

func (r *salesCategoryRepository) List(ctx context.Context, activeOnly bool) ([]entity.SalesCategory, error) {
	var salesCategories []entity.SalesCategory
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC").Find(&salesCategories).Error
	return salesCategories, err
}

func (r *salesCategoryRepository) ClearDefault(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&entity.SalesCategory{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}

type paymentTypeRepository struct {
	db *gorm.DB
}

// NewPaymentTypeRepository creates a new payment type repository
func NewPaymentTypeRepository(db *gorm.DB) domainRepo.PaymentTypeRepository {
	return &paymentTypeRepository{db: db}
}

func (r *paymentTypeRepository) Create(ctx context.Context, paymentType *entity.PaymentType) error {
	return r.db.WithContext(ctx).Create(paymentType).Error
}

func (r *paymentTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentType, error) {
	var paymentType entity.PaymentType
	err := r.db.WithContext(ctx).First(&paymentType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &paymentType, err
}

func (r *paymentTypeRepository) GetByCode(ctx context.Context, code string) (*entity.PaymentType, error) {
	var paymentType entity.PaymentType
	err := r.db.WithContext(ctx).First(&paymentType, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &paymentType, err
}

func (r *paymentTypeRepository) GetDefault(ctx context.Context) (*entity.PaymentType, error) {
	var paymentType entity.PaymentType
	err := r.db.WithContext(ctx).
		Where("is_default = ? AND is_active = ?", true, true).
		First(&paymentType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &paymentType, err
}

func (r *paymentTypeRepository) Update(ctx context.Context, paymentType *entity.PaymentType) error {
	return r.db.WithContext(ctx).Save(paymentType).Error
}

func (r *paymentTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PaymentType{}, "id = ?", id).Error
}

func (r *paymentTypeRepository) List(ctx context.Context, activeOnly bool) ([]entity.PaymentType, error) {
	var paymentTypes []entity.PaymentType
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC").Find(&paymentTypes).Error
	return paymentTypes, err
}

func (r *paymentTypeRepository) ClearDefault(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&entity.PaymentType{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}
