package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/obakr/qayd-api/internal/domain/entity"
)

// CategoryRepository defines the interface for product category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Category, error)
}

// SalesCategoryRepository defines the interface for sales category data operations
type SalesCategoryRepository interface {
	Create(ctx context.Context, salesCategory *entity.SalesCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesCategory, error)
	GetByCode(ctx context.Context, code string) (*entity.SalesCategory, error)
	// GetDefault returns the sales category preselected at the POS
	GetDefault(ctx context.Context) (*entity.SalesCategory, error)
	Update(ctx context.Context, salesCategory *entity.SalesCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]entity.SalesCategory, error)
	// ClearDefault unsets the default flag on every sales category so a new
	// default can be promoted
	ClearDefault(ctx context.Context) error
}

// PaymentTypeRepository defines the interface for payment type data operations
type PaymentTypeRepository interface {
	Create(ctx context.Context, paymentType *entity.PaymentType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentType, error)
	GetByCode(ctx context.Context, code string) (*entity.PaymentType, error)
	GetDefault(ctx context.Context) (*entity.PaymentType, error)
	Update(ctx context.Context, paymentType *entity.PaymentType) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]entity.PaymentType, error)
	ClearDefault(ctx context.Context) error
}
