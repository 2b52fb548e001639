package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/obakr/qayd-api/internal/domain/entity"
	"github.com/obakr/qayd-api/pkg/pagination"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination    *pagination.PaginationParams
	InvoiceID     *uuid.UUID
	PaymentTypeID *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}
