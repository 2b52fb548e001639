package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/obakr/qayd-api/internal/domain/entity"
	"github.com/obakr/qayd-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetWalkIn returns the seeded walk-in customer used for anonymous sales
	GetWalkIn(ctx context.Context) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}
