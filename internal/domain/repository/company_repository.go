package repository

import (
	"context"

	"github.com/obakr/qayd-api/internal/domain/entity"
)

// CompanyRepository defines the interface for the seller profile.
// The profile is a singleton row created by the seeder.
type CompanyRepository interface {
	Get(ctx context.Context) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
}
