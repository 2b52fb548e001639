package service

import (
	"context"

	"github.com/obakr/qayd-api/internal/domain/entity"
	"github.com/obakr/qayd-api/internal/domain/repository"
	"github.com/obakr/qayd-api/pkg/apperror"
)

// CompanyService manages the seller profile used on every invoice
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CompanyInput represents the update company input
type CompanyInput struct {
	Name          string
	NameArabic    string
	VATNumber     string
	CRNumber      string
	Email         string
	Phone         string
	Address       string
	AddressArabic string
}

// GetCompany returns the seller profile
func (s *CompanyService) GetCompany(ctx context.Context) (*entity.Company, error) {
	company, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company profile")
	}
	return company, nil
}

// UpdateCompany updates the seller profile. The name and VAT number feed
// directly into every new invoice's QR payload.
func (s *CompanyService) UpdateCompany(ctx context.Context, input *CompanyInput) (*entity.Company, error) {
	company, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company profile")
	}

	if input.Name == "" {
		return nil, apperror.NewFieldValidationError([]apperror.FieldError{
			{Field: "name", Message: "Name is required"},
		})
	}

	company.Name = input.Name
	company.NameArabic = input.NameArabic
	company.VATNumber = input.VATNumber
	company.CRNumber = input.CRNumber
	company.Email = input.Email
	company.Phone = input.Phone
	company.Address = input.Address
	company.AddressArabic = input.AddressArabic

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}
