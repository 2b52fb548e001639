package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/obakr/qayd-api/internal/domain/entity"
	"github.com/obakr/qayd-api/internal/domain/enum"
	"github.com/obakr/qayd-api/pkg/pagination"
)

// InvoiceRepository defines the interface for sales invoice data operations
type InvoiceRepository interface {
	// Create persists the invoice together with its items and any attached
	// payments in a single transaction
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// ListOpen returns invoices still awaiting settlement (draft, pending
	// or partially paid), oldest first
	ListOpen(ctx context.Context, params *pagination.PaginationParams) ([]entity.Invoice, int64, error)
	// Count returns the total number of invoices ever created, including
	// soft-deleted rows, so invoice numbers are never reissued
	Count(ctx context.Context) (int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination      *pagination.PaginationParams
	Search          string
	Status          *enum.InvoiceStatus
	CustomerID      *uuid.UUID
	SalesCategoryID *uuid.UUID
	StartDate       *time.Time
	EndDate         *time.Time
	SortBy          string
	SortOrder       string
}
