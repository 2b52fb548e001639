package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/obakr/qayd-api/internal/domain/entity"
	"github.com/obakr/qayd-api/internal/domain/repository"
	"github.com/obakr/qayd-api/pkg/apperror"
	"github.com/obakr/qayd-api/pkg/pagination"
)

// InvoiceService handles invoice read operations. Invoices are created
// only through the POS settlement workflow; this service never mutates
// amounts on a stored invoice.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
	}
}

// GetInvoice retrieves an invoice with its items and payments
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetInvoiceByNumber retrieves an invoice by its invoice number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.invoiceRepo.GetWithDetails(ctx, invoice.ID)
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ListOpenInvoices lists invoices still awaiting settlement, oldest first
func (s *InvoiceService) ListOpenInvoices(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.ListOpen(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ListInvoicePayments returns the payments recorded against an invoice
func (s *InvoiceService) ListInvoicePayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.paymentRepo.GetByInvoiceID(ctx, invoiceID)
}

// FilterByDateRange narrows an already-fetched invoice list to those
// issued within the inclusive [start, end] range. Zero bounds are open.
func FilterByDateRange(invoices []entity.Invoice, start, end time.Time) []entity.Invoice {
	out := make([]entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if !start.IsZero() && inv.IssueDate.Before(start) {
			continue
		}
		if !end.IsZero() && inv.IssueDate.After(end) {
			continue
		}
		out = append(out, inv)
	}
	return out
}
