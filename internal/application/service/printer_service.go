package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/obakr/qayd-api/internal/config"
	"github.com/obakr/qayd-api/internal/domain/entity"
	"github.com/obakr/qayd-api/internal/domain/enum"
	"github.com/obakr/qayd-api/internal/domain/repository"
	"github.com/obakr/qayd-api/pkg/apperror"
	"github.com/obakr/qayd-api/pkg/logger"
	"github.com/obakr/qayd-api/pkg/printer"
)

// PrinterService renders invoices as ESC/POS receipts and sends them to
// the configured thermal printer.
type PrinterService struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	device      printer.Printer
	paperWidth  int
	log         *logger.Logger
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	device printer.Printer,
	cfg config.PrinterConfig,
	log *logger.Logger,
) *PrinterService {
	width := cfg.PaperWidth
	if width <= 0 {
		width = 48
	}
	return &PrinterService{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		device:      device,
		paperWidth:  width,
		log:         log.WithComponent("printer"),
	}
}

// PrintInvoice renders and prints the receipt for an invoice
func (s *PrinterService) PrintInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	data, err := s.RenderInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}

	if err := s.device.Print(data); err != nil {
		s.log.Errorw("receipt print failed", "invoice_id", invoiceID, "error", err)
		return apperror.NewAppError(502, "Failed to print receipt")
	}

	s.log.Infow("receipt printed", "invoice_id", invoiceID)
	return nil
}

// RenderInvoice builds the ESC/POS byte stream for an invoice without
// sending it anywhere. Used by the print endpoint's preview mode.
func (s *PrinterService) RenderInvoice(ctx context.Context, invoiceID uuid.UUID) ([]byte, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	company, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewBadRequestError("No company profile is configured")
	}

	return s.render(invoice, company), nil
}

// TestPrint sends a short test page to verify printer connectivity
func (s *PrinterService) TestPrint(ctx context.Context) error {
	if !s.device.IsConnected() {
		return apperror.NewAppError(502, "Printer is not connected")
	}

	doc := printer.NewDocument(s.paperWidth)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("PRINTER TEST").
		SetBold(false).
		Separator('-').
		Text("If you can read this,").
		Text("the printer is working.").
		FeedLines(3).
		Cut()

	return s.device.Print(doc.Bytes())
}

func (s *PrinterService) render(invoice *entity.Invoice, company *entity.Company) []byte {
	doc := printer.NewDocument(s.paperWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetFontSize(printer.FontDouble).
		Text(company.Name).
		SetFontSize(printer.FontNormal)
	if company.NameArabic != "" {
		doc.Text(company.NameArabic)
	}
	if company.VATNumber != "" {
		doc.TextF("VAT: %s", company.VATNumber)
	}
	if company.Address != "" {
		doc.Text(company.Address)
	}
	doc.Separator('=')

	title := "TAX INVOICE"
	switch invoice.Status {
	case enum.InvoiceRefunded:
		title = "REFUND"
	case enum.InvoiceTransferred:
		title = "TRANSFER TICKET"
	}
	doc.SetBold(true).Text(title).SetBold(false)

	doc.SetAlign(printer.AlignLeft)
	doc.KeyValue("Invoice", invoice.InvoiceNumber)
	doc.KeyValue("Date", invoice.IssueDate.Format("2006-01-02 15:04"))
	if invoice.Customer != nil && !invoice.Customer.IsWalkIn {
		doc.KeyValue("Customer", invoice.Customer.Name)
	}
	if invoice.TableNumber != nil {
		doc.KeyValue("Table", *invoice.TableNumber)
	}
	doc.Separator('-')

	// Items
	for _, item := range invoice.Items {
		doc.ItemLine(int(item.Quantity), item.ProductName, money(item.TotalAmount))
	}
	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal", money(invoice.SubTotal))
	doc.KeyValue("VAT", money(invoice.VATAmount))
	doc.SetBold(true)
	doc.KeyValue("TOTAL", money(invoice.TotalAmount))
	doc.SetBold(false)

	// Payments
	if len(invoice.Payments) > 0 {
		doc.Separator('-')
		for _, p := range invoice.Payments {
			name := "Payment"
			if p.PaymentType != nil {
				name = p.PaymentType.Name
			}
			doc.KeyValue(name, money(p.Amount))
		}
	}

	if invoice.Notes != "" {
		doc.Separator('-')
		doc.Text(invoice.Notes)
	}

	// ZATCA QR payload
	if invoice.QRCode != "" {
		doc.FeedLines(1).
			SetAlign(printer.AlignCenter).
			QRCode(invoice.QRCode, 6)
	}

	doc.SetAlign(printer.AlignCenter).
		FeedLines(1).
		Text("Thank you").
		FeedLines(3).
		Cut()

	return doc.Bytes()
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
