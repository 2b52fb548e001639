package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/obakr/qayd-api/internal/config"
	"github.com/obakr/qayd-api/internal/domain/cart"
	"github.com/obakr/qayd-api/internal/domain/entity"
	"github.com/obakr/qayd-api/internal/domain/enum"
	"github.com/obakr/qayd-api/internal/domain/repository"
	"github.com/obakr/qayd-api/pkg/apperror"
	"github.com/obakr/qayd-api/pkg/logger"
	"github.com/obakr/qayd-api/pkg/utils"
	"github.com/obakr/qayd-api/pkg/zatca"
)

// splitTolerance is the largest remaining balance still counted as fully
// covered when a split settlement is finalised.
var splitTolerance = decimal.RequireFromString("0.01")

// PaymentEntry is one pending allocation in a split settlement
type PaymentEntry struct {
	PaymentTypeID uuid.UUID
	TypeName      string
	Amount        decimal.Decimal
}

// registerSession is the working state of one till. All access goes
// through the session mutex; carts themselves are not concurrency safe.
// During a split settlement, draft holds the invoice created when the
// split was opened and remaining the balance not yet allocated.
type registerSession struct {
	mu        sync.Mutex
	state     cart.SessionState
	cart      *cart.Cart
	payments  []PaymentEntry
	draft     *entity.Invoice
	remaining decimal.Decimal
}

// POSService drives the register workflow: building a cart, taking
// payments and settling the cart into an immutable invoice.
type POSService struct {
	mu       sync.Mutex
	sessions map[string]*registerSession

	invoiceRepo       repository.InvoiceRepository
	paymentRepo       repository.PaymentRepository
	productRepo       repository.ProductRepository
	customerRepo      repository.CustomerRepository
	salesCategoryRepo repository.SalesCategoryRepository
	paymentTypeRepo   repository.PaymentTypeRepository
	companyRepo       repository.CompanyRepository

	cfg config.POSConfig
	log *logger.Logger
}

// NewPOSService creates a new POS service
func NewPOSService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	salesCategoryRepo repository.SalesCategoryRepository,
	paymentTypeRepo repository.PaymentTypeRepository,
	companyRepo repository.CompanyRepository,
	cfg config.POSConfig,
	log *logger.Logger,
) *POSService {
	return &POSService{
		sessions:          make(map[string]*registerSession),
		invoiceRepo:       invoiceRepo,
		paymentRepo:       paymentRepo,
		productRepo:       productRepo,
		customerRepo:      customerRepo,
		salesCategoryRepo: salesCategoryRepo,
		paymentTypeRepo:   paymentTypeRepo,
		companyRepo:       companyRepo,
		cfg:               cfg,
		log:               log.WithComponent("pos"),
	}
}

func (s *POSService) session(register string) *registerSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[register]
	if !ok {
		sess = &registerSession{state: cart.StateIdle, cart: cart.New()}
		s.sessions[register] = sess
	}
	return sess
}

// CartLineView is a cart line rendered for the register screen
type CartLineView struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	NameArabic string    `json:"name_arabic"`
	UnitPrice  float64   `json:"unit_price"`
	VATRate    float64   `json:"vat_rate"`
	Quantity   int       `json:"quantity"`
	LineTotal  float64   `json:"line_total"`
	VATAmount  float64   `json:"vat_amount"`
	Total      float64   `json:"total"`
}

// PaymentEntryView is a pending tender rendered for the register screen
type PaymentEntryView struct {
	PaymentTypeID uuid.UUID `json:"payment_type_id"`
	TypeName      string    `json:"type_name"`
	Amount        float64   `json:"amount"`
}

// CartView is the full register state rendered for the register screen
type CartView struct {
	Register     string             `json:"register"`
	State        string             `json:"state"`
	Lines        []CartLineView     `json:"lines"`
	SubTotal     float64            `json:"sub_total"`
	VATAmount    float64            `json:"vat_amount"`
	Total        float64            `json:"total"`
	Payments     []PaymentEntryView `json:"payments"`
	Paid         float64            `json:"paid"`
	Remaining    float64            `json:"remaining"`
	DraftInvoice string             `json:"draft_invoice,omitempty"`
}

func viewOf(register string, sess *registerSession) *CartView {
	totals := sess.cart.Totals()
	view := &CartView{
		Register:  register,
		State:     sess.state.String(),
		Lines:     make([]CartLineView, 0, sess.cart.Len()),
		SubTotal:  round2(totals.SubTotal),
		VATAmount: round2(totals.VATAmount),
		Total:     round2(totals.Total),
		Payments:  make([]PaymentEntryView, 0, len(sess.payments)),
	}
	for _, l := range sess.cart.Lines() {
		view.Lines = append(view.Lines, CartLineView{
			ProductID:  l.ProductID,
			Name:       l.Name,
			NameArabic: l.NameArabic,
			UnitPrice:  round2(l.UnitPrice),
			VATRate:    l.VATRate.InexactFloat64(),
			Quantity:   l.Quantity,
			LineTotal:  round2(l.LineTotal),
			VATAmount:  round2(l.VATAmount),
			Total:      round2(l.Total),
		})
	}
	paid := decimal.Zero
	for _, p := range sess.payments {
		view.Payments = append(view.Payments, PaymentEntryView{
			PaymentTypeID: p.PaymentTypeID,
			TypeName:      p.TypeName,
			Amount:        round2(p.Amount),
		})
		paid = paid.Add(p.Amount)
	}
	view.Paid = round2(paid)
	if sess.draft != nil {
		view.Remaining = round2(sess.remaining)
		view.DraftInvoice = sess.draft.InvoiceNumber
	} else {
		view.Remaining = round2(totals.Total.Sub(paid))
	}
	return view
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// GetCart returns the current register state
func (s *POSService) GetCart(register string) *CartView {
	sess := s.session(register)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return viewOf(register, sess)
}

// AddProduct adds one unit of a product to the register cart
func (s *POSService) AddProduct(ctx context.Context, register string, productID uuid.UUID) (*CartView, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !product.IsActive {
		return nil, apperror.NewBadRequestError("Product is not available for sale")
	}

	sess := s.session(register)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.state.CanMutate() {
		return nil, apperror.ErrSettlementInProgress
	}
	if sess.draft != nil {
		return nil, apperror.NewBadRequestError("Cart is locked while a split settlement is open")
	}
	sess.cart.AddProduct(product)
	sess.state = cart.StateBuilding
	return viewOf(register, sess), nil
}

// AddProductByBarcode adds one unit of a product located by barcode
func (s *POSService) AddProductByBarcode(ctx context.Context, register, barcode string) (*CartView, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return s.AddProduct(ctx, register, product.ID)
}

// UpdateQuantity sets the quantity of a cart line. Zero removes the line.
func (s *POSService) UpdateQuantity(register string, index, quantity int) (*CartView, error) {
	sess := s.session(register)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.state.CanMutate() {
		return nil, apperror.ErrSettlementInProgress
	}
	if sess.draft != nil {
		return nil, apperror.NewBadRequestError("Cart is locked while a split settlement is open")
	}
	if err := sess.cart.UpdateQuantity(index, quantity); err != nil {
		return nil, apperror.NewBadRequestError("Cart line does not exist")
	}
	if sess.cart.IsEmpty() {
		sess.state = cart.StateIdle
		sess.payments = nil
	}
	return viewOf(register, sess), nil
}

// RemoveLine removes a cart line
func (s *POSService) RemoveLine(register string, index int) (*CartView, error) {
	sess := s.session(register)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.state.CanMutate() {
		return nil, apperror.ErrSettlementInProgress
	}
	if sess.draft != nil {
		return nil, apperror.NewBadRequestError("Cart is locked while a split settlement is open")
	}
	if err := sess.cart.RemoveLine(index); err != nil {
		return nil, apperror.NewBadRequestError("Cart line does not exist")
	}
	if sess.cart.IsEmpty() {
		sess.state = cart.StateIdle
		sess.payments = nil
	}
	return viewOf(register, sess), nil
}

// ResetCart abandons the cart and any pending payment entries. An open
// split settlement is abandoned too; its draft invoice stays on file and
// can be settled later from the open invoices list.
func (s *POSService) ResetCart(register string) (*CartView, error) {
	sess := s.session(register)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state == cart.StateSubmitting {
		return nil, apperror.ErrSettlementInProgress
	}
	if sess.draft != nil {
		s.log.Warnw("split settlement abandoned", "invoice_number", sess.draft.InvoiceNumber)
	}
	sess.cart.Reset()
	sess.payments = nil
	sess.draft = nil
	sess.remaining = decimal.Zero
	sess.state = cart.StateIdle
	return viewOf(register, sess), nil
}

// AddPaymentEntry queues an allocation against the open split settlement.
// The amount may not exceed the remaining balance.
func (s *POSService) AddPaymentEntry(ctx context.Context, register string, paymentTypeID uuid.UUID, amount float64) (*CartView, error) {
	if amount <= 0 {
		return nil, apperror.NewValidationError("Payment amount must be positive")
	}

	paymentType, err := s.paymentTypeRepo.GetByID(ctx, paymentTypeID)
	if err != nil {
		return nil, err
	}
	if paymentType == nil {
		return nil, apperror.NewNotFoundError("Payment type")
	}
	if !paymentType.IsActive {
		return nil, apperror.NewBadRequestError("Payment type is not active")
	}

	sess := s.session(register)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.state.CanMutate() {
		return nil, apperror.ErrSettlementInProgress
	}
	if sess.draft == nil {
		return nil, apperror.NewBadRequestError("No split settlement is open")
	}

	amt := decimal.NewFromFloat(amount)
	if amt.GreaterThan(sess.remaining) {
		return nil, apperror.NewValidationError(fmt.Sprintf(
			"Payment of %s exceeds the remaining balance of %s",
			amt.StringFixed(2), sess.remaining.StringFixed(2),
		))
	}

	sess.payments = append(sess.payments, PaymentEntry{
		PaymentTypeID: paymentType.ID,
		TypeName:      paymentType.Name,
		Amount:        amt,
	})
	sess.remaining = sess.remaining.Sub(amt)
	return viewOf(register, sess), nil
}

// RemovePaymentEntry removes a queued allocation and returns its amount
// to the remaining balance
func (s *POSService) RemovePaymentEntry(register string, index int) (*CartView, error) {
	sess := s.session(register)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.state.CanMutate() {
		return nil, apperror.ErrSettlementInProgress
	}
	if index < 0 || index >= len(sess.payments) {
		return nil, apperror.NewBadRequestError("Payment entry does not exist")
	}
	sess.remaining = sess.remaining.Add(sess.payments[index].Amount)
	sess.payments = append(sess.payments[:index], sess.payments[index+1:]...)
	return viewOf(register, sess), nil
}

// SettleInput carries the settlement context common to every checkout path
type SettleInput struct {
	CustomerID      *uuid.UUID
	SalesCategoryID *uuid.UUID
	TableNumber     *string
	UserID          *uuid.UUID
	Notes           string
}

// DirectSale settles the cart in one step with a single full payment.
// A nil payment type falls back to the configured default (usually cash).
func (s *POSService) DirectSale(ctx context.Context, register string, paymentTypeID *uuid.UUID, input *SettleInput) (*entity.Invoice, error) {
	paymentType, err := s.resolvePaymentType(ctx, paymentTypeID)
	if err != nil {
		return nil, err
	}

	sess := s.session(register)
	if err := s.beginSubmit(sess); err != nil {
		return nil, err
	}

	snapshot := sess.cart
	total := snapshot.Totals().Total

	invoice, err := s.settle(ctx, snapshot, input, enum.InvoicePaid, []PaymentEntry{{
		PaymentTypeID: paymentType.ID,
		TypeName:      paymentType.Name,
		Amount:        total,
	}})
	s.finishSubmit(sess, err == nil)
	return invoice, err
}

// BeginSplit opens a split settlement: the cart is written as a draft
// invoice with no payments, and the session starts tracking the remaining
// balance for allocations. The cart is locked until the split is
// processed or abandoned.
func (s *POSService) BeginSplit(ctx context.Context, register string, input *SettleInput) (*CartView, error) {
	sess := s.session(register)
	if err := s.beginSubmit(sess); err != nil {
		return nil, err
	}

	snapshot := sess.cart

	number, err := s.nextInvoiceNumber(ctx)
	if err != nil {
		s.finishSubmit(sess, false)
		return nil, err
	}

	invoice := s.buildInvoice(snapshot, number, input, enum.InvoiceDraft)

	if err := s.resolveParties(ctx, invoice, input); err != nil {
		s.finishSubmit(sess, false)
		return nil, err
	}
	if err := s.attachQR(ctx, invoice); err != nil {
		s.finishSubmit(sess, false)
		return nil, err
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		s.finishSubmit(sess, false)
		return nil, err
	}

	sess.mu.Lock()
	sess.draft = invoice
	sess.remaining = snapshot.Totals().Total
	sess.payments = nil
	sess.state = cart.StateBuilding
	view := viewOf(register, sess)
	sess.mu.Unlock()

	s.log.Infow("split settlement opened",
		"invoice_number", invoice.InvoiceNumber, "total", invoice.TotalAmount)
	return view, nil
}

// ProcessSplit records the queued allocations against the open draft
// invoice, one payment at a time, then moves the invoice to paid or
// partially paid depending on the remaining balance. A failure part-way
// keeps the payments already written and the allocations still pending,
// so a retry picks up where the last attempt stopped.
func (s *POSService) ProcessSplit(ctx context.Context, register string, input *SettleInput) (*entity.Invoice, error) {
	sess := s.session(register)

	sess.mu.Lock()
	if sess.state == cart.StateSubmitting {
		sess.mu.Unlock()
		return nil, apperror.ErrSettlementInProgress
	}
	if sess.draft == nil {
		sess.mu.Unlock()
		return nil, apperror.NewBadRequestError("No split settlement is open")
	}
	draft := sess.draft
	allocated := decimal.NewFromFloat(draft.TotalAmount).Sub(sess.remaining)
	if allocated.LessThanOrEqual(decimal.Zero) {
		sess.mu.Unlock()
		return nil, apperror.NewBadRequestError("No payment entries queued")
	}
	entries := make([]PaymentEntry, len(sess.payments))
	copy(entries, sess.payments)
	remaining := sess.remaining
	sess.state = cart.StateSubmitting
	sess.mu.Unlock()

	for i, e := range entries {
		payment := &entity.Payment{
			InvoiceID:     draft.ID,
			PaymentTypeID: e.PaymentTypeID,
			Amount:        round2(e.Amount),
			PaymentDate:   time.Now(),
			Status:        enum.PaymentCompleted,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			sess.mu.Lock()
			// keep only the allocations that were not written yet
			sess.payments = entries[i:]
			sess.state = cart.StateFailed
			sess.mu.Unlock()
			s.log.Errorw("split payment failed",
				"invoice_number", draft.InvoiceNumber, "entry", i, "error", err)
			return nil, apperror.NewPartialFailureError(fmt.Sprintf(
				"%d of %d payments were recorded for invoice %s; retry to record the rest",
				i, len(entries), draft.InvoiceNumber,
			), err)
		}
	}

	status := enum.InvoicePartiallyPaid
	if remaining.LessThanOrEqual(splitTolerance) {
		status = enum.InvoicePaid
	}
	if err := s.invoiceRepo.UpdateStatus(ctx, draft.ID, status); err != nil {
		sess.mu.Lock()
		sess.payments = nil
		sess.state = cart.StateFailed
		sess.mu.Unlock()
		return nil, apperror.NewPartialFailureError(fmt.Sprintf(
			"Payments for invoice %s were recorded but its status was not updated", draft.InvoiceNumber,
		), err)
	}

	sess.mu.Lock()
	sess.cart = cart.New()
	sess.payments = nil
	sess.draft = nil
	sess.remaining = decimal.Zero
	sess.state = cart.StateIdle
	sess.mu.Unlock()

	s.log.Infow("split settled",
		"invoice_number", draft.InvoiceNumber,
		"status", status.String(),
		"payments", len(entries),
	)

	return s.invoiceRepo.GetWithDetails(ctx, draft.ID)
}

// RefundCart settles the current cart as a refund: every amount is
// negated, the invoice is marked refunded and money flows back out
// through the chosen payment type.
func (s *POSService) RefundCart(ctx context.Context, register, reason string, paymentTypeID *uuid.UUID, input *SettleInput) (*entity.Invoice, error) {
	if reason == "" {
		return nil, apperror.NewValidationError("A refund reason is required")
	}

	paymentType, err := s.resolvePaymentType(ctx, paymentTypeID)
	if err != nil {
		return nil, err
	}

	sess := s.session(register)
	if err := s.beginSubmit(sess); err != nil {
		return nil, err
	}

	// The refund document is built from a copy; the live cart keeps its
	// sale-side amounts until the settlement clears, so a failed attempt
	// leaves nothing to undo.
	sess.mu.Lock()
	snapshot := sess.cart.Clone()
	sess.mu.Unlock()
	snapshot.Negate()

	refundInput := *input
	refundInput.Notes = "Refund - " + reason

	invoice, err := s.settle(ctx, snapshot, &refundInput, enum.InvoiceRefunded, []PaymentEntry{{
		PaymentTypeID: paymentType.ID,
		TypeName:      paymentType.Name,
		Amount:        snapshot.Totals().Total,
	}})
	s.finishSubmit(sess, err == nil)
	return invoice, err
}

// RefundInvoice refunds a settled invoice in place: each payment on it is
// flipped to refunded with an audit note, then the invoice itself. The
// flips are written one at a time; a failure part-way leaves the earlier
// payments refunded and the error says how far it got.
func (s *POSService) RefundInvoice(ctx context.Context, invoiceID uuid.UUID, reason string, userID *uuid.UUID) (*entity.Invoice, error) {
	if reason == "" {
		return nil, apperror.NewValidationError("A refund reason is required")
	}

	invoice, err := s.invoiceRepo.GetWithDetails(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status == enum.InvoiceRefunded {
		return nil, apperror.NewBadRequestError("Invoice is already refunded")
	}
	if invoice.Status != enum.InvoicePaid && invoice.Status != enum.InvoicePartiallyPaid {
		return nil, apperror.NewBadRequestError("Only paid invoices can be refunded")
	}

	note := "Refund - " + reason

	// Phase one: flip the payments. Each flip is staged on a copy and only
	// written back once persisted, so a retry re-reads the true stored
	// status instead of a half-applied one.
	for i := range invoice.Payments {
		if invoice.Payments[i].Status == enum.PaymentRefunded {
			continue
		}
		p := invoice.Payments[i]
		p.Status = enum.PaymentRefunded
		p.Notes = appendNote(p.Notes, note)
		if err := s.paymentRepo.Update(ctx, &p); err != nil {
			s.log.Errorw("refund stopped part-way",
				"invoice_number", invoice.InvoiceNumber, "payment_id", p.ID, "error", err)
			return nil, apperror.NewPartialFailureError(fmt.Sprintf(
				"%d of %d payments on invoice %s were refunded; retry to refund the rest",
				i, len(invoice.Payments), invoice.InvoiceNumber,
			), err)
		}
		invoice.Payments[i] = p
	}

	// Phase two: flip the invoice
	invoice.Status = enum.InvoiceRefunded
	invoice.Notes = appendNote(invoice.Notes, note)
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, apperror.NewPartialFailureError(fmt.Sprintf(
			"Payments on invoice %s were refunded but the invoice status was not updated", invoice.InvoiceNumber,
		), err)
	}

	s.log.Infow("invoice refunded",
		"invoice_number", invoice.InvoiceNumber, "reason", reason, "user_id", userID)

	return s.invoiceRepo.GetWithDetails(ctx, invoiceID)
}

// Transfer moves the cart onto an existing open invoice, typically a
// table ticket held by the dining side. The cart is written as a
// transferred document whose note links it to the target; per-line VAT
// and totals are zeroed because the receiving ticket recomputes them at
// settlement.
func (s *POSService) Transfer(ctx context.Context, register string, targetInvoiceID uuid.UUID, input *SettleInput) (*entity.Invoice, error) {
	target, err := s.invoiceRepo.GetByID(ctx, targetInvoiceID)
	if err != nil {
		return nil, err
	}
	if target == nil || !target.Status.IsOpen() {
		return nil, apperror.NewValidationError("Transfer target must be an open invoice")
	}

	sess := s.session(register)
	if err := s.beginSubmit(sess); err != nil {
		return nil, err
	}

	snapshot := sess.cart

	number, err := s.nextInvoiceNumber(ctx)
	if err != nil {
		s.finishSubmit(sess, false)
		return nil, err
	}

	note := "Transferred from POS"
	if input.TableNumber != nil && *input.TableNumber != "" {
		note += " | Table: " + *input.TableNumber
	}
	note += " | To: " + target.InvoiceNumber

	transferInput := *input
	transferInput.Notes = appendNote(input.Notes, note)

	invoice := s.buildInvoice(snapshot, number, &transferInput, enum.InvoiceTransferred)
	for i := range invoice.Items {
		invoice.Items[i].VATAmount = 0
		invoice.Items[i].TotalAmount = 0
	}

	if err := s.resolveParties(ctx, invoice, &transferInput); err != nil {
		s.finishSubmit(sess, false)
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		s.finishSubmit(sess, false)
		return nil, err
	}

	s.log.Infow("cart transferred",
		"invoice_number", invoice.InvoiceNumber, "target", target.InvoiceNumber)
	s.finishSubmit(sess, true)
	return invoice, nil
}

// appendNote joins audit notes with a pipe, skipping empty parts
func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + " | " + note
}

// beginSubmit moves the session into Submitting, rejecting concurrent
// submissions and empty carts.
func (s *POSService) beginSubmit(sess *registerSession) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state == cart.StateSubmitting {
		return apperror.ErrSettlementInProgress
	}
	if sess.draft != nil {
		return apperror.NewBadRequestError("A split settlement is already open")
	}
	if !sess.state.CanSubmit() {
		return apperror.NewBadRequestError("Nothing to settle")
	}
	if sess.cart.IsEmpty() {
		return apperror.NewBadRequestError("Cart is empty")
	}
	sess.state = cart.StateSubmitting
	return nil
}

// finishSubmit resolves the Submitting state. Success clears the cart for
// the next sale; failure keeps it so the cashier can retry.
func (s *POSService) finishSubmit(sess *registerSession, ok bool) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if ok {
		sess.cart = cart.New()
		sess.payments = nil
		sess.draft = nil
		sess.remaining = decimal.Zero
		sess.state = cart.StateIdle
		return
	}
	sess.state = cart.StateFailed
}

// settle turns a cart into a persisted invoice with its payments
func (s *POSService) settle(ctx context.Context, c *cart.Cart, input *SettleInput, status enum.InvoiceStatus, entries []PaymentEntry) (*entity.Invoice, error) {
	number, err := s.nextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice := s.buildInvoice(c, number, input, status)

	if err := s.resolveParties(ctx, invoice, input); err != nil {
		return nil, err
	}
	if err := s.attachQR(ctx, invoice); err != nil {
		return nil, err
	}

	paymentStatus := enum.PaymentCompleted
	if status == enum.InvoiceRefunded {
		paymentStatus = enum.PaymentRefunded
	}
	for _, e := range entries {
		invoice.Payments = append(invoice.Payments, entity.Payment{
			PaymentTypeID: e.PaymentTypeID,
			Amount:        round2(e.Amount),
			PaymentDate:   time.Now(),
			Status:        paymentStatus,
		})
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.log.Infow("cart settled",
		"invoice_number", invoice.InvoiceNumber,
		"status", invoice.Status.String(),
		"total", invoice.TotalAmount,
		"payments", len(invoice.Payments),
	)

	return s.invoiceRepo.GetWithDetails(ctx, invoice.ID)
}

func (s *POSService) buildInvoice(c *cart.Cart, number string, input *SettleInput, status enum.InvoiceStatus) *entity.Invoice {
	totals := c.Totals()
	invoice := &entity.Invoice{
		InvoiceNumber: number,
		TableNumber:   input.TableNumber,
		UserID:        input.UserID,
		IssueDate:     time.Now(),
		SubTotal:      round2(totals.SubTotal),
		VATAmount:     round2(totals.VATAmount),
		TotalAmount:   round2(totals.Total),
		Status:        status,
		Notes:         input.Notes,
	}

	for _, l := range c.Lines() {
		item := entity.InvoiceItem{
			ProductName: l.Name,
			NameArabic:  l.NameArabic,
			Quantity:    float64(l.Quantity),
			UnitPrice:   round2(l.UnitPrice),
			VATRate:     l.VATRate.InexactFloat64(),
			VATAmount:   round2(l.VATAmount),
			TotalAmount: round2(l.Total),
		}
		if l.ProductID != uuid.Nil {
			id := l.ProductID
			item.ProductID = &id
		}
		invoice.Items = append(invoice.Items, item)
	}

	return invoice
}

// resolveParties fills in the customer and sales category, falling back to
// the walk-in customer and the default category.
func (s *POSService) resolveParties(ctx context.Context, invoice *entity.Invoice, input *SettleInput) error {
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
		invoice.CustomerID = customer.ID
	} else {
		walkIn, err := s.customerRepo.GetWalkIn(ctx)
		if err != nil {
			return err
		}
		if walkIn == nil {
			return apperror.NewBadRequestError("No walk-in customer is configured")
		}
		invoice.CustomerID = walkIn.ID
	}

	if input.SalesCategoryID != nil {
		salesCategory, err := s.salesCategoryRepo.GetByID(ctx, *input.SalesCategoryID)
		if err != nil {
			return err
		}
		if salesCategory == nil {
			return apperror.NewNotFoundError("Sales category")
		}
		invoice.SalesCategoryID = salesCategory.ID
	} else {
		defaultCategory, err := s.salesCategoryRepo.GetDefault(ctx)
		if err != nil {
			return err
		}
		if defaultCategory == nil {
			return apperror.NewBadRequestError("No default sales category is configured")
		}
		invoice.SalesCategoryID = defaultCategory.ID
	}

	return nil
}

func (s *POSService) resolvePaymentType(ctx context.Context, id *uuid.UUID) (*entity.PaymentType, error) {
	if id != nil {
		paymentType, err := s.paymentTypeRepo.GetByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		if paymentType == nil {
			return nil, apperror.NewNotFoundError("Payment type")
		}
		if !paymentType.IsActive {
			return nil, apperror.NewBadRequestError("Payment type is not active")
		}
		return paymentType, nil
	}

	paymentType, err := s.paymentTypeRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if paymentType == nil {
		return nil, apperror.NewBadRequestError("No default payment type is configured")
	}
	return paymentType, nil
}

// attachQR stamps the invoice with its ZATCA TLV QR payload
func (s *POSService) attachQR(ctx context.Context, invoice *entity.Invoice) error {
	company, err := s.companyRepo.Get(ctx)
	if err != nil {
		return err
	}
	if company == nil {
		return apperror.NewBadRequestError("No company profile is configured")
	}

	qr, err := zatca.Encode(zatca.QRData{
		SellerName:  company.Name,
		VATNumber:   company.VATNumber,
		Timestamp:   invoice.IssueDate,
		TotalAmount: invoice.TotalAmount,
		VATAmount:   invoice.VATAmount,
	})
	if err != nil {
		return err
	}
	invoice.QRCode = qr
	return nil
}

// nextInvoiceNumber derives the next sequential invoice number from the
// all-time row count, soft-deleted invoices included.
func (s *POSService) nextInvoiceNumber(ctx context.Context) (string, error) {
	count, err := s.invoiceRepo.Count(ctx)
	if err != nil {
		return "", err
	}
	return utils.FormatInvoiceNumber(s.cfg.InvoicePrefix, count+1), nil
}
