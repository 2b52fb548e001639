package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obakr/qayd-api/internal/config"
	"github.com/obakr/qayd-api/internal/domain/entity"
	"github.com/obakr/qayd-api/internal/domain/enum"
	"github.com/obakr/qayd-api/internal/domain/repository"
	"github.com/obakr/qayd-api/pkg/apperror"
	"github.com/obakr/qayd-api/pkg/logger"
	"github.com/obakr/qayd-api/pkg/pagination"
	"github.com/obakr/qayd-api/pkg/zatca"
)

type fakeInvoiceRepo struct {
	invoices         map[uuid.UUID]*entity.Invoice
	created          int64
	failCreate       error
	failUpdateStatus error
	onCreate         func()
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[uuid.UUID]*entity.Invoice{}}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if r.onCreate != nil {
		r.onCreate()
	}
	if r.failCreate != nil {
		return r.failCreate
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	for i := range invoice.Items {
		if invoice.Items[i].ID == uuid.Nil {
			invoice.Items[i].ID = uuid.New()
		}
		invoice.Items[i].InvoiceID = invoice.ID
	}
	for i := range invoice.Payments {
		if invoice.Payments[i].ID == uuid.Nil {
			invoice.Payments[i].ID = uuid.New()
		}
		invoice.Payments[i].InvoiceID = invoice.ID
	}
	r.invoices[invoice.ID] = invoice
	r.created++
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.invoices[id], nil
}

func (r *fakeInvoiceRepo) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.InvoiceNumber == number {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	// a fresh fetch is detached from the stored rows
	out := *inv
	out.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	out.Payments = append([]entity.Payment(nil), inv.Payments...)
	return &out, nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	if r.failUpdateStatus != nil {
		return r.failUpdateStatus
	}
	if inv, ok := r.invoices[id]; ok {
		inv.Status = status
	}
	return nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	return nil, 0, nil
}

func (r *fakeInvoiceRepo) ListOpen(ctx context.Context, params *pagination.PaginationParams) ([]entity.Invoice, int64, error) {
	return nil, 0, nil
}

func (r *fakeInvoiceRepo) Count(ctx context.Context) (int64, error) {
	return r.created, nil
}

// fakePaymentRepo counts calls so tests can fail the nth write and
// verify retries resume where the last attempt stopped. Successful
// updates write through to the payment rows held on the invoice store,
// so a re-fetch of the invoice sees what was actually persisted.
type fakePaymentRepo struct {
	payments     []entity.Payment
	updated      []entity.Payment
	invoices     *fakeInvoiceRepo
	createCalls  int
	updateCalls  int
	failCreateAt int // 1-based call number that starts failing, 0 = never
	failUpdateAt int
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	r.createCalls++
	if r.failCreateAt > 0 && r.createCalls >= r.failCreateAt {
		return errors.New("connection reset")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments = append(r.payments, *p)
	return nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	r.updateCalls++
	if r.failUpdateAt > 0 && r.updateCalls >= r.failUpdateAt {
		return errors.New("connection reset")
	}
	r.updated = append(r.updated, *p)
	if r.invoices != nil {
		if inv, ok := r.invoices.invoices[p.InvoiceID]; ok {
			for i := range inv.Payments {
				if inv.Payments[i].ID == p.ID {
					inv.Payments[i] = *p
				}
			}
		}
	}
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return nil, nil
}

func (r *fakePaymentRepo) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) List(ctx context.Context, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	return nil, 0, nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

type fakeCustomerRepo struct {
	walkIn *entity.Customer
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error { return nil }

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	if r.walkIn != nil && r.walkIn.ID == id {
		return r.walkIn, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetWalkIn(ctx context.Context) (*entity.Customer, error) {
	return r.walkIn, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

type fakeSalesCategoryRepo struct {
	def *entity.SalesCategory
}

func (r *fakeSalesCategoryRepo) Create(ctx context.Context, sc *entity.SalesCategory) error {
	return nil
}

func (r *fakeSalesCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesCategory, error) {
	if r.def != nil && r.def.ID == id {
		return r.def, nil
	}
	return nil, nil
}

func (r *fakeSalesCategoryRepo) GetByCode(ctx context.Context, code string) (*entity.SalesCategory, error) {
	return nil, nil
}

func (r *fakeSalesCategoryRepo) GetDefault(ctx context.Context) (*entity.SalesCategory, error) {
	return r.def, nil
}

func (r *fakeSalesCategoryRepo) Update(ctx context.Context, sc *entity.SalesCategory) error {
	return nil
}

func (r *fakeSalesCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeSalesCategoryRepo) List(ctx context.Context, activeOnly bool) ([]entity.SalesCategory, error) {
	return nil, nil
}

func (r *fakeSalesCategoryRepo) ClearDefault(ctx context.Context) error { return nil }

type fakePaymentTypeRepo struct {
	def   *entity.PaymentType
	types map[uuid.UUID]*entity.PaymentType
}

func (r *fakePaymentTypeRepo) Create(ctx context.Context, pt *entity.PaymentType) error { return nil }

func (r *fakePaymentTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentType, error) {
	if r.types != nil {
		return r.types[id], nil
	}
	if r.def != nil && r.def.ID == id {
		return r.def, nil
	}
	return nil, nil
}

func (r *fakePaymentTypeRepo) GetByCode(ctx context.Context, code string) (*entity.PaymentType, error) {
	return nil, nil
}

func (r *fakePaymentTypeRepo) GetDefault(ctx context.Context) (*entity.PaymentType, error) {
	return r.def, nil
}

func (r *fakePaymentTypeRepo) Update(ctx context.Context, pt *entity.PaymentType) error { return nil }
func (r *fakePaymentTypeRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }

func (r *fakePaymentTypeRepo) List(ctx context.Context, activeOnly bool) ([]entity.PaymentType, error) {
	return nil, nil
}

func (r *fakePaymentTypeRepo) ClearDefault(ctx context.Context) error { return nil }

type fakeCompanyRepo struct {
	company *entity.Company
}

func (r *fakeCompanyRepo) Get(ctx context.Context) (*entity.Company, error) {
	return r.company, nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, c *entity.Company) error { return nil }

type posFixture struct {
	svc         *POSService
	invoiceRepo *fakeInvoiceRepo
	paymentRepo *fakePaymentRepo
	productRepo *fakeProductRepo
	espresso    *entity.Product
	water       *entity.Product
	cash        *entity.PaymentType
	card        *entity.PaymentType
}

func newPOSFixture(t *testing.T) *posFixture {
	t.Helper()

	espresso := &entity.Product{ID: uuid.New(), Name: "Espresso", UnitPrice: 10, VATRate: 15, IsActive: true}
	water := &entity.Product{ID: uuid.New(), Name: "Water", UnitPrice: 2, VATRate: 0, IsActive: true}

	cash := &entity.PaymentType{ID: uuid.New(), Name: "Cash", Code: "cash", IsDefault: true, IsActive: true}
	card := &entity.PaymentType{ID: uuid.New(), Name: "Card", Code: "card", IsActive: true}

	invoiceRepo := newFakeInvoiceRepo()
	paymentRepo := &fakePaymentRepo{invoices: invoiceRepo}
	productRepo := &fakeProductRepo{products: map[uuid.UUID]*entity.Product{
		espresso.ID: espresso,
		water.ID:    water,
	}}

	svc := NewPOSService(
		invoiceRepo,
		paymentRepo,
		productRepo,
		&fakeCustomerRepo{walkIn: &entity.Customer{ID: uuid.New(), Name: "Walk-in Customer", IsWalkIn: true}},
		&fakeSalesCategoryRepo{def: &entity.SalesCategory{ID: uuid.New(), Name: "Dine-in", Code: "dine_in", IsDefault: true, IsActive: true}},
		&fakePaymentTypeRepo{def: cash, types: map[uuid.UUID]*entity.PaymentType{cash.ID: cash, card.ID: card}},
		&fakeCompanyRepo{company: &entity.Company{ID: uuid.New(), Name: "Qayd Store", VATNumber: "310123456700003"}},
		config.POSConfig{InvoicePrefix: "SI", DefaultVATRate: 15},
		logger.Default(),
	)

	return &posFixture{
		svc:         svc,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		productRepo: productRepo,
		espresso:    espresso,
		water:       water,
		cash:        cash,
		card:        card,
	}
}

func TestDirectSale(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	view, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	assert.Equal(t, 20.0, view.SubTotal)
	assert.Equal(t, 3.0, view.VATAmount)
	assert.Equal(t, 23.0, view.Total)

	invoice, err := f.svc.DirectSale(ctx, "till-1", nil, &SettleInput{})
	require.NoError(t, err)

	assert.Equal(t, "SI-000001", invoice.InvoiceNumber)
	assert.Equal(t, enum.InvoicePaid, invoice.Status)
	assert.Equal(t, 20.0, invoice.SubTotal)
	assert.Equal(t, 3.0, invoice.VATAmount)
	assert.Equal(t, 23.0, invoice.TotalAmount)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, 2.0, invoice.Items[0].Quantity)
	require.Len(t, invoice.Payments, 1)
	assert.Equal(t, 23.0, invoice.Payments[0].Amount)
	assert.Equal(t, f.cash.ID, invoice.Payments[0].PaymentTypeID)

	// QR payload must decode back to the invoice amounts
	qr, err := zatca.Decode(invoice.QRCode)
	require.NoError(t, err)
	assert.Equal(t, "Qayd Store", qr.SellerName)
	assert.Equal(t, 23.0, qr.TotalAmount)
	assert.Equal(t, 3.0, qr.VATAmount)

	// cart is cleared for the next sale
	after := f.svc.GetCart("till-1")
	assert.Empty(t, after.Lines)
	assert.Equal(t, "idle", after.State)
}

func TestDirectSaleEmptyCart(t *testing.T) {
	f := newPOSFixture(t)

	_, err := f.svc.DirectSale(context.Background(), "till-1", nil, &SettleInput{})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestInvoiceNumbersAreSequential(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := f.svc.AddProduct(ctx, "till-1", f.water.ID)
		require.NoError(t, err)
		invoice, err := f.svc.DirectSale(ctx, "till-1", nil, &SettleInput{})
		require.NoError(t, err)
		assert.Equal(t, i, int(f.invoiceRepo.created))
		assert.Contains(t, invoice.InvoiceNumber, "SI-00000")
	}
}

func TestBeginSplitCreatesDraft(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	view, err := f.svc.BeginSplit(ctx, "till-1", &SettleInput{})
	require.NoError(t, err)

	assert.Equal(t, "building", view.State)
	assert.Equal(t, "SI-000001", view.DraftInvoice)
	assert.Equal(t, 23.0, view.Remaining)

	// the draft is on file without payments
	draft, err := f.invoiceRepo.GetByNumber(ctx, "SI-000001")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, enum.InvoiceDraft, draft.Status)
	assert.Empty(t, draft.Payments)

	// the cart is locked until the split resolves
	_, err = f.svc.AddProduct(ctx, "till-1", f.water.ID)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestSplitSettleFullyPaid(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	_, err = f.svc.BeginSplit(ctx, "till-1", &SettleInput{})
	require.NoError(t, err)

	// 10 + 13 covers the 23.00 total exactly
	_, err = f.svc.AddPaymentEntry(ctx, "till-1", f.cash.ID, 10)
	require.NoError(t, err)
	view, err := f.svc.AddPaymentEntry(ctx, "till-1", f.card.ID, 13)
	require.NoError(t, err)
	assert.Equal(t, 0.0, view.Remaining)

	invoice, err := f.svc.ProcessSplit(ctx, "till-1", &SettleInput{})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoicePaid, invoice.Status)

	payments, err := f.paymentRepo.GetByInvoiceID(ctx, invoice.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, 10.0, payments[0].Amount)
	assert.Equal(t, 13.0, payments[1].Amount)

	after := f.svc.GetCart("till-1")
	assert.Empty(t, after.Lines)
	assert.Equal(t, "idle", after.State)
	assert.Empty(t, after.DraftInvoice)
}

func TestSplitSettlePartiallyPaid(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	_, err = f.svc.BeginSplit(ctx, "till-1", &SettleInput{})
	require.NoError(t, err)

	// 10 + 5 leaves 8.00 outstanding
	_, err = f.svc.AddPaymentEntry(ctx, "till-1", f.cash.ID, 10)
	require.NoError(t, err)
	view, err := f.svc.AddPaymentEntry(ctx, "till-1", f.card.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 8.0, view.Remaining)

	invoice, err := f.svc.ProcessSplit(ctx, "till-1", &SettleInput{})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoicePartiallyPaid, invoice.Status)

	payments, err := f.paymentRepo.GetByInvoiceID(ctx, invoice.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
}

func TestAddPaymentEntryExceedsRemaining(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	_, err = f.svc.BeginSplit(ctx, "till-1", &SettleInput{})
	require.NoError(t, err)

	_, err = f.svc.AddPaymentEntry(ctx, "till-1", f.cash.ID, 30)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 422, appErr.Code)

	// the cap tracks what is already allocated
	_, err = f.svc.AddPaymentEntry(ctx, "till-1", f.cash.ID, 10)
	require.NoError(t, err)
	_, err = f.svc.AddPaymentEntry(ctx, "till-1", f.card.ID, 14)
	require.Error(t, err)
}

func TestAddPaymentEntryRequiresOpenSplit(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	_, err = f.svc.AddPaymentEntry(ctx, "till-1", f.cash.ID, 10)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestRemovePaymentEntryRestoresRemaining(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	_, err = f.svc.BeginSplit(ctx, "till-1", &SettleInput{})
	require.NoError(t, err)

	view, err := f.svc.AddPaymentEntry(ctx, "till-1", f.cash.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 13.0, view.Remaining)

	view, err = f.svc.RemovePaymentEntry("till-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 23.0, view.Remaining)
	assert.Empty(t, view.Payments)
}

func TestProcessSplitRetriesAfterPaymentFailure(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	_, err = f.svc.BeginSplit(ctx, "till-1", &SettleInput{})
	require.NoError(t, err)
	_, err = f.svc.AddPaymentEntry(ctx, "till-1", f.cash.ID, 10)
	require.NoError(t, err)
	_, err = f.svc.AddPaymentEntry(ctx, "till-1", f.card.ID, 13)
	require.NoError(t, err)

	// second payment write fails; the first stays on file
	f.paymentRepo.failCreateAt = 2
	_, err = f.svc.ProcessSplit(ctx, "till-1", &SettleInput{})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 502, appErr.Code)
	require.Len(t, f.paymentRepo.payments, 1)

	view := f.svc.GetCart("till-1")
	assert.Equal(t, "failed", view.State)
	require.Len(t, view.Payments, 1)
	assert.Equal(t, 13.0, view.Payments[0].Amount)

	// retry writes only the payment that failed
	f.paymentRepo.failCreateAt = 0
	invoice, err := f.svc.ProcessSplit(ctx, "till-1", &SettleInput{})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoicePaid, invoice.Status)
	require.Len(t, f.paymentRepo.payments, 2)
}

func TestProcessSplitRetriesAfterStatusFailure(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	_, err = f.svc.BeginSplit(ctx, "till-1", &SettleInput{})
	require.NoError(t, err)
	_, err = f.svc.AddPaymentEntry(ctx, "till-1", f.cash.ID, 23)
	require.NoError(t, err)

	f.invoiceRepo.failUpdateStatus = errors.New("connection reset")
	_, err = f.svc.ProcessSplit(ctx, "till-1", &SettleInput{})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 502, appErr.Code)
	require.Len(t, f.paymentRepo.payments, 1)

	// retry does not duplicate the recorded payment
	f.invoiceRepo.failUpdateStatus = nil
	invoice, err := f.svc.ProcessSplit(ctx, "till-1", &SettleInput{})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoicePaid, invoice.Status)
	require.Len(t, f.paymentRepo.payments, 1)
}

func TestProcessSplitRequiresAllocations(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.BeginSplit(ctx, "till-1", &SettleInput{})
	require.NoError(t, err)

	_, err = f.svc.ProcessSplit(ctx, "till-1", &SettleInput{})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestRefundCart(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	invoice, err := f.svc.RefundCart(ctx, "till-1", "damaged goods", nil, &SettleInput{})
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceRefunded, invoice.Status)
	assert.Equal(t, "Refund - damaged goods", invoice.Notes)
	assert.Equal(t, -20.0, invoice.SubTotal)
	assert.Equal(t, -3.0, invoice.VATAmount)
	assert.Equal(t, -23.0, invoice.TotalAmount)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, -2.0, invoice.Items[0].Quantity)
	assert.Equal(t, 10.0, invoice.Items[0].UnitPrice)
	assert.Equal(t, -23.0, invoice.Items[0].TotalAmount)
	require.Len(t, invoice.Payments, 1)
	assert.Equal(t, -23.0, invoice.Payments[0].Amount)
	assert.Equal(t, enum.PaymentRefunded, invoice.Payments[0].Status)
}

func TestRefundCartLeavesLiveCartSaleSide(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	f.invoiceRepo.onCreate = func() {
		close(started)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.RefundCart(ctx, "till-1", "damaged goods", nil, &SettleInput{})
		done <- err
	}()

	// the register screen keeps polling while the refund is in flight;
	// it must keep seeing the sale-side cart
	<-started
	view := f.svc.GetCart("till-1")
	assert.Equal(t, 23.0, view.Total)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)

	close(release)
	require.NoError(t, <-done)
}

func TestRefundCartFailureKeepsCartForRetry(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	f.invoiceRepo.failCreate = errors.New("connection reset")
	_, err = f.svc.RefundCart(ctx, "till-1", "damaged goods", nil, &SettleInput{})
	require.Error(t, err)

	// the cart survives the failed attempt with its sale-side amounts
	view := f.svc.GetCart("till-1")
	assert.Equal(t, "failed", view.State)
	assert.Equal(t, 23.0, view.Total)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)

	f.invoiceRepo.failCreate = nil
	invoice, err := f.svc.RefundCart(ctx, "till-1", "damaged goods", nil, &SettleInput{})
	require.NoError(t, err)
	assert.Equal(t, -23.0, invoice.TotalAmount)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, -2.0, invoice.Items[0].Quantity)
}

func TestRefundCartRequiresReason(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	_, err = f.svc.RefundCart(ctx, "till-1", "", nil, &SettleInput{})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 422, appErr.Code)
}

func TestRefundInvoice(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	original, err := f.svc.DirectSale(ctx, "till-1", nil, &SettleInput{})
	require.NoError(t, err)

	refunded, err := f.svc.RefundInvoice(ctx, original.ID, "customer complaint", nil)
	require.NoError(t, err)

	// the invoice itself is flipped, no mirror document is written
	assert.Equal(t, enum.InvoiceRefunded, refunded.Status)
	assert.Equal(t, original.ID, refunded.ID)
	assert.Contains(t, refunded.Notes, "Refund - customer complaint")
	assert.Equal(t, int64(1), f.invoiceRepo.created)

	// every payment carries the audit note and the refunded status
	require.Len(t, f.paymentRepo.updated, 1)
	assert.Equal(t, enum.PaymentRefunded, f.paymentRepo.updated[0].Status)
	assert.Contains(t, f.paymentRepo.updated[0].Notes, "Refund - customer complaint")
}

func TestRefundInvoicePartialFailure(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	invoiceID := uuid.New()
	invoice := &entity.Invoice{
		ID:            invoiceID,
		InvoiceNumber: "SI-000009",
		Status:        enum.InvoicePaid,
		TotalAmount:   23,
		Payments: []entity.Payment{
			{ID: uuid.New(), InvoiceID: invoiceID, Amount: 10, Status: enum.PaymentCompleted},
			{ID: uuid.New(), InvoiceID: invoiceID, Amount: 13, Status: enum.PaymentCompleted},
		},
	}
	f.invoiceRepo.invoices[invoice.ID] = invoice

	// the second flip fails; the first stays refunded
	f.paymentRepo.failUpdateAt = 2
	_, err := f.svc.RefundInvoice(ctx, invoice.ID, "customer complaint", nil)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 502, appErr.Code)
	require.Len(t, f.paymentRepo.updated, 1)
	assert.Equal(t, enum.PaymentRefunded, f.paymentRepo.updated[0].Status)

	// the invoice status is untouched until every payment is flipped
	stored, err := f.invoiceRepo.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoicePaid, stored.Status)

	// a retry skips the already refunded payment and completes
	f.paymentRepo.failUpdateAt = 0
	refunded, err := f.svc.RefundInvoice(ctx, invoice.ID, "customer complaint", nil)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceRefunded, refunded.Status)
	require.Len(t, f.paymentRepo.updated, 2)
}

func TestRefundInvoiceOnlyPaid(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	original, err := f.svc.DirectSale(ctx, "till-1", nil, &SettleInput{})
	require.NoError(t, err)

	refunded, err := f.svc.RefundInvoice(ctx, original.ID, "first", nil)
	require.NoError(t, err)
	require.NotNil(t, refunded)

	// refunding twice is rejected
	_, err = f.svc.RefundInvoice(ctx, original.ID, "second", nil)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestTransfer(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	target := &entity.Invoice{ID: uuid.New(), InvoiceNumber: "SI-000042", Status: enum.InvoicePending}
	f.invoiceRepo.invoices[target.ID] = target

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-1", f.water.ID)
	require.NoError(t, err)

	table := "12"
	invoice, err := f.svc.Transfer(ctx, "till-1", target.ID, &SettleInput{TableNumber: &table})
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceTransferred, invoice.Status)
	assert.Equal(t, "Transferred from POS | Table: 12 | To: SI-000042", invoice.Notes)
	require.NotNil(t, invoice.TableNumber)
	assert.Equal(t, "12", *invoice.TableNumber)

	// header totals survive; per-line derived amounts are zeroed for the
	// receiving ticket to recompute
	assert.Equal(t, 13.5, invoice.TotalAmount)
	for _, item := range invoice.Items {
		assert.Zero(t, item.VATAmount)
		assert.Zero(t, item.TotalAmount)
	}

	// no money moved
	assert.Empty(t, invoice.Payments)

	// the register is free for the next sale
	after := f.svc.GetCart("till-1")
	assert.Empty(t, after.Lines)
	assert.Equal(t, "idle", after.State)
}

func TestTransferRequiresOpenTarget(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	settled := &entity.Invoice{ID: uuid.New(), InvoiceNumber: "SI-000007", Status: enum.InvoicePaid}
	f.invoiceRepo.invoices[settled.ID] = settled

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	_, err = f.svc.Transfer(ctx, "till-1", settled.ID, &SettleInput{})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 422, appErr.Code)

	_, err = f.svc.Transfer(ctx, "till-1", uuid.New(), &SettleInput{})
	require.Error(t, err)

	// nothing was written and the cart survives
	assert.Equal(t, int64(0), f.invoiceRepo.created)
	view := f.svc.GetCart("till-1")
	require.Len(t, view.Lines, 1)
}

func TestConcurrentSettlementRejected(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	f.invoiceRepo.onCreate = func() {
		close(started)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.DirectSale(ctx, "till-1", nil, &SettleInput{})
		done <- err
	}()

	<-started
	_, err = f.svc.DirectSale(ctx, "till-1", nil, &SettleInput{})
	assert.ErrorIs(t, apperror.GetAppError(err), apperror.ErrSettlementInProgress)

	close(release)
	require.NoError(t, <-done)
}

func TestCartMutationBlockedDuringSettlement(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	f.invoiceRepo.onCreate = func() {
		close(started)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.DirectSale(ctx, "till-1", nil, &SettleInput{})
		done <- err
	}()

	<-started
	_, err = f.svc.AddProduct(ctx, "till-1", f.water.ID)
	assert.ErrorIs(t, apperror.GetAppError(err), apperror.ErrSettlementInProgress)

	close(release)
	require.NoError(t, <-done)

	// settlement finished; the register is free again
	_, err = f.svc.AddProduct(ctx, "till-1", f.water.ID)
	assert.NoError(t, err)
}

func TestRegistersAreIsolated(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, "till-2", f.water.ID)
	require.NoError(t, err)

	one := f.svc.GetCart("till-1")
	two := f.svc.GetCart("till-2")
	require.Len(t, one.Lines, 1)
	require.Len(t, two.Lines, 1)
	assert.Equal(t, "Espresso", one.Lines[0].Name)
	assert.Equal(t, "Water", two.Lines[0].Name)
}

func TestAddProductByBarcode(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	barcode := "6281000000001"
	f.espresso.Barcode = &barcode

	view, err := f.svc.AddProductByBarcode(ctx, "till-1", barcode)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Espresso", view.Lines[0].Name)

	_, err = f.svc.AddProductByBarcode(ctx, "till-1", "unknown")
	require.Error(t, err)
}

func TestQRTimestampMatchesIssueDate(t *testing.T) {
	f := newPOSFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProduct(ctx, "till-1", f.espresso.ID)
	require.NoError(t, err)
	invoice, err := f.svc.DirectSale(ctx, "till-1", nil, &SettleInput{})
	require.NoError(t, err)

	qr, err := zatca.Decode(invoice.QRCode)
	require.NoError(t, err)
	assert.WithinDuration(t, invoice.IssueDate, qr.Timestamp, time.Second)
}
