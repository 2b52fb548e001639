package request

import "github.com/google/uuid"

// AddProductRequest adds a product to the register cart
type AddProductRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// AddByBarcodeRequest adds a product to the cart by its barcode
type AddByBarcodeRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// UpdateQuantityRequest sets the quantity on a cart line. A quantity of
// zero removes the line.
type UpdateQuantityRequest struct {
	Index    int `json:"index" binding:"min=0"`
	Quantity int `json:"quantity" binding:"min=0"`
}

// RemoveLineRequest removes a cart line by index
type RemoveLineRequest struct {
	Index int `json:"index" binding:"min=0"`
}

// AddPaymentEntryRequest adds a tender to a pending split settlement
type AddPaymentEntryRequest struct {
	PaymentTypeID uuid.UUID `json:"payment_type_id" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
}

// RemovePaymentEntryRequest removes a pending tender by index
type RemovePaymentEntryRequest struct {
	Index int `json:"index" binding:"min=0"`
}

// SettleRequest carries the optional settlement context shared by the
// direct sale, split settle, refund and transfer endpoints
type SettleRequest struct {
	CustomerID      *uuid.UUID `json:"customer_id"`
	SalesCategoryID *uuid.UUID `json:"sales_category_id"`
	PaymentTypeID   *uuid.UUID `json:"payment_type_id"`
	Notes           string     `json:"notes" binding:"omitempty,max=1000"`
}

// RefundCartRequest settles the current cart as a refund
type RefundCartRequest struct {
	SettleRequest
	Reason string `json:"reason" binding:"required,max=500"`
}

// RefundInvoiceRequest refunds a previously settled invoice in full
type RefundInvoiceRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// TransferRequest moves the current cart onto an open invoice
type TransferRequest struct {
	SettleRequest
	TargetInvoiceID uuid.UUID `json:"target_invoice_id" binding:"required"`
	TableNumber     string    `json:"table_number" binding:"omitempty,max=50"`
}
