package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obakr/qayd-api/internal/domain/enum"
)

// Invoice represents a sales invoice produced by settling a cart.
// Money fields are stored as decimal(12,2); arithmetic happens in the
// cart package before the invoice is assembled.
type Invoice struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber   string             `gorm:"size:50;unique;not null" json:"invoice_number"`
	CustomerID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	SalesCategoryID uuid.UUID          `gorm:"type:uuid;not null;index" json:"sales_category_id"`
	UserID          *uuid.UUID         `gorm:"type:uuid;index" json:"user_id,omitempty"`
	TableNumber     *string            `gorm:"size:50" json:"table_number,omitempty"`
	IssueDate       time.Time          `gorm:"not null;index" json:"issue_date"`
	SubTotal        float64            `gorm:"type:decimal(12,2);not null" json:"sub_total"`
	VATAmount       float64            `gorm:"type:decimal(12,2);not null" json:"vat_amount"`
	TotalAmount     float64            `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status          enum.InvoiceStatus `gorm:"type:varchar(20);default:pending" json:"status"`
	Notes           string             `gorm:"type:text" json:"notes"`
	QRCode          string             `gorm:"type:text" json:"qr_code"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer      *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	SalesCategory *SalesCategory `gorm:"foreignKey:SalesCategoryID" json:"sales_category,omitempty"`
	User          *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items         []InvoiceItem  `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Payments      []Payment      `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "sales_invoices"
}

// PaidAmount sums the completed payments recorded against the invoice
func (i *Invoice) PaidAmount() float64 {
	var paid float64
	for _, p := range i.Payments {
		if p.Status == enum.PaymentCompleted {
			paid += p.Amount
		}
	}
	return paid
}

// InvoiceItem is a single line on an invoice. Unit price and VAT rate are
// frozen at settlement time so later catalog edits do not rewrite history.
type InvoiceItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductName string     `gorm:"size:255;not null" json:"product_name"`
	NameArabic  string     `gorm:"size:255" json:"name_arabic"`
	Quantity    float64    `gorm:"type:decimal(10,3);not null" json:"quantity"`
	UnitPrice   float64    `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	VATRate     float64    `gorm:"type:decimal(5,2);not null" json:"vat_rate"`
	VATAmount   float64    `gorm:"type:decimal(12,2);not null" json:"vat_amount"`
	TotalAmount float64    `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "sales_invoice_items"
}
