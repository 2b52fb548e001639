package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obakr/qayd-api/internal/domain/enum"
)

// Payment represents money received against an invoice. Split settlements
// produce several rows for the same invoice, one per payment type.
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"invoice_id"`
	PaymentTypeID uuid.UUID          `gorm:"type:uuid;not null;index" json:"payment_type_id"`
	Amount        float64            `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate   time.Time          `gorm:"not null;index" json:"payment_date"`
	Reference     *string            `gorm:"size:255" json:"reference,omitempty"`
	Notes         string             `gorm:"type:text" json:"notes"`
	Status        enum.PaymentStatus `gorm:"type:varchar(20);default:completed" json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Invoice     *Invoice     `gorm:"foreignKey:InvoiceID" json:"-"`
	PaymentType *PaymentType `gorm:"foreignKey:PaymentTypeID" json:"payment_type,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
