package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentType represents a payment method (cash, card, bank transfer)
type PaymentType struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	NameArabic string         `gorm:"size:255" json:"name_arabic"`
	Code       string         `gorm:"size:50;unique;not null" json:"code"`
	IsDefault  bool           `gorm:"default:false" json:"is_default"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment type
func (p *PaymentType) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentType model
func (PaymentType) TableName() string {
	return "payment_types"
}
