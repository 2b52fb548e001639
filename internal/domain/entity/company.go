package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company holds the seller profile stamped onto every ZATCA invoice QR.
// There is exactly one row per deployment.
type Company struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	NameArabic    string    `gorm:"size:255" json:"name_arabic"`
	VATNumber     string    `gorm:"size:50" json:"vat_number"`
	CRNumber      string    `gorm:"size:50" json:"cr_number"`
	Email         string    `gorm:"size:255" json:"email"`
	Phone         string    `gorm:"size:50" json:"phone"`
	Address       string    `gorm:"type:text" json:"address"`
	AddressArabic string    `gorm:"type:text" json:"address_arabic"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the company profile
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}
