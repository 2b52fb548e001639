package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable item in the catalog
type Product struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	NameArabic string         `gorm:"size:255" json:"name_arabic"`
	Slug       string         `gorm:"size:255;unique;not null" json:"slug"`
	SKU        *string        `gorm:"size:100" json:"sku,omitempty"`
	Barcode    *string        `gorm:"size:100;index" json:"barcode,omitempty"`
	CategoryID *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	UnitPrice  float64        `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	VATRate    float64        `gorm:"type:decimal(5,2);not null" json:"vat_rate"`
	Unit       string         `gorm:"size:50;default:pcs" json:"unit"`
	Color      *string        `gorm:"size:20" json:"color,omitempty"`
	ImageURL   *string        `gorm:"size:512" json:"image_url,omitempty"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
