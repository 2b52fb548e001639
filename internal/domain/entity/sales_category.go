package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesCategory classifies settled invoices (e.g. dine-in, takeaway, retail).
// Every settlement requires one; the default category is preselected at the POS.
type SalesCategory struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	NameArabic  string         `gorm:"size:255" json:"name_arabic"`
	Code        string         `gorm:"size:50;unique;not null" json:"code"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	IsDefault   bool           `gorm:"default:false" json:"is_default"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sales category
func (s *SalesCategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesCategory model
func (SalesCategory) TableName() string {
	return "sales_categories"
}
