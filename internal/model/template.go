package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Template is a reusable named checklist of required items for a ritual
// service event.
type Template struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null;index"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User  User           `json:"-" gorm:"foreignKey:UserID"`
	Items []TemplateItem `json:"items" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TemplateItem is one checklist entry of a template.
type TemplateItem struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	TemplateID uuid.UUID       `json:"template_id" gorm:"type:char(36);not null;index"`
	ItemName   string          `json:"itemname" gorm:"size:255;not null"`
	Quantity   decimal.Decimal `json:"quantity" gorm:"type:decimal(20,3);not null;default:0"`
	Unit       string          `json:"unit" gorm:"size:50"`
	Note       string          `json:"note,omitempty" gorm:"type:text"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (i *TemplateItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
