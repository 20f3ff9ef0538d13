package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillStatus represents the payment status of a bill.
type BillStatus string

const (
	BillStatusPending   BillStatus = "PENDING"
	BillStatusCompleted BillStatus = "COMPLETED"
)

// Bill is an invoice for a service event, optionally derived from a ritual
// template. TotalAmount is always recomputed from the line items on the
// server; client-supplied totals are ignored.
type Bill struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	Name          string          `json:"name" gorm:"size:255;not null;index"`
	TemplateID    *uuid.UUID      `json:"template_id,omitempty" gorm:"type:char(36);index"`
	TotalAmount   decimal.Decimal `json:"totalamount" gorm:"type:decimal(20,2);not null;default:0"`
	PaymentStatus BillStatus      `json:"paymentstatus" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations
	User  User       `json:"-" gorm:"foreignKey:UserID"`
	Items []BillItem `json:"items" gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BillItem is one line of a bill. Its total is Quantity×MarketRate plus
// ExtraCharges.
type BillItem struct {
	ID           uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	BillID       uuid.UUID       `json:"bill_id" gorm:"type:char(36);not null;index"`
	ItemName     string          `json:"itemname" gorm:"size:255;not null"`
	Quantity     decimal.Decimal `json:"quantity" gorm:"type:decimal(20,3);not null;default:0"`
	Unit         string          `json:"unit" gorm:"size:50"`
	MarketRate   decimal.Decimal `json:"marketrate" gorm:"type:decimal(20,2);not null;default:0"`
	ExtraCharges decimal.Decimal `json:"extracharges" gorm:"type:decimal(20,2);not null;default:0"`
	Note         string          `json:"note,omitempty" gorm:"type:text"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (i *BillItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Total returns Quantity×MarketRate + ExtraCharges for this line.
func (i *BillItem) Total() decimal.Decimal {
	return i.Quantity.Mul(i.MarketRate).Add(i.ExtraCharges)
}
