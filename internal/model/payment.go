package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus represents the settlement state of a payment record.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

// Payment tracks money received against a bill. BillID is a soft reference;
// a payment survives deletion of its bill.
type Payment struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	BillID        *uuid.UUID      `json:"bill_id,omitempty" gorm:"type:char(36);index"`
	TotalAmount   decimal.Decimal `json:"totalamount" gorm:"type:decimal(20,2);not null;default:0"`
	PaidAmount    decimal.Decimal `json:"paidamount" gorm:"type:decimal(20,2);not null;default:0"`
	PaymentDate   time.Time       `json:"paymentdate" gorm:"not null;index"`
	PaymentMode   string          `json:"paymentmode" gorm:"size:50"`
	PaymentStatus PaymentStatus   `json:"paymentstatus" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
