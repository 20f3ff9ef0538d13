package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Task is a scheduled engagement. Completed tasks stay in the same table with
// the flag set rather than moving to a second collection.
type Task struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	Name      string          `json:"name" gorm:"size:255;not null;index"`
	Date      time.Time       `json:"date" gorm:"not null;index"`
	Self      bool            `json:"self" gorm:"default:true"` // performed personally vs delegated
	Place     string          `json:"place,omitempty" gorm:"size:255"`
	TaskOwner string          `json:"task_owner,omitempty" gorm:"size:255"`
	Money     decimal.Decimal `json:"money" gorm:"type:decimal(20,2);not null;default:0"`
	Completed bool            `json:"completed" gorm:"default:false;index"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
