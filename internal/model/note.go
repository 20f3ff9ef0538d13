package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is a dated memo about a person and a piece of work, optionally with a
// future reminder date. ReminderSent flips once the reminder sweep has mailed
// the owner, so a note is never reminded twice.
type Note struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID  `json:"user_id" gorm:"type:char(36);not null;index"`
	Person       string     `json:"person" gorm:"size:255;not null;index"`
	Work         string     `json:"work" gorm:"size:255;not null"`
	NoteText     string     `json:"note_text" gorm:"type:text"`
	NoteDate     time.Time  `json:"note_date" gorm:"not null;index"`
	ReminderDate *time.Time `json:"reminder_date,omitempty" gorm:"index"`
	ReminderSent bool       `json:"reminder_sent" gorm:"default:false;index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
