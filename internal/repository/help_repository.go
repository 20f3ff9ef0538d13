package repository

import (
	"context"

	"gorm.io/gorm"

	"ritualplanner/internal/model"
)

// HelpMessageRepository persists support messages.
type HelpMessageRepository interface {
	Create(ctx context.Context, msg *model.HelpMessage) error
}

type helpMessageRepository struct {
	db *gorm.DB
}

// NewHelpMessageRepository creates a new help message repository.
func NewHelpMessageRepository(db *gorm.DB) HelpMessageRepository {
	return &helpMessageRepository{db: db}
}

func (r *helpMessageRepository) Create(ctx context.Context, msg *model.HelpMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}
