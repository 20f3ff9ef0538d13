package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ritualplanner/internal/model"
)

// TemplateRepository defines ritual template persistence operations. Item
// checklists are stored as child rows and live and die with their template.
type TemplateRepository interface {
	Create(ctx context.Context, template *model.Template) error
	Replace(ctx context.Context, template *model.Template) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Template, error)
	FindMatching(ctx context.Context, probe *model.Template) (*model.Template, error)
	List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.Template, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// Create inserts the template and its items in one transaction.
func (r *templateRepository) Create(ctx context.Context, template *model.Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

// Replace overwrites the template row and swaps its item set atomically.
// Full-replace semantics: the incoming item list is the whole checklist.
func (r *templateRepository) Replace(ctx context.Context, template *model.Template) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", template.ID).Delete(&model.TemplateItem{}).Error; err != nil {
			return err
		}
		return tx.Save(template).Error
	})
}

func (r *templateRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Template, error) {
	var template model.Template
	err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) FindMatching(ctx context.Context, probe *model.Template) (*model.Template, error) {
	var template model.Template
	q := r.db.WithContext(ctx).Where(&model.Template{
		UserID:      probe.UserID,
		Name:        probe.Name,
		Description: probe.Description,
	})
	if err := q.First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.Template, error) {
	q := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID)
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}

	var templates []model.Template
	if err := paginate(q, f).Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Delete removes the template and its items in one transaction. Returns the
// number of template rows removed so callers can distinguish a miss.
func (r *templateRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Template{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("template_id = ?", id).Delete(&model.TemplateItem{}).Error
	})
	return affected, err
}
