package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ritualplanner/internal/errors"
	"ritualplanner/internal/model"
	"ritualplanner/internal/repository"
)

// TemplateService handles ritual template CRUD. Item checklists follow
// full-replace semantics on update.
type TemplateService interface {
	Create(ctx context.Context, template *model.Template) (*model.Template, error)
	List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Template, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Template, error)
	Update(ctx context.Context, template *model.Template) (*model.Template, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type templateService struct {
	repo repository.TemplateRepository
}

// NewTemplateService creates a new template service.
func NewTemplateService(repo repository.TemplateRepository) TemplateService {
	return &templateService{repo: repo}
}

func (s *templateService) Create(ctx context.Context, template *model.Template) (*model.Template, error) {
	existing, err := s.repo.FindMatching(ctx, template)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check duplicate template: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrDuplicateRecord
	}

	if err := s.repo.Create(ctx, template); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return template, nil
}

func (s *templateService) List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Template, error) {
	templates, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func (s *templateService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Template, error) {
	template, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return template, nil
}

func (s *templateService) Update(ctx context.Context, template *model.Template) (*model.Template, error) {
	stored, err := s.repo.FindByID(ctx, template.UserID, template.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("get template: %w", err)
	}

	template.CreatedAt = stored.CreatedAt
	for i := range template.Items {
		template.Items[i].TemplateID = template.ID
	}
	if err := s.repo.Replace(ctx, template); err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	return template, nil
}

// Delete removes the template and its checklist. Bills referencing it keep
// their soft template_id reference.
func (s *templateService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if affected == 0 {
		return errors.ErrTemplateNotFound
	}
	return nil
}
