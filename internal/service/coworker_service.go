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

// CoWorkerService handles co-worker directory CRUD.
type CoWorkerService interface {
	Create(ctx context.Context, coworker *model.CoWorker) (*model.CoWorker, error)
	List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.CoWorker, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.CoWorker, error)
	Update(ctx context.Context, coworker *model.CoWorker) (*model.CoWorker, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type coWorkerService struct {
	repo repository.CoWorkerRepository
}

// NewCoWorkerService creates a new co-worker service.
func NewCoWorkerService(repo repository.CoWorkerRepository) CoWorkerService {
	return &coWorkerService{repo: repo}
}

func (s *coWorkerService) Create(ctx context.Context, coworker *model.CoWorker) (*model.CoWorker, error) {
	existing, err := s.repo.FindMatching(ctx, coworker)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check duplicate co-worker: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrDuplicateRecord
	}

	if err := s.repo.Create(ctx, coworker); err != nil {
		return nil, fmt.Errorf("create co-worker: %w", err)
	}
	return coworker, nil
}

func (s *coWorkerService) List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.CoWorker, error) {
	coworkers, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list co-workers: %w", err)
	}
	return coworkers, nil
}

func (s *coWorkerService) Get(ctx context.Context, userID, id uuid.UUID) (*model.CoWorker, error) {
	coworker, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCoWorkerNotFound
		}
		return nil, fmt.Errorf("get co-worker: %w", err)
	}
	return coworker, nil
}

func (s *coWorkerService) Update(ctx context.Context, coworker *model.CoWorker) (*model.CoWorker, error) {
	stored, err := s.repo.FindByID(ctx, coworker.UserID, coworker.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCoWorkerNotFound
		}
		return nil, fmt.Errorf("get co-worker: %w", err)
	}

	coworker.CreatedAt = stored.CreatedAt
	if err := s.repo.Update(ctx, coworker); err != nil {
		return nil, fmt.Errorf("update co-worker: %w", err)
	}
	return coworker, nil
}

func (s *coWorkerService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete co-worker: %w", err)
	}
	if affected == 0 {
		return errors.ErrCoWorkerNotFound
	}
	return nil
}
