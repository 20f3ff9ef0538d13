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

// TaskService handles scheduled task CRUD and completion toggling.
type TaskService interface {
	Create(ctx context.Context, task *model.Task) (*model.Task, error)
	List(ctx context.Context, userID uuid.UUID, completed *bool, f repository.ListFilter) ([]model.Task, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) (*model.Task, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SetCompleted(ctx context.Context, userID, id uuid.UUID, completed bool) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	existing, err := s.repo.FindMatching(ctx, task)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check duplicate task: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrDuplicateRecord
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, userID uuid.UUID, completed *bool, f repository.ListFilter) ([]model.Task, error) {
	tasks, err := s.repo.List(ctx, userID, completed, f)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	stored, err := s.repo.FindByID(ctx, task.UserID, task.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	task.CreatedAt = stored.CreatedAt
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return errors.ErrTaskNotFound
	}
	return nil
}

func (s *taskService) SetCompleted(ctx context.Context, userID, id uuid.UUID, completed bool) error {
	affected, err := s.repo.SetCompleted(ctx, userID, id, completed)
	if err != nil {
		return fmt.Errorf("set task completed: %w", err)
	}
	if affected == 0 {
		return errors.ErrTaskNotFound
	}
	return nil
}
