package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ritualplanner/internal/errors"
	"ritualplanner/internal/model"
	"ritualplanner/internal/repository"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) FindMatching(ctx context.Context, probe *model.Task) (*model.Task, error) {
	args := m.Called(ctx, probe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, userID uuid.UUID, completed *bool, f repository.ListFilter) ([]model.Task, error) {
	args := m.Called(ctx, userID, completed, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) SetCompleted(ctx context.Context, userID, id uuid.UUID, completed bool) (int64, error) {
	args := m.Called(ctx, userID, id, completed)
	return args.Get(0).(int64), args.Error(1)
}

func TestTaskService_SetCompleted(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	t.Run("marks the task completed", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("SetCompleted", mock.Anything, userID, taskID, true).Return(int64(1), nil)

		service := NewTaskService(mockRepo)
		assert.NoError(t, service.SetCompleted(context.Background(), userID, taskID, true))
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown task", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("SetCompleted", mock.Anything, userID, taskID, true).Return(int64(0), nil)

		service := NewTaskService(mockRepo)
		err := service.SetCompleted(context.Background(), userID, taskID, true)

		assert.Equal(t, apperrors.ErrTaskNotFound, err)
	})

	t.Run("reopening a task", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("SetCompleted", mock.Anything, userID, taskID, false).Return(int64(1), nil)

		service := NewTaskService(mockRepo)
		assert.NoError(t, service.SetCompleted(context.Background(), userID, taskID, false))
	})
}

func TestTaskService_Create(t *testing.T) {
	userID := uuid.New()
	task := &model.Task{UserID: userID, Name: "Collect samagri", Place: "Market"}

	t.Run("duplicate task is rejected", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindMatching", mock.Anything, task).Return(&model.Task{ID: uuid.New()}, nil)

		service := NewTaskService(mockRepo)
		created, err := service.Create(context.Background(), task)

		assert.Equal(t, apperrors.ErrDuplicateRecord, err)
		assert.Nil(t, created)
	})

	t.Run("stores a new task", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindMatching", mock.Anything, task).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, task).Return(nil)

		service := NewTaskService(mockRepo)
		created, err := service.Create(context.Background(), task)

		assert.NoError(t, err)
		assert.Equal(t, task, created)
	})
}
