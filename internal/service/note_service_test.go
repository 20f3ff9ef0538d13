package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ritualplanner/internal/errors"
	"ritualplanner/internal/model"
	"ritualplanner/internal/repository"
)

// MockNoteRepository is a mock implementation of NoteRepository.
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *model.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) Update(ctx context.Context, note *model.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Note, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteRepository) FindMatching(ctx context.Context, probe *model.Note) (*model.Note, error) {
	args := m.Called(ctx, probe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteRepository) List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Note, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNoteRepository) ListDueReminders(ctx context.Context, now time.Time) ([]model.Note, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteRepository) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestNoteService_Create(t *testing.T) {
	userID := uuid.New()
	note := &model.Note{
		UserID:   userID,
		Person:   "Sharma family",
		Work:     "Griha Pravesh",
		NoteText: "confirm date with priest",
		NoteDate: time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
	}

	t.Run("stores a new note", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("FindMatching", mock.Anything, note).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, note).Return(nil)

		service := NewNoteService(mockRepo)
		created, err := service.Create(context.Background(), note)

		assert.NoError(t, err)
		assert.Equal(t, note, created)
		mockRepo.AssertExpectations(t)
	})

	t.Run("identical note is rejected", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("FindMatching", mock.Anything, note).Return(&model.Note{ID: uuid.New()}, nil)

		service := NewNoteService(mockRepo)
		created, err := service.Create(context.Background(), note)

		assert.Equal(t, apperrors.ErrDuplicateRecord, err)
		assert.Nil(t, created)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestNoteService_Get(t *testing.T) {
	userID := uuid.New()
	noteID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, userID, noteID).Return(&model.Note{ID: noteID, UserID: userID}, nil)

		service := NewNoteService(mockRepo)
		note, err := service.Get(context.Background(), userID, noteID)

		assert.NoError(t, err)
		assert.Equal(t, noteID, note.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("FindByID", mock.Anything, userID, noteID).Return(nil, gorm.ErrRecordNotFound)

		service := NewNoteService(mockRepo)
		note, err := service.Get(context.Background(), userID, noteID)

		assert.Equal(t, apperrors.ErrNoteNotFound, err)
		assert.Nil(t, note)
	})
}

func TestNoteService_Update_ReminderRearm(t *testing.T) {
	userID := uuid.New()
	noteID := uuid.New()
	oldReminder := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	newReminder := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		storedReminder   *time.Time
		storedSent       bool
		updateReminder   *time.Time
		expectedSentFlag bool
	}{
		{
			name:             "changed reminder date re-arms the reminder",
			storedReminder:   &oldReminder,
			storedSent:       true,
			updateReminder:   &newReminder,
			expectedSentFlag: false,
		},
		{
			name:             "unchanged reminder date keeps sent flag",
			storedReminder:   &oldReminder,
			storedSent:       true,
			updateReminder:   &oldReminder,
			expectedSentFlag: true,
		},
		{
			name:             "adding a reminder arms it",
			storedReminder:   nil,
			storedSent:       false,
			updateReminder:   &newReminder,
			expectedSentFlag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := &model.Note{
				ID:           noteID,
				UserID:       userID,
				Person:       "Sharma family",
				Work:         "Griha Pravesh",
				NoteDate:     time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
				ReminderDate: tt.storedReminder,
				ReminderSent: tt.storedSent,
				CreatedAt:    time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			}
			update := &model.Note{
				ID:           noteID,
				UserID:       userID,
				Person:       "Sharma family",
				Work:         "Griha Pravesh",
				NoteDate:     stored.NoteDate,
				ReminderDate: tt.updateReminder,
			}

			mockRepo := new(MockNoteRepository)
			mockRepo.On("FindByID", mock.Anything, userID, noteID).Return(stored, nil)
			mockRepo.On("Update", mock.Anything, update).Return(nil)

			service := NewNoteService(mockRepo)
			updated, err := service.Update(context.Background(), update)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSentFlag, updated.ReminderSent)
			assert.Equal(t, stored.CreatedAt, updated.CreatedAt)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Delete(t *testing.T) {
	userID := uuid.New()
	noteID := uuid.New()

	t.Run("removes the note", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("Delete", mock.Anything, userID, noteID).Return(int64(1), nil)

		service := NewNoteService(mockRepo)
		assert.NoError(t, service.Delete(context.Background(), userID, noteID))
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockNoteRepository)
		mockRepo.On("Delete", mock.Anything, userID, noteID).Return(int64(0), nil)

		service := NewNoteService(mockRepo)
		err := service.Delete(context.Background(), userID, noteID)

		assert.Equal(t, apperrors.ErrNoteNotFound, err)
	})
}
