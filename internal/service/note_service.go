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

// NoteService handles note CRUD.
type NoteService interface {
	Create(ctx context.Context, note *model.Note) (*model.Note, error)
	List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Note, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Note, error)
	Update(ctx context.Context, note *model.Note) (*model.Note, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type noteService struct {
	repo repository.NoteRepository
}

// NewNoteService creates a new note service.
func NewNoteService(repo repository.NoteRepository) NoteService {
	return &noteService{repo: repo}
}

// Create stores a note unless an identical one already exists for the user.
func (s *noteService) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	existing, err := s.repo.FindMatching(ctx, note)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check duplicate note: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrDuplicateRecord
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (s *noteService) List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Note, error) {
	notes, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Note, error) {
	note, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

// Update replaces the stored note. Changing the reminder date re-arms the
// reminder.
func (s *noteService) Update(ctx context.Context, note *model.Note) (*model.Note, error) {
	stored, err := s.repo.FindByID(ctx, note.UserID, note.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	note.CreatedAt = stored.CreatedAt
	note.ReminderSent = stored.ReminderSent
	if note.ReminderDate != nil &&
		(stored.ReminderDate == nil || !stored.ReminderDate.Equal(*note.ReminderDate)) {
		note.ReminderSent = false
	}

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if affected == 0 {
		return errors.ErrNoteNotFound
	}
	return nil
}
