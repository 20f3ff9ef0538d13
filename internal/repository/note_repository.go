package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ritualplanner/internal/model"
)

// NoteRepository defines note persistence operations. Every query except the
// reminder sweep is scoped to the owning user.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	Update(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Note, error)
	FindMatching(ctx context.Context, probe *model.Note) (*model.Note, error)
	List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.Note, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (int64, error)
	ListDueReminders(ctx context.Context, now time.Time) ([]model.Note, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *noteRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// FindMatching looks up a note with the same user-supplied fields, used for
// duplicate suppression on create. Struct conditions skip zero values, which
// matches "all provided fields".
func (r *noteRepository) FindMatching(ctx context.Context, probe *model.Note) (*model.Note, error) {
	var note model.Note
	q := r.db.WithContext(ctx).Where(&model.Note{
		UserID:   probe.UserID,
		Person:   probe.Person,
		Work:     probe.Work,
		NoteText: probe.NoteText,
	}).Where("note_date = ?", probe.NoteDate)
	if err := q.First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.Note, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("person LIKE ? OR work LIKE ?", like, like)
	}
	q = dateRange(q, "note_date", f)

	var notes []model.Note
	if err := paginate(q, f).Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Note{})
	return res.RowsAffected, res.Error
}

// ListDueReminders returns notes across all users whose reminder date has
// passed and which have not been mailed yet.
func (r *noteRepository) ListDueReminders(ctx context.Context, now time.Time) ([]model.Note, error) {
	var notes []model.Note
	err := r.db.WithContext(ctx).
		Where("reminder_date IS NOT NULL AND reminder_date <= ? AND reminder_sent = ?", now, false).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Note{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
}
