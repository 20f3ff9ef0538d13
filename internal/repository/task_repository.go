package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ritualplanner/internal/model"
)

// TaskRepository defines task persistence operations. Completed and pending
// tasks share one table; list callers filter on the flag.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Task, error)
	FindMatching(ctx context.Context, probe *model.Task) (*model.Task, error)
	List(ctx context.Context, userID uuid.UUID, completed *bool, f ListFilter) ([]model.Task, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (int64, error)
	SetCompleted(ctx context.Context, userID, id uuid.UUID, completed bool) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) FindMatching(ctx context.Context, probe *model.Task) (*model.Task, error) {
	var task model.Task
	q := r.db.WithContext(ctx).Where(&model.Task{
		UserID:    probe.UserID,
		Name:      probe.Name,
		Place:     probe.Place,
		TaskOwner: probe.TaskOwner,
	}).Where("date = ?", probe.Date)
	if err := q.First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, userID uuid.UUID, completed *bool, f ListFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if completed != nil {
		q = q.Where("completed = ?", *completed)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR place LIKE ?", like, like)
	}
	q = dateRange(q, "date", f)

	var tasks []model.Task
	if err := paginate(q, f).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Task{})
	return res.RowsAffected, res.Error
}

func (r *taskRepository) SetCompleted(ctx context.Context, userID, id uuid.UUID, completed bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("completed", completed)
	return res.RowsAffected, res.Error
}
