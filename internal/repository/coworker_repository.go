package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ritualplanner/internal/model"
)

// CoWorkerRepository defines co-worker directory persistence operations.
type CoWorkerRepository interface {
	Create(ctx context.Context, coworker *model.CoWorker) error
	Update(ctx context.Context, coworker *model.CoWorker) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.CoWorker, error)
	FindMatching(ctx context.Context, probe *model.CoWorker) (*model.CoWorker, error)
	List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.CoWorker, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type coWorkerRepository struct {
	db *gorm.DB
}

// NewCoWorkerRepository creates a new co-worker repository.
func NewCoWorkerRepository(db *gorm.DB) CoWorkerRepository {
	return &coWorkerRepository{db: db}
}

func (r *coWorkerRepository) Create(ctx context.Context, coworker *model.CoWorker) error {
	return r.db.WithContext(ctx).Create(coworker).Error
}

func (r *coWorkerRepository) Update(ctx context.Context, coworker *model.CoWorker) error {
	return r.db.WithContext(ctx).Save(coworker).Error
}

func (r *coWorkerRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.CoWorker, error) {
	var coworker model.CoWorker
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&coworker).Error; err != nil {
		return nil, err
	}
	return &coworker, nil
}

func (r *coWorkerRepository) FindMatching(ctx context.Context, probe *model.CoWorker) (*model.CoWorker, error) {
	var coworker model.CoWorker
	q := r.db.WithContext(ctx).Where(&model.CoWorker{
		UserID: probe.UserID,
		Name:   probe.Name,
		Email:  probe.Email,
		Phone:  probe.Phone,
	})
	if err := q.First(&coworker).Error; err != nil {
		return nil, err
	}
	return &coworker, nil
}

func (r *coWorkerRepository) List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.CoWorker, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}

	var coworkers []model.CoWorker
	if err := paginate(q, f).Find(&coworkers).Error; err != nil {
		return nil, err
	}
	return coworkers, nil
}

func (r *coWorkerRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.CoWorker{})
	return res.RowsAffected, res.Error
}
