package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ritualplanner/internal/model"
)

// ClientRepository defines client directory persistence operations.
type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Client, error)
	FindMatching(ctx context.Context, probe *model.Client) (*model.Client, error)
	List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.Client, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository.
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *clientRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindMatching(ctx context.Context, probe *model.Client) (*model.Client, error) {
	var client model.Client
	q := r.db.WithContext(ctx).Where(&model.Client{
		UserID:      probe.UserID,
		Name:        probe.Name,
		Description: probe.Description,
		Email:       probe.Email,
		Phone:       probe.Phone,
		City:        probe.City,
		State:       probe.State,
		Zipcode:     probe.Zipcode,
	})
	if err := q.First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.Client, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR city LIKE ?", like, like)
	}

	var clients []model.Client
	if err := paginate(q, f).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Client{})
	return res.RowsAffected, res.Error
}
