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

// ClientService handles client directory CRUD.
type ClientService interface {
	Create(ctx context.Context, client *model.Client) (*model.Client, error)
	List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Client, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Client, error)
	Update(ctx context.Context, client *model.Client) (*model.Client, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type clientService struct {
	repo repository.ClientRepository
}

// NewClientService creates a new client service.
func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) Create(ctx context.Context, client *model.Client) (*model.Client, error) {
	existing, err := s.repo.FindMatching(ctx, client)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check duplicate client: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrDuplicateRecord
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Client, error) {
	clients, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Client, error) {
	client, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrClientNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, client *model.Client) (*model.Client, error) {
	stored, err := s.repo.FindByID(ctx, client.UserID, client.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrClientNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}

	client.CreatedAt = stored.CreatedAt
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if affected == 0 {
		return errors.ErrClientNotFound
	}
	return nil
}
