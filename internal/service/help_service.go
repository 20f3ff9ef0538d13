package service

import (
	"context"
	"fmt"

	"ritualplanner/internal/model"
	"ritualplanner/internal/repository"
)

// HelpService stores support messages.
type HelpService interface {
	Submit(ctx context.Context, msg *model.HelpMessage) error
}

type helpService struct {
	repo repository.HelpMessageRepository
}

// NewHelpService creates a new help service.
func NewHelpService(repo repository.HelpMessageRepository) HelpService {
	return &helpService{repo: repo}
}

func (s *helpService) Submit(ctx context.Context, msg *model.HelpMessage) error {
	if err := s.repo.Create(ctx, msg); err != nil {
		return fmt.Errorf("create help message: %w", err)
	}
	return nil
}
