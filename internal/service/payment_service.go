package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ritualplanner/internal/cache"
	"ritualplanner/internal/errors"
	"ritualplanner/internal/model"
	"ritualplanner/internal/repository"
)

const paymentCacheTTL = 5 * time.Minute

// PaymentService handles payment record CRUD.
type PaymentService interface {
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Payment, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Payment, error)
	Update(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type paymentService struct {
	repo  repository.PaymentRepository
	cache *cache.Client
}

// NewPaymentService creates a new payment service.
func NewPaymentService(repo repository.PaymentRepository, cache *cache.Client) PaymentService {
	return &paymentService{repo: repo, cache: cache}
}

func (s *paymentService) cacheKey(userID, id uuid.UUID) string {
	return fmt.Sprintf("payment:%s:%s", userID, id)
}

func (s *paymentService) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	existing, err := s.repo.FindMatching(ctx, payment)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check duplicate payment: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrDuplicateRecord
	}

	if payment.PaymentStatus == "" {
		payment.PaymentStatus = model.PaymentStatusPending
	}
	// A payment fully covering its total is completed regardless of what the
	// caller sent.
	if payment.PaidAmount.GreaterThanOrEqual(payment.TotalAmount) && payment.TotalAmount.IsPositive() {
		payment.PaymentStatus = model.PaymentStatusCompleted
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Payment, error) {
	payments, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// Get retrieves a payment by ID with read-through caching.
func (s *paymentService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Payment, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID, id)); data != nil {
		var cached model.Payment
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	payment, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}

	if payload, err := json.Marshal(payment); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID, id), payload, paymentCacheTTL)
	}
	return payment, nil
}

func (s *paymentService) Update(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	stored, err := s.repo.FindByID(ctx, payment.UserID, payment.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}

	payment.CreatedAt = stored.CreatedAt
	if payment.PaymentStatus == "" {
		payment.PaymentStatus = stored.PaymentStatus
	}
	if payment.PaidAmount.GreaterThanOrEqual(payment.TotalAmount) && payment.TotalAmount.IsPositive() {
		payment.PaymentStatus = model.PaymentStatusCompleted
	}
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(payment.UserID, payment.ID))
	return payment, nil
}

func (s *paymentService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if affected == 0 {
		return errors.ErrPaymentNotFound
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return nil
}
