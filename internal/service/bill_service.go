package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ritualplanner/internal/cache"
	"ritualplanner/internal/errors"
	"ritualplanner/internal/model"
	"ritualplanner/internal/repository"
)

const billCacheTTL = 5 * time.Minute

// BillTotal returns the bill total for a set of line items:
// Σ(quantity×marketrate + extracharges). An empty set totals zero.
func BillTotal(items []model.BillItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Total())
	}
	return total
}

// BillService handles bill CRUD. Totals are authoritative on the server and
// recomputed from line items on every write.
type BillService interface {
	Create(ctx context.Context, bill *model.Bill) (*model.Bill, error)
	List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Bill, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Bill, error)
	Update(ctx context.Context, bill *model.Bill) (*model.Bill, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type billService struct {
	repo  repository.BillRepository
	cache *cache.Client
}

// NewBillService creates a new bill service.
func NewBillService(repo repository.BillRepository, cache *cache.Client) BillService {
	return &billService{repo: repo, cache: cache}
}

func (s *billService) cacheKey(userID, id uuid.UUID) string {
	return fmt.Sprintf("bill:%s:%s", userID, id)
}

func (s *billService) Create(ctx context.Context, bill *model.Bill) (*model.Bill, error) {
	existing, err := s.repo.FindMatching(ctx, bill)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check duplicate bill: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrDuplicateRecord
	}

	bill.TotalAmount = BillTotal(bill.Items)
	if bill.PaymentStatus == "" {
		bill.PaymentStatus = model.BillStatusPending
	}
	if err := s.repo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	return bill, nil
}

func (s *billService) List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Bill, error) {
	bills, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

// Get retrieves a bill by ID with read-through caching.
func (s *billService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Bill, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID, id)); data != nil {
		var cached model.Bill
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	bill, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBillNotFound
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}

	if payload, err := json.Marshal(bill); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID, id), payload, billCacheTTL)
	}
	return bill, nil
}

func (s *billService) Update(ctx context.Context, bill *model.Bill) (*model.Bill, error) {
	stored, err := s.repo.FindByID(ctx, bill.UserID, bill.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBillNotFound
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}

	bill.CreatedAt = stored.CreatedAt
	for i := range bill.Items {
		bill.Items[i].BillID = bill.ID
	}
	bill.TotalAmount = BillTotal(bill.Items)
	if bill.PaymentStatus == "" {
		bill.PaymentStatus = stored.PaymentStatus
	}

	if err := s.repo.Replace(ctx, bill); err != nil {
		return nil, fmt.Errorf("update bill: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(bill.UserID, bill.ID))
	return bill, nil
}

func (s *billService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if affected == 0 {
		return errors.ErrBillNotFound
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return nil
}
