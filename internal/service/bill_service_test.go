package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ritualplanner/internal/errors"
	"ritualplanner/internal/model"
	"ritualplanner/internal/repository"
)

// MockBillRepository is a mock implementation of BillRepository.
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) Create(ctx context.Context, bill *model.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) Replace(ctx context.Context, bill *model.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Bill, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bill), args.Error(1)
}

func (m *MockBillRepository) FindMatching(ctx context.Context, probe *model.Bill) (*model.Bill, error) {
	args := m.Called(ctx, probe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bill), args.Error(1)
}

func (m *MockBillRepository) List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Bill, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bill), args.Error(1)
}

func (m *MockBillRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestBillTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []model.BillItem
		expected string
	}{
		{
			name:     "empty item list totals zero",
			items:    nil,
			expected: "0",
		},
		{
			name: "single item",
			items: []model.BillItem{
				{Quantity: dec("2"), MarketRate: dec("150"), ExtraCharges: dec("25")},
			},
			expected: "325",
		},
		{
			name: "sum over items with fractional quantities",
			items: []model.BillItem{
				{Quantity: dec("1.5"), MarketRate: dec("100"), ExtraCharges: dec("0")},
				{Quantity: dec("3"), MarketRate: dec("40.50"), ExtraCharges: dec("10")},
			},
			expected: "281.5",
		},
		{
			name: "extra charges only",
			items: []model.BillItem{
				{Quantity: dec("0"), MarketRate: dec("0"), ExtraCharges: dec("500")},
			},
			expected: "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := BillTotal(tt.items)
			assert.True(t, dec(tt.expected).Equal(total), "expected %s, got %s", tt.expected, total)
		})
	}
}

func TestBillService_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("total is computed server side", func(t *testing.T) {
		bill := &model.Bill{
			UserID: userID,
			Name:   "Sharma Griha Pravesh",
			// Client-supplied total is ignored
			TotalAmount: dec("999999"),
			Items: []model.BillItem{
				{ItemName: "Kalash", Quantity: dec("1"), MarketRate: dec("250"), ExtraCharges: dec("0")},
				{ItemName: "Ghee", Quantity: dec("2"), MarketRate: dec("300"), ExtraCharges: dec("20")},
			},
		}

		mockRepo := new(MockBillRepository)
		mockRepo.On("FindMatching", mock.Anything, bill).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, bill).Return(nil)

		service := NewBillService(mockRepo, nil)
		created, err := service.Create(context.Background(), bill)

		assert.NoError(t, err)
		assert.True(t, dec("870").Equal(created.TotalAmount), "got %s", created.TotalAmount)
		assert.Equal(t, model.BillStatusPending, created.PaymentStatus)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate lookup carries the client's status", func(t *testing.T) {
		bill := &model.Bill{
			UserID:        userID,
			Name:          "Sharma Griha Pravesh",
			PaymentStatus: model.BillStatusCompleted,
		}

		mockRepo := new(MockBillRepository)
		mockRepo.On("FindMatching", mock.Anything, mock.MatchedBy(func(probe *model.Bill) bool {
			return probe.PaymentStatus == model.BillStatusCompleted
		})).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, bill).Return(nil)

		service := NewBillService(mockRepo, nil)
		_, err := service.Create(context.Background(), bill)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate bill is rejected", func(t *testing.T) {
		bill := &model.Bill{UserID: userID, Name: "Sharma Griha Pravesh"}

		mockRepo := new(MockBillRepository)
		mockRepo.On("FindMatching", mock.Anything, bill).Return(&model.Bill{ID: uuid.New()}, nil)

		service := NewBillService(mockRepo, nil)
		created, err := service.Create(context.Background(), bill)

		assert.Equal(t, apperrors.ErrDuplicateRecord, err)
		assert.Nil(t, created)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestBillService_Update(t *testing.T) {
	userID := uuid.New()
	billID := uuid.New()

	t.Run("recomputes total and reparents items", func(t *testing.T) {
		stored := &model.Bill{
			ID:            billID,
			UserID:        userID,
			Name:          "Sharma Griha Pravesh",
			PaymentStatus: model.BillStatusPending,
		}
		update := &model.Bill{
			ID:     billID,
			UserID: userID,
			Name:   "Sharma Griha Pravesh",
			Items: []model.BillItem{
				{ItemName: "Kalash", Quantity: dec("1"), MarketRate: dec("250")},
			},
		}

		mockRepo := new(MockBillRepository)
		mockRepo.On("FindByID", mock.Anything, userID, billID).Return(stored, nil)
		mockRepo.On("Replace", mock.Anything, update).Return(nil)

		service := NewBillService(mockRepo, nil)
		updated, err := service.Update(context.Background(), update)

		assert.NoError(t, err)
		assert.True(t, dec("250").Equal(updated.TotalAmount), "got %s", updated.TotalAmount)
		assert.Equal(t, billID, updated.Items[0].BillID)
		assert.Equal(t, model.BillStatusPending, updated.PaymentStatus)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown bill", func(t *testing.T) {
		update := &model.Bill{ID: billID, UserID: userID, Name: "Sharma Griha Pravesh"}

		mockRepo := new(MockBillRepository)
		mockRepo.On("FindByID", mock.Anything, userID, billID).Return(nil, gorm.ErrRecordNotFound)

		service := NewBillService(mockRepo, nil)
		updated, err := service.Update(context.Background(), update)

		assert.Equal(t, apperrors.ErrBillNotFound, err)
		assert.Nil(t, updated)
	})
}

func TestBillService_Delete(t *testing.T) {
	userID := uuid.New()
	billID := uuid.New()

	t.Run("unknown bill", func(t *testing.T) {
		mockRepo := new(MockBillRepository)
		mockRepo.On("Delete", mock.Anything, userID, billID).Return(int64(0), nil)

		service := NewBillService(mockRepo, nil)
		err := service.Delete(context.Background(), userID, billID)

		assert.Equal(t, apperrors.ErrBillNotFound, err)
	})

	t.Run("removes the bill", func(t *testing.T) {
		mockRepo := new(MockBillRepository)
		mockRepo.On("Delete", mock.Anything, userID, billID).Return(int64(1), nil)

		service := NewBillService(mockRepo, nil)
		assert.NoError(t, service.Delete(context.Background(), userID, billID))
	})
}
