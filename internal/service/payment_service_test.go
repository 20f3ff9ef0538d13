package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ritualplanner/internal/errors"
	"ritualplanner/internal/model"
	"ritualplanner/internal/repository"
)

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindMatching(ctx context.Context, probe *model.Payment) (*model.Payment, error) {
	args := m.Called(ctx, probe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context, userID uuid.UUID, f repository.ListFilter) ([]model.Payment, error) {
	args := m.Called(ctx, userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestPaymentService_Create_StatusDerivation(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		total          string
		paid           string
		givenStatus    model.PaymentStatus
		expectedStatus model.PaymentStatus
	}{
		{
			name:           "partial payment stays pending",
			total:          "1000",
			paid:           "400",
			expectedStatus: model.PaymentStatusPending,
		},
		{
			name:           "full payment is completed",
			total:          "1000",
			paid:           "1000",
			expectedStatus: model.PaymentStatusCompleted,
		},
		{
			name:           "overpayment is completed",
			total:          "1000",
			paid:           "1200",
			expectedStatus: model.PaymentStatusCompleted,
		},
		{
			name:           "zero total never auto-completes",
			total:          "0",
			paid:           "0",
			expectedStatus: model.PaymentStatusPending,
		},
		{
			name:           "explicit status survives partial payment",
			total:          "1000",
			paid:           "400",
			givenStatus:    model.PaymentStatusCompleted,
			expectedStatus: model.PaymentStatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := &model.Payment{
				UserID:        userID,
				TotalAmount:   dec(tt.total),
				PaidAmount:    dec(tt.paid),
				PaymentStatus: tt.givenStatus,
			}

			mockRepo := new(MockPaymentRepository)
			mockRepo.On("FindMatching", mock.Anything, payment).Return(nil, gorm.ErrRecordNotFound)
			mockRepo.On("Create", mock.Anything, payment).Return(nil)

			service := NewPaymentService(mockRepo, nil)
			created, err := service.Create(context.Background(), payment)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, created.PaymentStatus)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPaymentService_Create_DuplicateSuppression(t *testing.T) {
	userID := uuid.New()
	payment := &model.Payment{
		UserID:      userID,
		TotalAmount: dec("1000"),
		PaidAmount:  dec("400"),
		PaymentMode: "cash",
	}

	mockRepo := new(MockPaymentRepository)
	mockRepo.On("FindMatching", mock.Anything, payment).Return(&model.Payment{ID: uuid.New()}, nil)

	service := NewPaymentService(mockRepo, nil)
	created, err := service.Create(context.Background(), payment)

	assert.Equal(t, apperrors.ErrDuplicateRecord, err)
	assert.Nil(t, created)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentService_Update_StatusFallback(t *testing.T) {
	userID := uuid.New()
	paymentID := uuid.New()

	t.Run("omitted status keeps the stored one", func(t *testing.T) {
		stored := &model.Payment{
			ID:            paymentID,
			UserID:        userID,
			TotalAmount:   dec("1000"),
			PaidAmount:    dec("400"),
			PaymentStatus: model.PaymentStatusPending,
		}
		update := &model.Payment{
			ID:          paymentID,
			UserID:      userID,
			TotalAmount: dec("1000"),
			PaidAmount:  dec("600"),
		}

		mockRepo := new(MockPaymentRepository)
		mockRepo.On("FindByID", mock.Anything, userID, paymentID).Return(stored, nil)
		mockRepo.On("Update", mock.Anything, update).Return(nil)

		service := NewPaymentService(mockRepo, nil)
		updated, err := service.Update(context.Background(), update)

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusPending, updated.PaymentStatus)
		mockRepo.AssertExpectations(t)
	})

	t.Run("full payment still auto-completes", func(t *testing.T) {
		stored := &model.Payment{
			ID:            paymentID,
			UserID:        userID,
			TotalAmount:   dec("1000"),
			PaidAmount:    dec("400"),
			PaymentStatus: model.PaymentStatusPending,
		}
		update := &model.Payment{
			ID:          paymentID,
			UserID:      userID,
			TotalAmount: dec("1000"),
			PaidAmount:  dec("1000"),
		}

		mockRepo := new(MockPaymentRepository)
		mockRepo.On("FindByID", mock.Anything, userID, paymentID).Return(stored, nil)
		mockRepo.On("Update", mock.Anything, update).Return(nil)

		service := NewPaymentService(mockRepo, nil)
		updated, err := service.Update(context.Background(), update)

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, updated.PaymentStatus)
	})
}
