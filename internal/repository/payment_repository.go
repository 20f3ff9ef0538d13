package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ritualplanner/internal/model"
)

// PaymentRepository defines payment persistence operations.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	Update(ctx context.Context, payment *model.Payment) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Payment, error)
	FindMatching(ctx context.Context, probe *model.Payment) (*model.Payment, error)
	List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.Payment, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindMatching looks up a payment with the same user-supplied fields, used
// for duplicate suppression on create. Amounts and date are compared with
// explicit conditions since their zero values are meaningful.
func (r *paymentRepository) FindMatching(ctx context.Context, probe *model.Payment) (*model.Payment, error) {
	var payment model.Payment
	q := r.db.WithContext(ctx).
		Where("user_id = ?", probe.UserID).
		Where("total_amount = ?", probe.TotalAmount).
		Where("paid_amount = ?", probe.PaidAmount).
		Where("payment_date = ?", probe.PaymentDate).
		Where("payment_mode = ?", probe.PaymentMode)
	if probe.BillID != nil {
		q = q.Where("bill_id = ?", *probe.BillID)
	}
	if err := q.First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.Payment, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Search != "" {
		q = q.Where("payment_mode LIKE ?", "%"+f.Search+"%")
	}
	q = dateRange(q, "payment_date", f)

	var payments []model.Payment
	if err := paginate(q, f).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Payment{})
	return res.RowsAffected, res.Error
}
