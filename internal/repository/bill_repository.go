package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ritualplanner/internal/model"
)

// BillRepository defines bill persistence operations. Line items are child
// rows replaced wholesale on update and removed with their bill.
type BillRepository interface {
	Create(ctx context.Context, bill *model.Bill) error
	Replace(ctx context.Context, bill *model.Bill) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Bill, error)
	FindMatching(ctx context.Context, probe *model.Bill) (*model.Bill, error)
	List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.Bill, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository.
func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *model.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

// Replace overwrites the bill row and swaps its item set atomically.
func (r *billRepository) Replace(ctx context.Context, bill *model.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&model.BillItem{}).Error; err != nil {
			return err
		}
		return tx.Save(bill).Error
	})
}

func (r *billRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Bill, error) {
	var bill model.Bill
	err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// FindMatching looks up a bill with the same user-supplied header fields,
// used for duplicate suppression on create. Line items are deliberately left
// out of the match: two same-named bills for one user are treated as the same
// bill regardless of item drift.
func (r *billRepository) FindMatching(ctx context.Context, probe *model.Bill) (*model.Bill, error) {
	var bill model.Bill
	q := r.db.WithContext(ctx).Where(&model.Bill{
		UserID:        probe.UserID,
		Name:          probe.Name,
		PaymentStatus: probe.PaymentStatus,
	})
	if probe.TemplateID != nil {
		q = q.Where("template_id = ?", *probe.TemplateID)
	}
	if err := q.First(&bill).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]model.Bill, error) {
	q := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID)
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	q = dateRange(q, "created_at", f)

	var bills []model.Bill
	if err := paginate(q, f).Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Delete removes the bill and its items in one transaction.
func (r *billRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Bill{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("bill_id = ?", id).Delete(&model.BillItem{}).Error
	})
	return affected, err
}
