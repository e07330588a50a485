package repository

import (
	"context"

	"github.com/bismillahdumoro-svg/zyracafe/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShiftRepository interface {
	Create(ctx context.Context, s *model.Shift) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Shift, error)
	// FindActiveByCashier returns the cashier's open shift, if any.
	FindActiveByCashier(ctx context.Context, cashierID uuid.UUID) (*model.Shift, error)
	FindActive(ctx context.Context) ([]model.Shift, error)
	List(ctx context.Context) ([]model.Shift, error)
	Update(ctx context.Context, s *model.Shift) error
	// AccumulateTx adds a completed sale to the shift's running totals inside
	// the sale's transaction.
	AccumulateTx(tx *gorm.DB, id uuid.UUID, saleTotal int64) error
	DB() *gorm.DB
}

type shiftRepo struct{ db *gorm.DB }

func NewShiftRepository(db *gorm.DB) ShiftRepository { return &shiftRepo{db: db} }

func (r *shiftRepo) DB() *gorm.DB { return r.db }

func (r *shiftRepo) Create(ctx context.Context, s *model.Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shiftRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	var s model.Shift
	err := r.db.WithContext(ctx).Preload("Cashier").First(&s, id).Error
	return &s, err
}

func (r *shiftRepo) FindActiveByCashier(ctx context.Context, cashierID uuid.UUID) (*model.Shift, error) {
	var s model.Shift
	err := r.db.WithContext(ctx).
		Where("cashier_id = ? AND status = 'active'", cashierID).
		First(&s).Error
	return &s, err
}

func (r *shiftRepo) FindActive(ctx context.Context) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).Preload("Cashier").
		Where("status = 'active'").Order("start_time ASC").Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) List(ctx context.Context) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).Preload("Cashier").Order("start_time DESC").Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) Update(ctx context.Context, s *model.Shift) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *shiftRepo) AccumulateTx(tx *gorm.DB, id uuid.UUID, saleTotal int64) error {
	return tx.Model(&model.Shift{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_sales":        gorm.Expr("total_sales + ?", saleTotal),
			"total_transactions": gorm.Expr("total_transactions + 1"),
		}).Error
}
