package repository

import (
	"context"

	"github.com/bismillahdumoro-svg/zyracafe/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *model.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context) ([]model.Transaction, error)
	ListByShift(ctx context.Context, shiftID uuid.UUID) ([]model.Transaction, error)
	DB() *gorm.DB
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository { return &transactionRepo{db: db} }

func (r *transactionRepo) DB() *gorm.DB { return r.db }

func (r *transactionRepo) Create(ctx context.Context, tx *gorm.DB, t *model.Transaction) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).Preload("Items").Preload("Cashier").First(&t, id).Error
	return &t, err
}

func (r *transactionRepo) List(ctx context.Context) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.WithContext(ctx).Preload("Items").Preload("Cashier").
		Order("created_at DESC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.WithContext(ctx).Preload("Items").Preload("Cashier").
		Where("shift_id = ?", shiftID).Order("created_at ASC").Find(&txs).Error
	return txs, err
}
