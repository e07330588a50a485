package repository

import (
	"context"

	"github.com/bismillahdumoro-svg/zyracafe/internal/model"

	"gorm.io/gorm"
)

type StockAdjustmentRepository interface {
	CreateTx(tx *gorm.DB, a *model.StockAdjustment) error
	List(ctx context.Context) ([]model.StockAdjustment, error)
	DB() *gorm.DB
}

type stockAdjustmentRepo struct{ db *gorm.DB }

func NewStockAdjustmentRepository(db *gorm.DB) StockAdjustmentRepository {
	return &stockAdjustmentRepo{db: db}
}

func (r *stockAdjustmentRepo) DB() *gorm.DB { return r.db }

func (r *stockAdjustmentRepo) CreateTx(tx *gorm.DB, a *model.StockAdjustment) error {
	return tx.Create(a).Error
}

func (r *stockAdjustmentRepo) List(ctx context.Context) ([]model.StockAdjustment, error) {
	var adjustments []model.StockAdjustment
	err := r.db.WithContext(ctx).Preload("Product").Preload("AdjustedByUser").
		Order("created_at DESC").Find(&adjustments).Error
	return adjustments, err
}
