package repository

import (
	"context"

	"github.com/bismillahdumoro-svg/zyracafe/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BilliardRepository interface {
	// Tables
	CreateTable(ctx context.Context, t *model.BilliardTable) error
	FindTableByNumber(ctx context.Context, tableNumber string) (*model.BilliardTable, error)
	ListTables(ctx context.Context) ([]model.BilliardTable, error)
	SetTableStatusTx(tx *gorm.DB, tableNumber, status string) error

	// Rentals
	CreateRentalTx(tx *gorm.DB, r *model.BilliardRental) error
	FindRentalByID(ctx context.Context, id uuid.UUID) (*model.BilliardRental, error)
	ListRentals(ctx context.Context) ([]model.BilliardRental, error)
	ListActiveRentals(ctx context.Context) ([]model.BilliardRental, error)
	UpdateRentalTx(tx *gorm.DB, r *model.BilliardRental) error

	DB() *gorm.DB
}

type billiardRepo struct{ db *gorm.DB }

func NewBilliardRepository(db *gorm.DB) BilliardRepository { return &billiardRepo{db: db} }

func (r *billiardRepo) DB() *gorm.DB { return r.db }

func (r *billiardRepo) CreateTable(ctx context.Context, t *model.BilliardTable) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *billiardRepo) FindTableByNumber(ctx context.Context, tableNumber string) (*model.BilliardTable, error) {
	var t model.BilliardTable
	err := r.db.WithContext(ctx).Where("table_number = ?", tableNumber).First(&t).Error
	return &t, err
}

func (r *billiardRepo) ListTables(ctx context.Context) ([]model.BilliardTable, error) {
	var tables []model.BilliardTable
	err := r.db.WithContext(ctx).Order("table_number ASC").Find(&tables).Error
	return tables, err
}

func (r *billiardRepo) SetTableStatusTx(tx *gorm.DB, tableNumber, status string) error {
	return tx.Model(&model.BilliardTable{}).Where("table_number = ?", tableNumber).
		Update("status", status).Error
}

func (r *billiardRepo) CreateRentalTx(tx *gorm.DB, rental *model.BilliardRental) error {
	return tx.Create(rental).Error
}

func (r *billiardRepo) FindRentalByID(ctx context.Context, id uuid.UUID) (*model.BilliardRental, error) {
	var rental model.BilliardRental
	err := r.db.WithContext(ctx).First(&rental, id).Error
	return &rental, err
}

func (r *billiardRepo) ListRentals(ctx context.Context) ([]model.BilliardRental, error) {
	var rentals []model.BilliardRental
	err := r.db.WithContext(ctx).Order("start_time DESC").Find(&rentals).Error
	return rentals, err
}

func (r *billiardRepo) ListActiveRentals(ctx context.Context) ([]model.BilliardRental, error) {
	var rentals []model.BilliardRental
	err := r.db.WithContext(ctx).Where("status = 'active'").
		Order("start_time ASC").Find(&rentals).Error
	return rentals, err
}

func (r *billiardRepo) UpdateRentalTx(tx *gorm.DB, rental *model.BilliardRental) error {
	return tx.Save(rental).Error
}
