package repository

import (
	"context"

	"github.com/bismillahdumoro-svg/zyracafe/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoanRepository interface {
	Create(ctx context.Context, l *model.Loan) error
	List(ctx context.Context) ([]model.Loan, error)
	ListByShift(ctx context.Context, shiftID uuid.UUID) ([]model.Loan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type loanRepo struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) LoanRepository { return &loanRepo{db: db} }

func (r *loanRepo) Create(ctx context.Context, l *model.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *loanRepo) List(ctx context.Context) ([]model.Loan, error) {
	var loans []model.Loan
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&loans).Error
	return loans, err
}

func (r *loanRepo) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]model.Loan, error) {
	var loans []model.Loan
	err := r.db.WithContext(ctx).Where("shift_id = ?", shiftID).
		Order("created_at ASC").Find(&loans).Error
	return loans, err
}

func (r *loanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Loan{}, id).Error
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	List(ctx context.Context) ([]model.Expense, error)
	ListByShift(ctx context.Context, shiftID uuid.UUID) ([]model.Expense, error)
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) List(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).Where("shift_id = ?", shiftID).
		Order("created_at ASC").Find(&expenses).Error
	return expenses, err
}
