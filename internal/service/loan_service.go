package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bismillahdumoro-svg/zyracafe/internal/dto"
	"github.com/bismillahdumoro-svg/zyracafe/internal/model"
	"github.com/bismillahdumoro-svg/zyracafe/internal/repository"

	"github.com/google/uuid"
)

type LoanService interface {
	Create(ctx context.Context, req dto.CreateLoanRequest) (*dto.LoanResponse, error)
	List(ctx context.Context) ([]dto.LoanResponse, error)
	ListByShift(ctx context.Context, shiftID uuid.UUID) ([]dto.LoanResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	ListExpenses(ctx context.Context) ([]dto.ExpenseResponse, error)
}

type loanService struct {
	repo        repository.LoanRepository
	expenseRepo repository.ExpenseRepository
	shiftRepo   repository.ShiftRepository
}

func NewLoanService(
	repo repository.LoanRepository,
	expenseRepo repository.ExpenseRepository,
	shiftRepo repository.ShiftRepository,
) LoanService {
	return &loanService{repo: repo, expenseRepo: expenseRepo, shiftRepo: shiftRepo}
}

func (s *loanService) Create(ctx context.Context, req dto.CreateLoanRequest) (*dto.LoanResponse, error) {
	shiftID, err := s.activeShift(ctx, req.ShiftID)
	if err != nil {
		return nil, err
	}

	loan := &model.Loan{
		ShiftID:       shiftID,
		Description:   req.Description,
		Amount:        req.Amount,
		RecipientName: req.RecipientName,
	}
	if err := s.repo.Create(ctx, loan); err != nil {
		return nil, err
	}
	return toLoanResponse(loan), nil
}

func (s *loanService) List(ctx context.Context) ([]dto.LoanResponse, error) {
	loans, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toLoanResponses(loans), nil
}

func (s *loanService) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]dto.LoanResponse, error) {
	loans, err := s.repo.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	return toLoanResponses(loans), nil
}

func (s *loanService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *loanService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	shiftID, err := s.activeShift(ctx, req.ShiftID)
	if err != nil {
		return nil, err
	}

	expense := &model.Expense{
		ShiftID:     shiftID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return &dto.ExpenseResponse{
		ID:          expense.ID.String(),
		ShiftID:     expense.ShiftID.String(),
		Description: expense.Description,
		Amount:      expense.Amount,
		Category:    expense.Category,
		CreatedAt:   expense.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *loanService) ListExpenses(ctx context.Context) ([]dto.ExpenseResponse, error) {
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, dto.ExpenseResponse{
			ID:          e.ID.String(),
			ShiftID:     e.ShiftID.String(),
			Description: e.Description,
			Amount:      e.Amount,
			Category:    e.Category,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// activeShift parses and validates that the referenced shift is still open.
// Cash-outs against a closed shift would silently skew its reconciliation.
func (s *loanService) activeShift(ctx context.Context, raw string) (uuid.UUID, error) {
	shiftID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("shiftId tidak valid: %w", err)
	}
	shift, err := s.shiftRepo.FindByID(ctx, shiftID)
	if err != nil {
		return uuid.Nil, ErrShiftNotFound
	}
	if shift.Status != "active" {
		return uuid.Nil, errors.New("shift sudah ditutup")
	}
	return shiftID, nil
}

func toLoanResponse(l *model.Loan) *dto.LoanResponse {
	return &dto.LoanResponse{
		ID:            l.ID.String(),
		ShiftID:       l.ShiftID.String(),
		Description:   l.Description,
		Amount:        l.Amount,
		RecipientName: l.RecipientName,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
	}
}

func toLoanResponses(loans []model.Loan) []dto.LoanResponse {
	out := make([]dto.LoanResponse, 0, len(loans))
	for i := range loans {
		out = append(out, *toLoanResponse(&loans[i]))
	}
	return out
}
