package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bismillahdumoro-svg/zyracafe/internal/dto"
	"github.com/bismillahdumoro-svg/zyracafe/internal/model"
	"github.com/bismillahdumoro-svg/zyracafe/internal/repository"
	"github.com/bismillahdumoro-svg/zyracafe/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BilliardMarker is the legacy naming convention for table-time products
// ("MEJA 1", "MEJA 2", ...). New sale lines carry an explicit ItemType;
// the marker only classifies rows created before that column existed.
const BilliardMarker = "MEJA"

var ErrShiftNotFound = errors.New("shift tidak ditemukan")

type ShiftService interface {
	Start(ctx context.Context, req dto.StartShiftRequest) (*dto.ShiftResponse, error)
	End(ctx context.Context, id uuid.UUID, req dto.EndShiftRequest) (*dto.ShiftResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ShiftResponse, error)
	Active(ctx context.Context) ([]dto.ShiftResponse, error)
	List(ctx context.Context) ([]dto.ShiftResponse, error)
	// Summary recomputes the full income breakdown for a shift on demand.
	// Read-only, no cached aggregates, no partial results on failure.
	Summary(ctx context.Context, id uuid.UUID) (*dto.ShiftSummaryResponse, error)
}

type shiftService struct {
	repo       repository.ShiftRepository
	txRepo     repository.TransactionRepository
	loanRepo   repository.LoanRepository
	userRepo   repository.UserRepository
	dispatcher *worker.Dispatcher
}

func NewShiftService(
	repo repository.ShiftRepository,
	txRepo repository.TransactionRepository,
	loanRepo repository.LoanRepository,
	userRepo repository.UserRepository,
	dispatcher *worker.Dispatcher,
) ShiftService {
	return &shiftService{
		repo:       repo,
		txRepo:     txRepo,
		loanRepo:   loanRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

// ── Start ─────────────────────────────────────────────────────────────────────
// At most one active shift per cashier.

func (s *shiftService) Start(ctx context.Context, req dto.StartShiftRequest) (*dto.ShiftResponse, error) {
	cashierID, err := uuid.Parse(req.CashierID)
	if err != nil {
		return nil, fmt.Errorf("cashierId tidak valid: %w", err)
	}

	if existing, err := s.repo.FindActiveByCashier(ctx, cashierID); err == nil && existing != nil {
		return nil, errors.New("kasir masih memiliki shift aktif")
	}

	shift := &model.Shift{
		CashierID:    cashierID,
		StartTime:    time.Now(),
		StartingCash: req.StartingCash,
		Status:       "active",
	}
	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, shift), nil
}

// ── End ───────────────────────────────────────────────────────────────────────
// Stamps end time and flips status to closed — irreversible. Enqueues the
// shift-close report job (best effort, fire & forget).

func (s *shiftService) End(ctx context.Context, id uuid.UUID, req dto.EndShiftRequest) (*dto.ShiftResponse, error) {
	shift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrShiftNotFound
	}
	if shift.Status != "active" {
		return nil, errors.New("shift sudah ditutup")
	}

	now := time.Now()
	endingCash := req.EndingCash
	shift.EndTime = &now
	shift.EndingCash = &endingCash
	shift.Status = "closed"

	if err := s.repo.Update(ctx, shift); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueShiftReport(ctx, map[string]interface{}{
			"shift_id": shift.ID.String(),
		})
	}

	return s.toResponse(ctx, shift), nil
}

func (s *shiftService) Get(ctx context.Context, id uuid.UUID) (*dto.ShiftResponse, error) {
	shift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrShiftNotFound
	}
	return s.toResponse(ctx, shift), nil
}

func (s *shiftService) Active(ctx context.Context) ([]dto.ShiftResponse, error) {
	shifts, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, shifts), nil
}

func (s *shiftService) List(ctx context.Context) ([]dto.ShiftResponse, error) {
	shifts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, shifts), nil
}

// ── Summary ───────────────────────────────────────────────────────────────────
// Walks every transaction line of the shift, splits income into billiard vs
// cafe, subtracts the shift's loans, and returns the full breakdown.

func (s *shiftService) Summary(ctx context.Context, id uuid.UUID) (*dto.ShiftSummaryResponse, error) {
	shift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrShiftNotFound
	}

	transactions, err := s.txRepo.ListByShift(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil summary shift: %w", err)
	}
	loans, err := s.loanRepo.ListByShift(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil summary shift: %w", err)
	}

	var (
		billiardIncome, cafeIncome int64
		billiardCount, cafeCount   int
	)
	for _, tx := range transactions {
		for _, item := range tx.Items {
			if isBilliardItem(item) {
				billiardIncome += item.Subtotal
				billiardCount++
			} else {
				cafeIncome += item.Subtotal
				cafeCount++
			}
		}
	}

	var totalExpenses int64
	expenses := make([]dto.ExpenseLine, 0, len(loans))
	for _, loan := range loans {
		totalExpenses += loan.Amount
		expenses = append(expenses, dto.ExpenseLine{
			Description:   loan.Description,
			Amount:        loan.Amount,
			RecipientName: loan.RecipientName,
		})
	}

	totalIncome := billiardIncome + cafeIncome
	finalTotal := totalIncome - totalExpenses
	billiardPct, cafePct := incomeSplit(billiardIncome, cafeIncome, totalIncome)

	return &dto.ShiftSummaryResponse{
		Shift: *s.toResponse(ctx, shift),
		Summary: dto.ShiftSummary{
			TotalIncome:          totalIncome,
			BilliardIncome:       billiardIncome,
			BilliardTransactions: billiardCount,
			CafeIncome:           cafeIncome,
			CafeTransactions:     cafeCount,
			TotalTransactions:    len(transactions),
			Expenses:             expenses,
			TotalExpenses:        totalExpenses,
			FinalTotal:           finalTotal,
			BilliardPct:          billiardPct,
			CafePct:              cafePct,
		},
	}, nil
}

// isBilliardItem classifies a sale line. The ItemType captured at sale time
// is authoritative; rows predating that column fall back to the table-name
// marker.
func isBilliardItem(item model.TransactionItem) bool {
	switch item.ItemType {
	case "billiard":
		return true
	case "cafe":
		return false
	default:
		return strings.Contains(strings.ToUpper(item.ProductName), BilliardMarker)
	}
}

// incomeSplit returns the percentage share of each class, rounded to two
// decimals. A zero total yields "0"/"0" — never a division by zero.
func incomeSplit(billiard, cafe, total int64) (billiardPct, cafePct string) {
	if total == 0 {
		return "0", "0"
	}
	d := decimal.NewFromInt(total)
	hundred := decimal.NewFromInt(100)
	b := decimal.NewFromInt(billiard).Mul(hundred).Div(d).Round(2)
	c := decimal.NewFromInt(cafe).Mul(hundred).Div(d).Round(2)
	return b.String(), c.String()
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *shiftService) toResponse(ctx context.Context, shift *model.Shift) *dto.ShiftResponse {
	cashierName := ""
	if shift.Cashier != nil {
		cashierName = shift.Cashier.Name
	} else if cashier, err := s.userRepo.FindByID(ctx, shift.CashierID); err == nil {
		cashierName = cashier.Name
	}

	resp := &dto.ShiftResponse{
		ID:                shift.ID.String(),
		CashierID:         shift.CashierID.String(),
		CashierName:       cashierName,
		StartTime:         shift.StartTime.Format(time.RFC3339),
		StartingCash:      shift.StartingCash,
		EndingCash:        shift.EndingCash,
		TotalSales:        shift.TotalSales,
		TotalTransactions: shift.TotalTransactions,
		Status:            shift.Status,
	}
	if shift.EndTime != nil {
		t := shift.EndTime.Format(time.RFC3339)
		resp.EndTime = &t
	}
	return resp
}

func (s *shiftService) toResponses(ctx context.Context, shifts []model.Shift) []dto.ShiftResponse {
	out := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		out = append(out, *s.toResponse(ctx, &shifts[i]))
	}
	return out
}
