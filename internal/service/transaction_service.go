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

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionService interface {
	Create(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	List(ctx context.Context) ([]dto.TransactionResponse, error)
	ListByShift(ctx context.Context, shiftID uuid.UUID) ([]dto.TransactionResponse, error)
}

type transactionService struct {
	repo        repository.TransactionRepository
	shiftRepo   repository.ShiftRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewTransactionService(
	repo repository.TransactionRepository,
	shiftRepo repository.ShiftRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) TransactionService {
	return &transactionService{
		repo:        repo,
		shiftRepo:   shiftRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// ── Create ────────────────────────────────────────────────────────────────────
// One ACID transaction:
//  1. Validate the shift is active
//  2. Resolve products, snapshot name/price, classify each line
//  3. Insert transaction + items, decrement stock per line,
//     accumulate the shift's running totals
//
// The transaction is immutable after commit.

func (s *transactionService) Create(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	shiftID, err := uuid.Parse(req.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("shiftId tidak valid: %w", err)
	}
	cashierID, err := uuid.Parse(req.CashierID)
	if err != nil {
		return nil, fmt.Errorf("cashierId tidak valid: %w", err)
	}

	shift, err := s.shiftRepo.FindByID(ctx, shiftID)
	if err != nil {
		return nil, ErrShiftNotFound
	}
	if shift.Status != "active" {
		return nil, errors.New("shift sudah ditutup")
	}

	// Resolve products and build snapshot lines (pre-flight, outside TX)
	type resolvedItem struct {
		productID uuid.UUID
		name      string
		price     int64
		quantity  int
		subtotal  int64
		itemType  string
	}

	var resolved []resolvedItem
	var subtotal int64
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("productId tidak valid: %w", err)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("produk %s tidak ditemukan", item.ProductID)
		}
		lineSubtotal := p.Price * int64(item.Quantity)
		subtotal += lineSubtotal
		resolved = append(resolved, resolvedItem{
			productID: pid,
			name:      p.Name,
			price:     p.Price,
			quantity:  item.Quantity,
			subtotal:  lineSubtotal,
			itemType:  classifyProduct(p),
		})
	}

	var tax int64 // no tax in this venue
	total := subtotal + tax
	change := req.PaymentAmount - total

	var transaction model.Transaction
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		transaction = model.Transaction{
			ShiftID:       shiftID,
			CashierID:     cashierID,
			CustomerName:  req.CustomerName,
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         total,
			PaymentAmount: req.PaymentAmount,
			Change:        change,
			PaymentMethod: req.PaymentMethod,
		}
		for _, r := range resolved {
			transaction.Items = append(transaction.Items, model.TransactionItem{
				ProductID:   r.productID,
				ProductName: r.name,
				Price:       r.price,
				Quantity:    r.quantity,
				Subtotal:    r.subtotal,
				ItemType:    r.itemType,
			})
		}

		if err := s.repo.Create(ctx, tx, &transaction); err != nil {
			return err
		}

		for _, r := range resolved {
			if err := s.productRepo.AddStockTx(tx, r.productID, -r.quantity); err != nil {
				return fmt.Errorf("gagal mengurangi stok %s: %w", r.name, err)
			}
		}

		return s.shiftRepo.AccumulateTx(tx, shiftID, total)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := s.toResponse(ctx, &transaction)
	return resp, nil
}

func (s *transactionService) List(ctx context.Context) ([]dto.TransactionResponse, error) {
	txs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, txs), nil
}

func (s *transactionService) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]dto.TransactionResponse, error) {
	txs, err := s.repo.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, txs), nil
}

// classifyProduct decides the line's frozen income class at sale time:
// billiard when the product sits in the billiard category or carries the
// legacy table marker in its name.
func classifyProduct(p *model.Product) string {
	if p.Category != nil && strings.EqualFold(p.Category.Name, "Billiard") {
		return "billiard"
	}
	if strings.Contains(strings.ToUpper(p.Name), BilliardMarker) {
		return "billiard"
	}
	return "cafe"
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *transactionService) toResponse(ctx context.Context, t *model.Transaction) *dto.TransactionResponse {
	cashierName := ""
	if t.Cashier != nil {
		cashierName = t.Cashier.Name
	} else if cashier, err := s.userRepo.FindByID(ctx, t.CashierID); err == nil {
		cashierName = cashier.Name
	}

	items := make([]dto.TransactionItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, dto.TransactionItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
			ItemType:    item.ItemType,
		})
	}

	return &dto.TransactionResponse{
		ID:            t.ID.String(),
		ShiftID:       t.ShiftID.String(),
		CashierID:     t.CashierID.String(),
		CashierName:   cashierName,
		CustomerName:  t.CustomerName,
		Items:         items,
		Subtotal:      t.Subtotal,
		Tax:           t.Tax,
		Total:         t.Total,
		PaymentAmount: t.PaymentAmount,
		Change:        t.Change,
		PaymentMethod: t.PaymentMethod,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}

func (s *transactionService) toResponses(ctx context.Context, txs []model.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, *s.toResponse(ctx, &txs[i]))
	}
	return out
}
