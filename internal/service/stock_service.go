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
	"gorm.io/gorm"
)

var ErrNegativeStock = errors.New("stok tidak boleh negatif")

type StockService interface {
	// CreateAdjustment is the only sanctioned stock change outside of a sale.
	CreateAdjustment(ctx context.Context, req dto.CreateStockAdjustmentRequest) (*dto.StockAdjustmentResponse, error)
	List(ctx context.Context) ([]dto.StockAdjustmentResponse, error)
}

type stockService struct {
	repo        repository.StockAdjustmentRepository
	productRepo repository.ProductRepository
}

func NewStockService(repo repository.StockAdjustmentRepository, productRepo repository.ProductRepository) StockService {
	return &stockService{repo: repo, productRepo: productRepo}
}

// CreateAdjustment validates newStock = previousStock + adjustment >= 0,
// then writes the audit record and the new stock value in one transaction.
func (s *stockService) CreateAdjustment(ctx context.Context, req dto.CreateStockAdjustmentRequest) (*dto.StockAdjustmentResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("productId tidak valid: %w", err)
	}
	adjustedBy, err := uuid.Parse(req.AdjustedBy)
	if err != nil {
		return nil, fmt.Errorf("adjustedBy tidak valid: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.New("produk tidak ditemukan")
	}

	previousStock := product.Stock
	newStock := previousStock + req.Adjustment
	if newStock < 0 {
		return nil, ErrNegativeStock
	}

	adjustment := &model.StockAdjustment{
		ProductID:     productID,
		PreviousStock: previousStock,
		NewStock:      newStock,
		Adjustment:    req.Adjustment,
		Reason:        req.Reason,
		AdjustedBy:    adjustedBy,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, adjustment); err != nil {
			return err
		}
		return s.productRepo.SetStockTx(tx, productID, newStock)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := toAdjustmentResponse(adjustment)
	resp.ProductName = product.Name
	return resp, nil
}

func (s *stockService) List(ctx context.Context) ([]dto.StockAdjustmentResponse, error) {
	adjustments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAdjustmentResponse, 0, len(adjustments))
	for i := range adjustments {
		a := &adjustments[i]
		resp := toAdjustmentResponse(a)
		if a.Product != nil {
			resp.ProductName = a.Product.Name
		}
		if a.AdjustedByUser != nil {
			resp.AdjustedByName = a.AdjustedByUser.Name
		}
		out = append(out, *resp)
	}
	return out, nil
}

func toAdjustmentResponse(a *model.StockAdjustment) *dto.StockAdjustmentResponse {
	return &dto.StockAdjustmentResponse{
		ID:            a.ID.String(),
		ProductID:     a.ProductID.String(),
		PreviousStock: a.PreviousStock,
		NewStock:      a.NewStock,
		Adjustment:    a.Adjustment,
		Reason:        a.Reason,
		AdjustedBy:    a.AdjustedBy.String(),
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}
