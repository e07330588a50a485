package service_test

import (
	"context"
	"testing"

	"github.com/bismillahdumoro-svg/zyracafe/internal/dto"
	"github.com/bismillahdumoro-svg/zyracafe/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStockSvc() (service.StockService, *stubStockRepo, *stubProductRepo, *stubUserRepo) {
	stockRepo := &stubStockRepo{}
	productRepo := newStubProductRepo()
	userRepo := newStubUserRepo()
	svc := service.NewStockService(stockRepo, productRepo)
	return svc, stockRepo, productRepo, userRepo
}

func TestCreateAdjustment(t *testing.T) {
	svc, stockRepo, productRepo, userRepo := buildStockSvc()
	admin := userRepo.seed("Admin")
	product := productRepo.seed("Kopi Susu", 12000, 10, nil)

	resp, err := svc.CreateAdjustment(context.Background(), dto.CreateStockAdjustmentRequest{
		ProductID:  product.ID.String(),
		Adjustment: -3,
		Reason:     "Barang rusak",
		AdjustedBy: admin.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.PreviousStock)
	assert.Equal(t, 7, resp.NewStock)
	assert.Equal(t, -3, resp.Adjustment)
	assert.Equal(t, "Kopi Susu", resp.ProductName)

	// Stock applied and audit record written.
	after, _ := productRepo.FindByID(context.Background(), product.ID)
	assert.Equal(t, 7, after.Stock)
	records, _ := stockRepo.List(context.Background())
	require.Len(t, records, 1)
	assert.Equal(t, "Barang rusak", records[0].Reason)
}

func TestCreateAdjustment_Restock(t *testing.T) {
	svc, _, productRepo, userRepo := buildStockSvc()
	admin := userRepo.seed("Admin")
	product := productRepo.seed("Indomie", 10000, 2, nil)

	resp, err := svc.CreateAdjustment(context.Background(), dto.CreateStockAdjustmentRequest{
		ProductID:  product.ID.String(),
		Adjustment: 48,
		Reason:     "Restock mingguan",
		AdjustedBy: admin.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, 50, resp.NewStock)
}

func TestCreateAdjustment_DrainToZeroAccepted(t *testing.T) {
	svc, stockRepo, productRepo, userRepo := buildStockSvc()
	admin := userRepo.seed("Admin")
	product := productRepo.seed("Es Teh", 5000, 5, nil)

	// Exhausting the remaining stock exactly is a valid write-off.
	resp, err := svc.CreateAdjustment(context.Background(), dto.CreateStockAdjustmentRequest{
		ProductID:  product.ID.String(),
		Adjustment: -5,
		Reason:     "Kedaluwarsa",
		AdjustedBy: admin.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.PreviousStock)
	assert.Equal(t, 0, resp.NewStock)

	after, _ := productRepo.FindByID(context.Background(), product.ID)
	assert.Equal(t, 0, after.Stock)
	records, _ := stockRepo.List(context.Background())
	require.Len(t, records, 1)
}

func TestCreateAdjustment_NegativeStockRejected(t *testing.T) {
	svc, stockRepo, productRepo, userRepo := buildStockSvc()
	admin := userRepo.seed("Admin")
	product := productRepo.seed("Es Teh", 5000, 2, nil)

	_, err := svc.CreateAdjustment(context.Background(), dto.CreateStockAdjustmentRequest{
		ProductID:  product.ID.String(),
		Adjustment: -5,
		Reason:     "Salah hitung",
		AdjustedBy: admin.ID.String(),
	})
	assert.ErrorIs(t, err, service.ErrNegativeStock)

	// Nothing changed.
	after, _ := productRepo.FindByID(context.Background(), product.ID)
	assert.Equal(t, 2, after.Stock)
	records, _ := stockRepo.List(context.Background())
	assert.Empty(t, records)
}

func TestCreateAdjustment_UnknownProduct(t *testing.T) {
	svc, _, _, userRepo := buildStockSvc()
	admin := userRepo.seed("Admin")

	_, err := svc.CreateAdjustment(context.Background(), dto.CreateStockAdjustmentRequest{
		ProductID:  uuid.NewString(),
		Adjustment: 1,
		Reason:     "x",
		AdjustedBy: admin.ID.String(),
	})
	assert.ErrorContains(t, err, "produk tidak ditemukan")
}
