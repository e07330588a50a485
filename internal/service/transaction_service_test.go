package service_test

import (
	"context"
	"testing"

	"github.com/bismillahdumoro-svg/zyracafe/internal/dto"
	"github.com/bismillahdumoro-svg/zyracafe/internal/model"
	"github.com/bismillahdumoro-svg/zyracafe/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTransactionSvc() (service.TransactionService, *stubTransactionRepo, *stubShiftRepo, *stubProductRepo, *stubUserRepo) {
	txRepo := newStubTransactionRepo()
	shiftRepo := newStubShiftRepo()
	productRepo := newStubProductRepo()
	userRepo := newStubUserRepo()
	svc := service.NewTransactionService(txRepo, shiftRepo, productRepo, userRepo)
	return svc, txRepo, shiftRepo, productRepo, userRepo
}

func TestCreateTransaction(t *testing.T) {
	svc, _, shiftRepo, productRepo, userRepo := buildTransactionSvc()
	cashier := userRepo.seed("Budi")
	shift := shiftRepo.seedActive(cashier.ID)
	kopi := productRepo.seed("Kopi Susu", 12000, 20, nil)
	indomie := productRepo.seed("Indomie Goreng", 10000, 15, nil)

	resp, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		ShiftID:       shift.ID.String(),
		CashierID:     cashier.ID.String(),
		CustomerName:  "Pak Andi",
		PaymentAmount: 50000,
		PaymentMethod: "cash",
		Items: []dto.TransactionItemRequest{
			{ProductID: kopi.ID.String(), Quantity: 2},
			{ProductID: indomie.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	// Totals: 2*12000 + 1*10000 = 34000, change from 50000.
	assert.Equal(t, int64(34000), resp.Subtotal)
	assert.Equal(t, int64(34000), resp.Total)
	assert.Equal(t, int64(16000), resp.Change)
	assert.Equal(t, "Budi", resp.CashierName)
	require.Len(t, resp.Items, 2)

	// Lines snapshot the catalog name and price at sale time.
	assert.Equal(t, "Kopi Susu", resp.Items[0].ProductName)
	assert.Equal(t, int64(12000), resp.Items[0].Price)
	assert.Equal(t, int64(24000), resp.Items[0].Subtotal)
	assert.Equal(t, "cafe", resp.Items[0].ItemType)

	// Stock decremented per line.
	kopiAfter, _ := productRepo.FindByID(context.Background(), kopi.ID)
	assert.Equal(t, 18, kopiAfter.Stock)
	indomieAfter, _ := productRepo.FindByID(context.Background(), indomie.ID)
	assert.Equal(t, 14, indomieAfter.Stock)

	// Shift running totals accumulated.
	shiftAfter, _ := shiftRepo.FindByID(context.Background(), shift.ID)
	assert.Equal(t, int64(34000), shiftAfter.TotalSales)
	assert.Equal(t, 1, shiftAfter.TotalTransactions)
}

func TestCreateTransaction_BilliardClassification(t *testing.T) {
	svc, _, shiftRepo, productRepo, userRepo := buildTransactionSvc()
	cashier := userRepo.seed("Budi")
	shift := shiftRepo.seedActive(cashier.ID)

	billiardCat := &model.Category{ID: uuid.New(), Name: "Billiard"}
	byCategory := productRepo.seed("Sewa Jam Tambahan", 25000, 99, billiardCat)
	byMarker := productRepo.seed("MEJA 4 (1 jam)", 30000, 99, nil)
	cafe := productRepo.seed("Es Teh", 5000, 99, nil)

	resp, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		ShiftID:       shift.ID.String(),
		CashierID:     cashier.ID.String(),
		PaymentAmount: 60000,
		PaymentMethod: "qris",
		Items: []dto.TransactionItemRequest{
			{ProductID: byCategory.ID.String(), Quantity: 1},
			{ProductID: byMarker.ID.String(), Quantity: 1},
			{ProductID: cafe.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "billiard", resp.Items[0].ItemType)
	assert.Equal(t, "billiard", resp.Items[1].ItemType)
	assert.Equal(t, "cafe", resp.Items[2].ItemType)
}

func TestCreateTransaction_ClosedShift(t *testing.T) {
	svc, _, shiftRepo, productRepo, userRepo := buildTransactionSvc()
	cashier := userRepo.seed("Budi")
	shift := shiftRepo.seedActive(cashier.ID)
	shift.Status = "closed"
	product := productRepo.seed("Kopi", 10000, 5, nil)

	_, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		ShiftID:       shift.ID.String(),
		CashierID:     cashier.ID.String(),
		PaymentAmount: 10000,
		PaymentMethod: "cash",
		Items:         []dto.TransactionItemRequest{{ProductID: product.ID.String(), Quantity: 1}},
	})
	assert.ErrorContains(t, err, "sudah ditutup")
}

func TestCreateTransaction_UnknownShift(t *testing.T) {
	svc, _, _, productRepo, userRepo := buildTransactionSvc()
	cashier := userRepo.seed("Budi")
	product := productRepo.seed("Kopi", 10000, 5, nil)

	_, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		ShiftID:       uuid.NewString(),
		CashierID:     cashier.ID.String(),
		PaymentAmount: 10000,
		PaymentMethod: "cash",
		Items:         []dto.TransactionItemRequest{{ProductID: product.ID.String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, service.ErrShiftNotFound)
}

func TestCreateTransaction_UnknownProduct(t *testing.T) {
	svc, txRepo, shiftRepo, _, userRepo := buildTransactionSvc()
	cashier := userRepo.seed("Budi")
	shift := shiftRepo.seedActive(cashier.ID)

	_, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		ShiftID:       shift.ID.String(),
		CashierID:     cashier.ID.String(),
		PaymentAmount: 10000,
		PaymentMethod: "cash",
		Items:         []dto.TransactionItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	})
	assert.ErrorContains(t, err, "tidak ditemukan")

	// Nothing persisted, shift totals untouched.
	txs, _ := txRepo.List(context.Background())
	assert.Empty(t, txs)
	shiftAfter, _ := shiftRepo.FindByID(context.Background(), shift.ID)
	assert.Equal(t, int64(0), shiftAfter.TotalSales)
}

func TestListTransactionsByShift(t *testing.T) {
	svc, txRepo, shiftRepo, _, userRepo := buildTransactionSvc()
	cashier := userRepo.seed("Budi")
	shift := shiftRepo.seedActive(cashier.ID)
	other := shiftRepo.seedActive(userRepo.seed("Sari").ID)

	seedSale(txRepo, shift.ID, model.TransactionItem{ProductName: "Kopi", Subtotal: 10000, Quantity: 1, ItemType: "cafe"})
	seedSale(txRepo, other.ID, model.TransactionItem{ProductName: "Es Teh", Subtotal: 5000, Quantity: 1, ItemType: "cafe"})

	list, err := svc.ListByShift(context.Background(), shift.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, shift.ID.String(), list[0].ShiftID)
}
