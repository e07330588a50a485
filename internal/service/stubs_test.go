package service_test

// In-memory repository stubs shared by the service tests. runTx receives a
// nil *gorm.DB from the stubs' DB() methods and calls the closure directly,
// so the services execute their full transactional flow against these maps.

import (
	"context"
	"errors"
	"sort"

	"github.com/bismillahdumoro-svg/zyracafe/internal/model"
	"github.com/bismillahdumoro-svg/zyracafe/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Users ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) seed(name string) *model.User {
	u := &model.User{ID: uuid.New(), Name: name, Username: name, Role: "cashier"}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Shifts ────────────────────────────────────────────────────────────────────

type stubShiftRepo struct {
	shifts map[uuid.UUID]*model.Shift
}

func newStubShiftRepo() *stubShiftRepo {
	return &stubShiftRepo{shifts: make(map[uuid.UUID]*model.Shift)}
}

func (r *stubShiftRepo) seedActive(cashierID uuid.UUID) *model.Shift {
	s := &model.Shift{ID: uuid.New(), CashierID: cashierID, Status: "active"}
	r.shifts[s.ID] = s
	return s
}

func (r *stubShiftRepo) Create(_ context.Context, s *model.Shift) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.shifts[s.ID] = s
	return nil
}

func (r *stubShiftRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubShiftRepo) FindActiveByCashier(_ context.Context, cashierID uuid.UUID) (*model.Shift, error) {
	for _, s := range r.shifts {
		if s.CashierID == cashierID && s.Status == "active" {
			return s, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubShiftRepo) FindActive(_ context.Context) ([]model.Shift, error) {
	var out []model.Shift
	for _, s := range r.shifts {
		if s.Status == "active" {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubShiftRepo) List(_ context.Context) ([]model.Shift, error) {
	out := make([]model.Shift, 0, len(r.shifts))
	for _, s := range r.shifts {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubShiftRepo) Update(_ context.Context, s *model.Shift) error {
	r.shifts[s.ID] = s
	return nil
}

func (r *stubShiftRepo) AccumulateTx(_ *gorm.DB, id uuid.UUID, saleTotal int64) error {
	s, ok := r.shifts[id]
	if !ok {
		return errors.New("not found")
	}
	s.TotalSales += saleTotal
	s.TotalTransactions++
	return nil
}

func (r *stubShiftRepo) DB() *gorm.DB { return nil }

var _ repository.ShiftRepository = (*stubShiftRepo)(nil)

// ── Transactions ─────────────────────────────────────────────────────────────

type stubTransactionRepo struct {
	transactions map[uuid.UUID]*model.Transaction
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{transactions: make(map[uuid.UUID]*model.Transaction)}
}

func (r *stubTransactionRepo) Create(_ context.Context, _ *gorm.DB, t *model.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	for i := range t.Items {
		if t.Items[i].ID == uuid.Nil {
			t.Items[i].ID = uuid.New()
		}
		t.Items[i].TransactionID = t.ID
	}
	r.transactions[t.ID] = t
	return nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transaction, error) {
	t, ok := r.transactions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return t, nil
}

func (r *stubTransactionRepo) List(_ context.Context) ([]model.Transaction, error) {
	out := make([]model.Transaction, 0, len(r.transactions))
	for _, t := range r.transactions {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTransactionRepo) ListByShift(_ context.Context, shiftID uuid.UUID) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.transactions {
		if t.ShiftID == shiftID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTransactionRepo) DB() *gorm.DB { return nil }

var _ repository.TransactionRepository = (*stubTransactionRepo)(nil)

// ── Products ─────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	// saleLines counts transaction items per product for the delete guard.
	saleLines map[uuid.UUID]int64
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products:  make(map[uuid.UUID]*model.Product),
		saleLines: make(map[uuid.UUID]int64),
	}
}

func (r *stubProductRepo) seed(name string, price int64, stock int, category *model.Category) *model.Product {
	p := &model.Product{ID: uuid.New(), Name: name, SKU: uuid.NewString(), Price: price, Stock: stock}
	if category != nil {
		p.CategoryID = &category.ID
		p.Category = category
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) AddStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Stock += delta
	return nil
}

func (r *stubProductRepo) SetStockTx(_ *gorm.DB, id uuid.UUID, stock int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Stock = stock
	return nil
}

func (r *stubProductRepo) CountTransactionItems(_ context.Context, id uuid.UUID) (int64, error) {
	return r.saleLines[id], nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Loans / expenses ─────────────────────────────────────────────────────────

type stubLoanRepo struct {
	loans []model.Loan
}

func (r *stubLoanRepo) Create(_ context.Context, l *model.Loan) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.loans = append(r.loans, *l)
	return nil
}

func (r *stubLoanRepo) List(_ context.Context) ([]model.Loan, error) {
	return r.loans, nil
}

func (r *stubLoanRepo) ListByShift(_ context.Context, shiftID uuid.UUID) ([]model.Loan, error) {
	var out []model.Loan
	for _, l := range r.loans {
		if l.ShiftID == shiftID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubLoanRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, l := range r.loans {
		if l.ID == id {
			r.loans = append(r.loans[:i], r.loans[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

var _ repository.LoanRepository = (*stubLoanRepo)(nil)

type stubExpenseRepo struct {
	expenses []model.Expense
}

func (r *stubExpenseRepo) Create(_ context.Context, e *model.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.expenses = append(r.expenses, *e)
	return nil
}

func (r *stubExpenseRepo) List(_ context.Context) ([]model.Expense, error) {
	return r.expenses, nil
}

func (r *stubExpenseRepo) ListByShift(_ context.Context, shiftID uuid.UUID) ([]model.Expense, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		if e.ShiftID == shiftID {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ repository.ExpenseRepository = (*stubExpenseRepo)(nil)

// ── Stock adjustments ────────────────────────────────────────────────────────

type stubStockRepo struct {
	adjustments []model.StockAdjustment
}

func (r *stubStockRepo) CreateTx(_ *gorm.DB, a *model.StockAdjustment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.adjustments = append(r.adjustments, *a)
	return nil
}

func (r *stubStockRepo) List(_ context.Context) ([]model.StockAdjustment, error) {
	return r.adjustments, nil
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

var _ repository.StockAdjustmentRepository = (*stubStockRepo)(nil)

// ── Billiard ─────────────────────────────────────────────────────────────────

type stubBilliardRepo struct {
	tables  map[string]*model.BilliardTable
	rentals map[uuid.UUID]*model.BilliardRental
}

func newStubBilliardRepo() *stubBilliardRepo {
	return &stubBilliardRepo{
		tables:  make(map[string]*model.BilliardTable),
		rentals: make(map[uuid.UUID]*model.BilliardRental),
	}
}

func (r *stubBilliardRepo) seedTable(number string, rate int64) *model.BilliardTable {
	t := &model.BilliardTable{ID: uuid.New(), TableNumber: number, HourlyRate: rate, Status: "available"}
	r.tables[number] = t
	return t
}

func (r *stubBilliardRepo) CreateTable(_ context.Context, t *model.BilliardTable) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tables[t.TableNumber] = t
	return nil
}

func (r *stubBilliardRepo) FindTableByNumber(_ context.Context, tableNumber string) (*model.BilliardTable, error) {
	t, ok := r.tables[tableNumber]
	if !ok {
		return nil, errors.New("not found")
	}
	return t, nil
}

func (r *stubBilliardRepo) ListTables(_ context.Context) ([]model.BilliardTable, error) {
	out := make([]model.BilliardTable, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableNumber < out[j].TableNumber })
	return out, nil
}

func (r *stubBilliardRepo) SetTableStatusTx(_ *gorm.DB, tableNumber, status string) error {
	t, ok := r.tables[tableNumber]
	if !ok {
		return errors.New("not found")
	}
	t.Status = status
	return nil
}

func (r *stubBilliardRepo) CreateRentalTx(_ *gorm.DB, rental *model.BilliardRental) error {
	if rental.ID == uuid.Nil {
		rental.ID = uuid.New()
	}
	r.rentals[rental.ID] = rental
	return nil
}

func (r *stubBilliardRepo) FindRentalByID(_ context.Context, id uuid.UUID) (*model.BilliardRental, error) {
	rental, ok := r.rentals[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return rental, nil
}

func (r *stubBilliardRepo) ListRentals(_ context.Context) ([]model.BilliardRental, error) {
	out := make([]model.BilliardRental, 0, len(r.rentals))
	for _, rental := range r.rentals {
		out = append(out, *rental)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (r *stubBilliardRepo) ListActiveRentals(_ context.Context) ([]model.BilliardRental, error) {
	var out []model.BilliardRental
	for _, rental := range r.rentals {
		if rental.Status == "active" {
			out = append(out, *rental)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *stubBilliardRepo) UpdateRentalTx(_ *gorm.DB, rental *model.BilliardRental) error {
	r.rentals[rental.ID] = rental
	return nil
}

func (r *stubBilliardRepo) DB() *gorm.DB { return nil }

var _ repository.BilliardRepository = (*stubBilliardRepo)(nil)
