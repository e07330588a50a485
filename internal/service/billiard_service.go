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

// BilliardService owns table occupancy as a server-side state machine:
// available → occupied (rental start) → available (rental end). Terminals
// never keep their own timer state — they derive the countdown from the
// rental's startTime and hoursRented.
type BilliardService interface {
	CreateTable(ctx context.Context, req dto.CreateBilliardTableRequest) (*dto.BilliardTableResponse, error)
	ListTables(ctx context.Context) ([]dto.BilliardTableResponse, error)

	StartRental(ctx context.Context, req dto.CreateBilliardRentalRequest) (*dto.BilliardRentalResponse, error)
	ListRentals(ctx context.Context) ([]dto.BilliardRentalResponse, error)
	ActiveRentals(ctx context.Context) ([]dto.BilliardRentalResponse, error)
	EndRental(ctx context.Context, id uuid.UUID) (*dto.BilliardRentalResponse, error)
}

type billiardService struct {
	repo      repository.BilliardRepository
	shiftRepo repository.ShiftRepository
}

func NewBilliardService(repo repository.BilliardRepository, shiftRepo repository.ShiftRepository) BilliardService {
	return &billiardService{repo: repo, shiftRepo: shiftRepo}
}

func (s *billiardService) CreateTable(ctx context.Context, req dto.CreateBilliardTableRequest) (*dto.BilliardTableResponse, error) {
	if existing, err := s.repo.FindTableByNumber(ctx, req.TableNumber); err == nil && existing != nil {
		return nil, errors.New("meja dengan nomor tersebut sudah ada")
	}
	table := &model.BilliardTable{
		TableNumber: req.TableNumber,
		HourlyRate:  req.HourlyRate,
		Status:      "available",
	}
	if err := s.repo.CreateTable(ctx, table); err != nil {
		return nil, err
	}
	return toTableResponse(table), nil
}

func (s *billiardService) ListTables(ctx context.Context) ([]dto.BilliardTableResponse, error) {
	tables, err := s.repo.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BilliardTableResponse, 0, len(tables))
	for i := range tables {
		out = append(out, *toTableResponse(&tables[i]))
	}
	return out, nil
}

// StartRental opens a rental and marks the table occupied in one transaction.
// The rate is read from the table record, not from the request — the server
// owns pricing.
func (s *billiardService) StartRental(ctx context.Context, req dto.CreateBilliardRentalRequest) (*dto.BilliardRentalResponse, error) {
	shiftID, err := uuid.Parse(req.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("shiftId tidak valid: %w", err)
	}
	shift, err := s.shiftRepo.FindByID(ctx, shiftID)
	if err != nil {
		return nil, ErrShiftNotFound
	}
	if shift.Status != "active" {
		return nil, errors.New("shift sudah ditutup")
	}

	table, err := s.repo.FindTableByNumber(ctx, req.TableNumber)
	if err != nil {
		return nil, errors.New("meja tidak ditemukan")
	}
	if table.Status != "available" {
		return nil, errors.New("meja sedang dipakai")
	}

	rental := &model.BilliardRental{
		ShiftID:     shiftID,
		TableNumber: table.TableNumber,
		HoursRented: req.HoursRented,
		HourlyRate:  table.HourlyRate,
		TotalPrice:  table.HourlyRate * int64(req.HoursRented),
		StartTime:   time.Now(),
		Status:      "active",
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateRentalTx(tx, rental); err != nil {
			return err
		}
		return s.repo.SetTableStatusTx(tx, table.TableNumber, "occupied")
	})
	if txErr != nil {
		return nil, txErr
	}

	return toRentalResponse(rental), nil
}

// ListRentals returns the full rental history, newest first, closed
// sessions included.
func (s *billiardService) ListRentals(ctx context.Context) ([]dto.BilliardRentalResponse, error) {
	rentals, err := s.repo.ListRentals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BilliardRentalResponse, 0, len(rentals))
	for i := range rentals {
		out = append(out, *toRentalResponse(&rentals[i]))
	}
	return out, nil
}

func (s *billiardService) ActiveRentals(ctx context.Context) ([]dto.BilliardRentalResponse, error) {
	rentals, err := s.repo.ListActiveRentals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BilliardRentalResponse, 0, len(rentals))
	for i := range rentals {
		out = append(out, *toRentalResponse(&rentals[i]))
	}
	return out, nil
}

// EndRental closes the session and frees the table atomically. Idempotent
// rejection: a closed rental cannot be closed again.
func (s *billiardService) EndRental(ctx context.Context, id uuid.UUID) (*dto.BilliardRentalResponse, error) {
	rental, err := s.repo.FindRentalByID(ctx, id)
	if err != nil {
		return nil, errors.New("rental tidak ditemukan")
	}
	if rental.Status != "active" {
		return nil, errors.New("rental sudah ditutup")
	}

	now := time.Now()
	rental.EndTime = &now
	rental.Status = "closed"

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateRentalTx(tx, rental); err != nil {
			return err
		}
		return s.repo.SetTableStatusTx(tx, rental.TableNumber, "available")
	})
	if txErr != nil {
		return nil, txErr
	}

	return toRentalResponse(rental), nil
}

func toTableResponse(t *model.BilliardTable) *dto.BilliardTableResponse {
	return &dto.BilliardTableResponse{
		ID:          t.ID.String(),
		TableNumber: t.TableNumber,
		HourlyRate:  t.HourlyRate,
		Status:      t.Status,
	}
}

func toRentalResponse(r *model.BilliardRental) *dto.BilliardRentalResponse {
	resp := &dto.BilliardRentalResponse{
		ID:          r.ID.String(),
		ShiftID:     r.ShiftID.String(),
		TableNumber: r.TableNumber,
		HoursRented: r.HoursRented,
		HourlyRate:  r.HourlyRate,
		TotalPrice:  r.TotalPrice,
		StartTime:   r.StartTime.Format(time.RFC3339),
		Status:      r.Status,
	}
	if r.EndTime != nil {
		t := r.EndTime.Format(time.RFC3339)
		resp.EndTime = &t
	}
	return resp
}
