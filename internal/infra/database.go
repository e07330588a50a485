package infra

import (
	"fmt"

	"github.com/bismillahdumoro-svg/zyracafe/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update all tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Shared with integration tests so they
// migrate the exact same way the server does.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Shift{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.StockAdjustment{},
		&model.Loan{},
		&model.Expense{},
		&model.BilliardTable{},
		&model.BilliardRental{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index: at most one active rental per table.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_rentals_one_active_per_table') THEN
		    CREATE UNIQUE INDEX idx_rentals_one_active_per_table
		        ON billiard_rentals (table_number)
		        WHERE status = 'active';
		  END IF;
		END $$`,
		// Partial index: at most one active shift per cashier.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_shifts_one_active_per_cashier') THEN
		    CREATE UNIQUE INDEX idx_shifts_one_active_per_cashier
		        ON shifts (cashier_id)
		        WHERE status = 'active';
		  END IF;
		END $$`,
		// Shift summary walks transactions by shift; keep that path indexed.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_transactions_shift') THEN
		    CREATE INDEX idx_transactions_shift ON transactions (shift_id);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
