package model

import (
	"time"

	"github.com/google/uuid"
)

// Loan is a cash-out tied to a shift (petty cash handed to an employee).
// Loans count against the shift's gross sales in the reconciliation summary.
type Loan struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShiftID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Description   string    `gorm:"not null"`
	Amount        int64     `gorm:"not null"`
	RecipientName string    `gorm:"not null"`
	CreatedAt     time.Time
}

// Expense is a categorized operational cash-out recorded against a shift.
type Expense struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShiftID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"not null"`
	Amount      int64     `gorm:"not null"`
	Category    string    `gorm:"not null"`
	CreatedAt   time.Time
}
