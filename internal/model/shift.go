package model

import (
	"time"

	"github.com/google/uuid"
)

// Shift is one cashier's tracked work session. Status: "active" | "closed".
// TotalSales and TotalTransactions accumulate additively with every sale,
// inside the same DB transaction that creates it. Closing is irreversible.
type Shift struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CashierID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartTime         time.Time  `gorm:"not null"`
	EndTime           *time.Time
	StartingCash      int64      `gorm:"not null"`
	EndingCash        *int64
	TotalSales        int64      `gorm:"not null;default:0"`
	TotalTransactions int        `gorm:"not null;default:0"`
	Status            string     `gorm:"type:varchar(20);not null;default:'active';index"`

	Cashier *User `gorm:"foreignKey:CashierID"`
}
