package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is one completed sale. Created atomically with its items;
// immutable thereafter. Invariant: Total = Subtotal + Tax.
// PaymentMethod: "cash" | "qris".
type Transaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShiftID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CashierID     uuid.UUID `gorm:"type:uuid;not null"`
	CustomerName  string    `gorm:"not null;default:''"`
	Subtotal      int64     `gorm:"not null"`
	Tax           int64     `gorm:"not null;default:0"`
	Total         int64     `gorm:"not null"`
	PaymentAmount int64     `gorm:"not null"`
	Change        int64     `gorm:"not null"`
	PaymentMethod string    `gorm:"type:varchar(10);not null"`
	CreatedAt     time.Time

	Items   []TransactionItem `gorm:"foreignKey:TransactionID"`
	Cashier *User             `gorm:"foreignKey:CashierID"`
}

// TransactionItem is one product line within a sale. Name and price are
// snapshotted at sale time so later catalog edits never rewrite history.
// ItemType ("billiard" | "cafe") is captured at creation and drives the
// shift income split — classification is frozen with the line, not derived
// from the live product row.
type TransactionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName   string    `gorm:"not null"`
	Price         int64     `gorm:"not null"`
	Quantity      int       `gorm:"not null"`
	Subtotal      int64     `gorm:"not null"`
	ItemType      string    `gorm:"type:varchar(10);not null;default:''"`
}
