package model

import (
	"time"

	"github.com/google/uuid"
)

// StockAdjustment is the audit record of a manual stock delta. Creating one
// is the only sanctioned way to change a product's stock outside of a sale.
// Invariant: NewStock = PreviousStock + Adjustment, NewStock >= 0.
type StockAdjustment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	PreviousStock int       `gorm:"not null"`
	NewStock      int       `gorm:"not null"`
	Adjustment    int       `gorm:"not null"`
	Reason        string    `gorm:"not null"`
	AdjustedBy    uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time

	Product        *Product `gorm:"foreignKey:ProductID"`
	AdjustedByUser *User    `gorm:"foreignKey:AdjustedBy"`
}
