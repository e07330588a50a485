package model

import (
	"time"

	"github.com/google/uuid"
)

// BilliardTable is the authoritative occupancy record for one table.
// Status: "available" | "occupied". The server is the single source of
// truth — terminals only hold a read-through projection and derive their
// countdown from the rental's StartTime + HoursRented.
type BilliardTable struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TableNumber string    `gorm:"uniqueIndex;not null"`
	HourlyRate  int64     `gorm:"not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'available'"`
	CreatedAt   time.Time
}

// BilliardRental is a timed rental session, billed hourly.
// Status: "active" | "closed". Creating a rental flips its table to
// occupied; ending it stamps EndTime and frees the table, in one DB
// transaction.
type BilliardRental struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShiftID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	TableNumber string     `gorm:"not null;index"`
	HoursRented int        `gorm:"not null"`
	HourlyRate  int64      `gorm:"not null"`
	TotalPrice  int64      `gorm:"not null"`
	StartTime   time.Time  `gorm:"not null"`
	EndTime     *time.Time
	Status      string     `gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt   time.Time
}
