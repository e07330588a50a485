package model

import "github.com/google/uuid"

// Product is a sellable catalog item. Billiard table time is sold through
// dedicated products whose name carries the table marker (e.g. "MEJA 1"),
// grouped under the billiard category.
//
// Price and all other money columns in this schema are integer rupiah —
// the currency has no fractional unit in practice.
type Product struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string     `gorm:"index;not null"`
	SKU        string     `gorm:"uniqueIndex;not null"`
	Price      int64      `gorm:"not null"`
	Stock      int        `gorm:"not null;default:0"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index"`

	Category *Category `gorm:"foreignKey:CategoryID"`
}
