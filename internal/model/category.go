package model

import "github.com/google/uuid"

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"uniqueIndex;not null"`
}

// TableName overrides GORM's default pluralization (categories, not categorys).
func (Category) TableName() string { return "categories" }
