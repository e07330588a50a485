package model

import (
	"github.com/google/uuid"
)

// User is a venue employee. Role: "admin" | "cashier".
// Passwords are stored as bcrypt hashes — never plaintext.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'cashier'"`
}
