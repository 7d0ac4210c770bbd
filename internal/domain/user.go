package domain

import "time"

// Column and credential limits enforced before anything reaches the database
const (
	MaxNameLength    = 255 // Characters in any display or record name
	MaxEmailLength   = 255 // Characters in an email
	MinPasswordBytes = 8   // Shortest accepted password
	MaxPasswordBytes = 72  // Longest input bcrypt accepts
)

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey"`                    // Primary key
	Name         string    `gorm:"size:255;not null"`             // Display name
	Email        string    `gorm:"size:255;uniqueIndex;not null"` // Unique email, matched exactly
	PasswordHash string    `gorm:"not null"`                      // bcrypt hash, never the plaintext
	RoleID       uint      `gorm:"not null"`                      // Foreign key to Role
	Role         Role      `gorm:"foreignKey:RoleID"`             // Resolved role
	CreatedAt    time.Time                                        // Creation timestamp
	UpdatedAt    time.Time                                        // Last update timestamp
}
