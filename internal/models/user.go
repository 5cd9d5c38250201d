package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents an account record in the database
type UserDB struct {
	UserID        uuid.UUID `json:"user_id" db:"user_id"`               // Primary key
	Email         string    `json:"email" db:"email"`                   // Login email
	PasswordHash  string    `json:"-" db:"password_hash"`               // bcrypt hash
	EmailVerified bool      `json:"email_verified" db:"email_verified"` // Set once the verification link is followed
	CreatedAt     time.Time `json:"created_at" db:"created_at"`         // Creation timestamp
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`         // Last update timestamp
}
