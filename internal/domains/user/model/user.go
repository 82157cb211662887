package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles
const (
	RoleWriter = "writer"
	RoleAdmin  = "admin"
)

// User is a registered account. Every account is a writer; admins are
// writers with elevated rights.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	PenName      string    `json:"pen_name" db:"pen_name"`
	Bio          string    `json:"bio" db:"bio"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at" db:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
