package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is one newsletter recipient. Token is the unsubscribe
// secret carried in every email; it never changes for the life of the
// subscription, including across reactivation.
type Subscription struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Email          string     `json:"email" db:"email"`
	Token          string     `json:"-" db:"token"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty" db:"unsubscribed_at"`
}
