package repository

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/user/model"
)

// UserRepository is the data access layer for accounts.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *model.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error

	// SearchWriters matches active accounts by pen name, case
	// insensitively, for the writer directory.
	SearchWriters(ctx context.Context, query string, limit int) ([]model.User, error)
}
