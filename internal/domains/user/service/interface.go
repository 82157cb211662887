package service

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/user/model"
	"inkwell-backend/internal/policy"
)

// ServiceInterface covers accounts: registration, sessions, profiles
// and the writer directory.
type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Refresh(ctx context.Context, req model.RefreshTokenRequest) (*model.LoginResponse, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.UserDTO, error)

	// GetWriterProfile is the public profile. Private writing counts are
	// included only when the viewer is the profile owner or an admin.
	GetWriterProfile(ctx context.Context, viewer policy.Viewer, writerID uuid.UUID) (*model.WriterProfileDTO, error)
	SearchWriters(ctx context.Context, req model.SearchWritersRequest) ([]model.WriterProfileDTO, error)
}
