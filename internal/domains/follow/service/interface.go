package service

import (
	"context"

	"github.com/google/uuid"

	writingmodel "inkwell-backend/internal/domains/writing/model"
)

// ServiceInterface covers the follow graph and the follow feed.
type ServiceInterface interface {
	// Follow and Unfollow are idempotent.
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)

	Followers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Following(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// Feed returns recent public writings from the accounts the user
	// follows, newest first.
	Feed(ctx context.Context, userID uuid.UUID, limit int) ([]writingmodel.WritingCardResponse, error)
}
