package repository

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/follow/model"
)

// FollowRepository stores the directed follow graph.
type FollowRepository interface {
	// Follow inserts the edge; inserting an existing edge is a no-op.
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	// Unfollow removes the edge; removing a missing edge is a no-op.
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)

	ListFollowers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListFollowing(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Counts(ctx context.Context, userID uuid.UUID) (model.FollowCounts, error)
}
