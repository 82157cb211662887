package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell-backend/internal/domains/follow/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) FollowRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, followerID, followeeID); err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (r *postgresRepository) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`
	if _, err := r.pool.Exec(ctx, query, followerID, followeeID); err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

func (r *postgresRepository) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var following bool
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`
	if err := r.pool.QueryRow(ctx, query, followerID, followeeID).Scan(&following); err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return following, nil
}

func (r *postgresRepository) ListFollowers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT follower_id FROM follows WHERE followee_id = $1 ORDER BY created_at DESC`
	return r.listIDs(ctx, query, userID)
}

func (r *postgresRepository) ListFollowing(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT followee_id FROM follows WHERE follower_id = $1 ORDER BY created_at DESC`
	return r.listIDs(ctx, query, userID)
}

func (r *postgresRepository) Counts(ctx context.Context, userID uuid.UUID) (model.FollowCounts, error) {
	var counts model.FollowCounts
	query := `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE followee_id = $1),
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1)
	`
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&counts.Followers, &counts.Following); err != nil {
		return model.FollowCounts{}, fmt.Errorf("count follows: %w", err)
	}
	return counts, nil
}

func (r *postgresRepository) listIDs(ctx context.Context, query string, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan follow: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
