package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell-backend/internal/domains/subscription/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &postgresRepository{pool: pool}
}

const subscriptionColumns = `id, email, token, is_active, created_at, unsubscribed_at`

func (r *postgresRepository) Create(ctx context.Context, sub *model.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, email, token, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, sub.ID, sub.Email, sub.Token, sub.IsActive, sub.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.NewAlreadySubscribedError()
		}
		return fmt.Errorf("insert subscription: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE lower(email) = lower($1)`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *postgresRepository) FindByToken(ctx context.Context, token string) (*model.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE token = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, token))
}

func (r *postgresRepository) SetActive(ctx context.Context, email string, active bool) error {
	query := `
		UPDATE subscriptions
		SET is_active = $2,
		    unsubscribed_at = CASE WHEN $2 THEN NULL ELSE NOW() END
		WHERE lower(email) = lower($1)
	`

	tag, err := r.pool.Exec(ctx, query, email, active)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSubscriptionNotFound
	}

	return nil
}

func (r *postgresRepository) ListActive(ctx context.Context) ([]model.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE is_active = TRUE ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active subscriptions: %w", err)
	}
	defer rows.Close()

	return collectSubscriptions(rows)
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]model.Subscription, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subs, err := collectSubscriptions(rows)
	return subs, total, err
}

func (r *postgresRepository) scanOne(row pgx.Row) (*model.Subscription, error) {
	var sub model.Subscription
	err := row.Scan(&sub.ID, &sub.Email, &sub.Token, &sub.IsActive, &sub.CreatedAt, &sub.UnsubscribedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	return &sub, nil
}

func collectSubscriptions(rows pgx.Rows) ([]model.Subscription, error) {
	subs := []model.Subscription{}
	for rows.Next() {
		var sub model.Subscription
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Token, &sub.IsActive, &sub.CreatedAt, &sub.UnsubscribedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
