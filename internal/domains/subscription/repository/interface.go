package repository

import (
	"context"

	"inkwell-backend/internal/domains/subscription/model"
)

// SubscriptionRepository stores newsletter recipients.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	FindByEmail(ctx context.Context, email string) (*model.Subscription, error)
	FindByToken(ctx context.Context, token string) (*model.Subscription, error)

	// SetActive flips the subscription state and stamps
	// unsubscribed_at when deactivating.
	SetActive(ctx context.Context, email string, active bool) error

	ListActive(ctx context.Context) ([]model.Subscription, error)
	List(ctx context.Context, limit, offset int) ([]model.Subscription, int, error)
}
