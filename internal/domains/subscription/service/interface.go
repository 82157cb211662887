package service

import (
	"context"

	"inkwell-backend/internal/domains/subscription/model"
)

// ServiceInterface covers newsletter subscriptions.
type ServiceInterface interface {
	// Subscribe registers an email, reactivating a previously
	// unsubscribed one. A welcome email is queued on first subscribe.
	Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.SubscriptionDTO, error)
	// Unsubscribe deactivates by token, idempotently.
	Unsubscribe(ctx context.Context, token string) error

	// List is the admin view of all subscriptions.
	List(ctx context.Context, page, limit int) ([]model.SubscriptionDTO, int, error)
}
