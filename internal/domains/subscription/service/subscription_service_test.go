package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-backend/internal/domains/subscription/model"
)

// fakeSubscriptionRepository keeps subscriptions keyed by email.
type fakeSubscriptionRepository struct {
	subs map[string]model.Subscription
}

func newFakeSubRepo() *fakeSubscriptionRepository {
	return &fakeSubscriptionRepository{subs: make(map[string]model.Subscription)}
}

func (f *fakeSubscriptionRepository) Create(_ context.Context, sub *model.Subscription) error {
	if _, ok := f.subs[sub.Email]; ok {
		return model.NewAlreadySubscribedError()
	}
	f.subs[sub.Email] = *sub
	return nil
}

func (f *fakeSubscriptionRepository) FindByEmail(_ context.Context, email string) (*model.Subscription, error) {
	sub, ok := f.subs[email]
	if !ok {
		return nil, model.ErrSubscriptionNotFound
	}
	copied := sub
	return &copied, nil
}

func (f *fakeSubscriptionRepository) FindByToken(_ context.Context, token string) (*model.Subscription, error) {
	for _, sub := range f.subs {
		if sub.Token == token {
			copied := sub
			return &copied, nil
		}
	}
	return nil, model.ErrSubscriptionNotFound
}

func (f *fakeSubscriptionRepository) SetActive(_ context.Context, email string, active bool) error {
	sub, ok := f.subs[email]
	if !ok {
		return model.ErrSubscriptionNotFound
	}
	sub.IsActive = active
	if active {
		sub.UnsubscribedAt = nil
	} else {
		now := time.Now()
		sub.UnsubscribedAt = &now
	}
	f.subs[email] = sub
	return nil
}

func (f *fakeSubscriptionRepository) ListActive(_ context.Context) ([]model.Subscription, error) {
	out := []model.Subscription{}
	for _, sub := range f.subs {
		if sub.IsActive {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepository) List(_ context.Context, limit, offset int) ([]model.Subscription, int, error) {
	out := []model.Subscription{}
	for _, sub := range f.subs {
		out = append(out, sub)
	}
	total := len(out)
	if offset >= len(out) {
		return []model.Subscription{}, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func newTestSubscriptionService() (*fakeSubscriptionRepository, ServiceInterface) {
	repo := newFakeSubRepo()
	return repo, NewSubscriptionService(repo, nil)
}

func TestSubscribeNewEmail(t *testing.T) {
	repo, svc := newTestSubscriptionService()

	dto, err := svc.Subscribe(context.Background(), model.SubscribeRequest{Email: "Reader@Example.com"})
	require.NoError(t, err)

	assert.Equal(t, "reader@example.com", dto.Email)
	assert.True(t, dto.IsActive)

	stored := repo.subs["reader@example.com"]
	assert.NotEmpty(t, stored.Token)
}

func TestSubscribeNormalizesBeforeValidation(t *testing.T) {
	// Uppercase domains are valid addresses; folding must happen
	// before the format check, which only accepts lowercase domains.
	repo, svc := newTestSubscriptionService()

	dto, err := svc.Subscribe(context.Background(), model.SubscribeRequest{Email: "  Poet@INKWELL.dev "})
	require.NoError(t, err)

	assert.Equal(t, "poet@inkwell.dev", dto.Email)
	assert.Contains(t, repo.subs, "poet@inkwell.dev")
}

func TestSubscribeActiveEmailConflicts(t *testing.T) {
	_, svc := newTestSubscriptionService()

	_, err := svc.Subscribe(context.Background(), model.SubscribeRequest{Email: "reader@example.com"})
	require.NoError(t, err)

	_, err = svc.Subscribe(context.Background(), model.SubscribeRequest{Email: "reader@example.com"})
	assert.ErrorIs(t, err, model.ErrAlreadySubscribed)
}

func TestSubscribeRejectsBadEmail(t *testing.T) {
	_, svc := newTestSubscriptionService()

	_, err := svc.Subscribe(context.Background(), model.SubscribeRequest{Email: "not-an-email"})
	require.Error(t, err)
}

func TestUnsubscribeThenResubscribeKeepsToken(t *testing.T) {
	repo, svc := newTestSubscriptionService()

	_, err := svc.Subscribe(context.Background(), model.SubscribeRequest{Email: "reader@example.com"})
	require.NoError(t, err)
	originalToken := repo.subs["reader@example.com"].Token

	require.NoError(t, svc.Unsubscribe(context.Background(), originalToken))
	assert.False(t, repo.subs["reader@example.com"].IsActive)

	// Subscribing again reactivates instead of duplicating.
	dto, err := svc.Subscribe(context.Background(), model.SubscribeRequest{Email: "reader@example.com"})
	require.NoError(t, err)
	assert.True(t, dto.IsActive)
	assert.Len(t, repo.subs, 1)
	assert.Equal(t, originalToken, repo.subs["reader@example.com"].Token)
}

func TestUnsubscribeUnknownToken(t *testing.T) {
	_, svc := newTestSubscriptionService()

	err := svc.Unsubscribe(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, model.ErrSubscriptionNotFound)
}

func TestUnsubscribeTwiceIsIdempotent(t *testing.T) {
	repo, svc := newTestSubscriptionService()

	_, err := svc.Subscribe(context.Background(), model.SubscribeRequest{Email: "reader@example.com"})
	require.NoError(t, err)
	token := repo.subs["reader@example.com"].Token

	require.NoError(t, svc.Unsubscribe(context.Background(), token))
	require.NoError(t, svc.Unsubscribe(context.Background(), token))
}
