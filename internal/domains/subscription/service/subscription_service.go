package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"inkwell-backend/internal/domains/subscription/model"
	"inkwell-backend/internal/domains/subscription/repository"
	"inkwell-backend/internal/shared"
	"inkwell-backend/pkg/logger"
)

type subscriptionService struct {
	repo        repository.SubscriptionRepository
	asynqClient *asynq.Client
}

func NewSubscriptionService(repo repository.SubscriptionRepository, asynqClient *asynq.Client) ServiceInterface {
	return &subscriptionService{
		repo:        repo,
		asynqClient: asynqClient,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.SubscriptionDTO, error) {
	// Step 1: Normalize, then validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := req.Email

	// Step 2: An unsubscribed email is reactivated, keeping its token.
	// An active one is a conflict.
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		if existing.IsActive {
			return nil, model.NewAlreadySubscribedError()
		}
		if err := s.repo.SetActive(ctx, email, true); err != nil {
			return nil, fmt.Errorf("reactivate subscription: %w", err)
		}
		existing.IsActive = true
		dto := existing.ToDTO()
		return &dto, nil
	}
	if err != model.ErrSubscriptionNotFound {
		return nil, fmt.Errorf("load subscription: %w", err)
	}

	// Step 3: New subscription with a fresh unsubscribe token
	token, err := generateToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	sub := &model.Subscription{
		ID:        uuid.New(),
		Email:     email,
		Token:     token,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	// Step 4: Queue the welcome email. Losing it is not worth failing
	// the subscription over.
	s.enqueueWelcome(sub)

	dto := sub.ToDTO()
	return &dto, nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, token string) error {
	if token == "" {
		return model.NewSubscriptionNotFoundError()
	}

	sub, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if err == model.ErrSubscriptionNotFound {
			return model.NewSubscriptionNotFoundError()
		}
		return fmt.Errorf("load subscription: %w", err)
	}

	if !sub.IsActive {
		return nil
	}

	if err := s.repo.SetActive(ctx, sub.Email, false); err != nil {
		return fmt.Errorf("deactivate subscription: %w", err)
	}

	return nil
}

func (s *subscriptionService) List(ctx context.Context, page, limit int) ([]model.SubscriptionDTO, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	subs, total, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}

	dtos := make([]model.SubscriptionDTO, 0, len(subs))
	for i := range subs {
		dtos = append(dtos, subs[i].ToDTO())
	}

	return dtos, total, nil
}

func (s *subscriptionService) enqueueWelcome(sub *model.Subscription) {
	if s.asynqClient == nil {
		return
	}

	payload, err := json.Marshal(shared.WelcomePayload{Email: sub.Email, Token: sub.Token})
	if err != nil {
		logger.Error("marshal welcome payload", err)
		return
	}

	task := asynq.NewTask(shared.TypeSendWelcomeEmail, payload)
	if _, err := s.asynqClient.Enqueue(task, asynq.Queue(shared.QueueDefault), asynq.MaxRetry(3)); err != nil {
		logger.Error("enqueue welcome email", err)
	}
}

func generateToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
