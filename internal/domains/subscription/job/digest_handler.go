package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"inkwell-backend/internal/config"
	subrepo "inkwell-backend/internal/domains/subscription/repository"
	userrepo "inkwell-backend/internal/domains/user/repository"
	writingrepo "inkwell-backend/internal/domains/writing/repository"
	"inkwell-backend/internal/infrastructure/email"
	"inkwell-backend/internal/shared"
)

// DigestHandler builds and sends the weekly newsletter digest: every
// public writing from the configured window, one email per active
// subscriber.
type DigestHandler struct {
	subscriptionRepo subrepo.SubscriptionRepository
	writingRepo      writingrepo.WritingRepository
	userRepo         userrepo.UserRepository
	emailService     email.EmailService
	newsletterConfig config.NewsletterConfig
}

func NewDigestHandler(
	subscriptionRepo subrepo.SubscriptionRepository,
	writingRepo writingrepo.WritingRepository,
	userRepo userrepo.UserRepository,
	emailService email.EmailService,
	newsletterConfig config.NewsletterConfig,
) *DigestHandler {
	return &DigestHandler{
		subscriptionRepo: subscriptionRepo,
		writingRepo:      writingRepo,
		userRepo:         userRepo,
		emailService:     emailService,
		newsletterConfig: newsletterConfig,
	}
}

func (h *DigestHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DigestPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal digest payload: %w", err)
	}

	since := time.Now().UTC().AddDate(0, 0, -h.newsletterConfig.DigestWindowDays)

	writings, err := h.writingRepo.ListPublicSince(ctx, since)
	if err != nil {
		return fmt.Errorf("load digest writings: %w", err)
	}
	if len(writings) == 0 {
		log.Info().Msg("No new public writings, skipping digest")
		return nil
	}

	items := make([]email.DigestItem, 0, len(writings))
	penNames := map[uuid.UUID]string{}
	for _, w := range writings {
		penName, ok := penNames[w.AuthorID]
		if !ok {
			u, err := h.userRepo.FindByID(ctx, w.AuthorID)
			if err != nil {
				log.Warn().Err(err).Str("author_id", w.AuthorID.String()).Msg("Skipping writing with unknown author")
				continue
			}
			penName = u.PenName
			penNames[w.AuthorID] = penName
		}
		items = append(items, email.DigestItem{
			Title:   w.Title,
			PenName: penName,
			Excerpt: w.Excerpt,
		})
	}

	subs, err := h.subscriptionRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("load subscribers: %w", err)
	}

	sent, failed := 0, 0
	for _, sub := range subs {
		data := email.DigestEmailData{
			Email:            sub.Email,
			UnsubscribeToken: sub.Token,
			Items:            items,
		}
		if err := h.emailService.SendDigestEmail(ctx, data); err != nil {
			// One bad mailbox must not abort the whole run.
			failed++
			continue
		}
		sent++
	}

	log.Info().
		Int("writings", len(items)).
		Int("sent", sent).
		Int("failed", failed).
		Msg("Newsletter digest run complete")

	return nil
}
