package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"inkwell-backend/internal/infrastructure/email"
	"inkwell-backend/internal/shared"
)

// WelcomeHandler sends the confirmation email queued at subscribe time.
type WelcomeHandler struct {
	emailService email.EmailService
}

func NewWelcomeHandler(emailService email.EmailService) *WelcomeHandler {
	return &WelcomeHandler{emailService: emailService}
}

func (h *WelcomeHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.WelcomePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal welcome payload: %w", err)
	}

	data := email.WelcomeEmailData{
		Email:            payload.Email,
		UnsubscribeToken: payload.Token,
	}
	if err := h.emailService.SendWelcomeEmail(ctx, data); err != nil {
		// Returning the error lets asynq retry.
		return err
	}

	log.Info().Str("email", payload.Email).Msg("Welcome email sent")
	return nil
}
