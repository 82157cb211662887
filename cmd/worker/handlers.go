package main

import (
	"github.com/hibiken/asynq"

	"inkwell-backend/internal/domains/subscription/job"
	"inkwell-backend/internal/infrastructure/email"
	"inkwell-backend/internal/shared"
	"inkwell-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	digest  *job.DigestHandler
	welcome *job.WelcomeHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	// Initialize services
	emailSvc := email.NewSMTPEmailService(
		c.Config.Email.SMTPHost,
		c.Config.Email.SMTPPort,
		c.Config.Email.From,
	)

	// Create handlers
	return &HandlerRegistry{
		digest: job.NewDigestHandler(
			c.SubscriptionRepo,
			c.WritingRepo,
			c.UserRepo,
			emailSvc,
			c.Config.Newsletter,
		),
		welcome: job.NewWelcomeHandler(emailSvc),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Newsletter tasks
	mux.HandleFunc(shared.TypeSendNewsletterDigest, h.digest.ProcessTask)
	mux.HandleFunc(shared.TypeSendWelcomeEmail, h.welcome.ProcessTask)
}
