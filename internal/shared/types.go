package shared

// Asynq task types.
const (
	TypeSendNewsletterDigest = "newsletter:send_digest"
	TypeSendWelcomeEmail     = "newsletter:send_welcome"
)

// Queue names and priorities are configured in cmd/worker.
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// DigestPayload triggers a newsletter digest run. The window is
// resolved at run time from config, so the payload stays empty for now.
type DigestPayload struct{}

// WelcomePayload is enqueued when a reader subscribes.
type WelcomePayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}
