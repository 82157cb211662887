package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"inkwell-backend/internal/config"
	"inkwell-backend/internal/shared"
	"inkwell-backend/pkg/logger"
)

// Scheduler registers the periodic newsletter tasks with asynq.
type Scheduler struct {
	scheduler        *asynq.Scheduler
	newsletterConfig config.NewsletterConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, newsletterConfig config.NewsletterConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:        scheduler,
		newsletterConfig: newsletterConfig,
	}
}

// RegisterJobs wires every recurring task. Currently that is just the
// weekly digest.
func (s *Scheduler) RegisterJobs() error {
	return s.registerDigestJob()
}

func (s *Scheduler) registerDigestJob() error {
	payload, err := json.Marshal(shared.DigestPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSendNewsletterDigest, payload)

	_, err = s.scheduler.Register(
		s.newsletterConfig.DigestSchedule,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register newsletter digest job", err)
		return err
	}

	logger.Info("Registered newsletter digest job", map[string]interface{}{
		"schedule": s.newsletterConfig.DigestSchedule,
	})
	return nil
}

// Run blocks until the scheduler is stopped.
func (s *Scheduler) Run() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
