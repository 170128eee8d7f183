package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/unipair/match-service/internal/config"
)

// NewScheduler registers the nightly bulk sweep on the configured cron
// expression (default 03:00 UTC). The sweep itself already tolerates
// per-user failures, so the task runs without retries.
func NewScheduler(cfg *config.Config) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt(cfg), &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	_, err := scheduler.Register(cfg.Queue.SweepCron, NewCalculateAllMatchesTask(),
		asynq.Queue(queueName),
		asynq.MaxRetry(0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register bulk sweep: %w", err)
	}

	return scheduler, nil
}
