package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/unipair/match-service/internal/config"
	"github.com/unipair/match-service/internal/logger"
)

// Client enqueues match recompute jobs. It satisfies match.Enqueuer.
type Client struct {
	client *asynq.Client
}

// NewClient creates an enqueue-side client on the configured Redis.
func NewClient(cfg *config.Config) *Client {
	return &Client{client: asynq.NewClient(redisOpt(cfg))}
}

// EnqueueCalculateMatches queues a per-user recompute with the standard
// retry policy.
func (c *Client) EnqueueCalculateMatches(ctx context.Context, userID uint64) error {
	task, err := NewCalculateMatchesTask(userID)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(queueName),
		asynq.MaxRetry(maxRetry),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", TypeCalculateMatches, err)
	}

	logger.Debug("enqueued task", "type", TypeCalculateMatches, "task_id", info.ID, "user_id", userID)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// redisOpt maps app config onto the asynq Redis connection options. The
// queue shares the cache's Redis instance.
func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}
