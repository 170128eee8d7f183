package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task types handled by the match worker.
const (
	TypeCalculateMatches    = "match:calculate"
	TypeCalculateAllMatches = "match:calculate-all"
)

const (
	// queueName is the asynq queue all match jobs go through.
	queueName = "matches"

	// maxRetry and retryBase define the retry policy: up to 3 retries with
	// exponential backoff starting at 2s.
	maxRetry  = 3
	retryBase = 2 * time.Second
)

// CalculateMatchesPayload is the payload of a per-user recompute job.
type CalculateMatchesPayload struct {
	UserID uint64 `json:"userId"`
}

// NewCalculateMatchesTask builds a recompute task for one user.
func NewCalculateMatchesTask(userID uint64) (*asynq.Task, error) {
	payload, err := json.Marshal(CalculateMatchesPayload{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task payload: %w", err)
	}
	return asynq.NewTask(TypeCalculateMatches, payload), nil
}

// NewCalculateAllMatchesTask builds the bulk sweep task. It carries no
// payload; the handler enumerates eligible users itself.
func NewCalculateAllMatchesTask() *asynq.Task {
	return asynq.NewTask(TypeCalculateAllMatches, nil)
}

// retryDelay implements exponential backoff: 2s, 4s, 8s, ...
func retryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	d := retryBase
	for i := 1; i < n; i++ {
		d *= 2
	}
	return d
}
