package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/unipair/match-service/internal/app"
	"github.com/unipair/match-service/internal/config"
	"github.com/unipair/match-service/internal/repository"
	"github.com/unipair/match-service/internal/service/match"
)

// Calculator is the slice of the match service the worker needs.
type Calculator interface {
	CalculateMatches(ctx context.Context, userID uint64) ([]match.Candidate, error)
	SaveMatches(ctx context.Context, userID uint64, candidates []match.Candidate) error
}

// Handler processes match recompute jobs. Job failures are operational,
// never surfaced synchronously to any user: a failed job retries per the
// backoff policy and is logged on final exhaustion.
type Handler struct {
	appCtx        *app.AppContext
	calc          Calculator
	profiles      *repository.ProfileRepository
	notifications *repository.NotificationRepository

	// sweepDelay rate-limits the bulk sweep so it doesn't hammer the
	// profile store and match store.
	sweepDelay time.Duration
}

// NewHandler creates a worker handler with dependencies from AppContext.
func NewHandler(appCtx *app.AppContext, calc Calculator) *Handler {
	return &Handler{
		appCtx:        appCtx,
		calc:          calc,
		profiles:      repository.NewProfileRepository(appCtx.DB),
		notifications: repository.NewNotificationRepository(appCtx.DB),
		sweepDelay:    100 * time.Millisecond,
	}
}

// HandleCalculateMatches recomputes and persists one user's match set.
// When the new set is non-empty a MATCH_FOUND notification row is written
// for the delivery subsystem.
func (h *Handler) HandleCalculateMatches(ctx context.Context, t *asynq.Task) error {
	var p CalculateMatchesPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("invalid %s payload: %v: %w", TypeCalculateMatches, err, asynq.SkipRetry)
	}

	h.appCtx.Logger.Info("processing match calculation", "user_id", p.UserID)

	if err := h.recomputeUser(ctx, p.UserID, true); err != nil {
		h.appCtx.Logger.Error("match calculation failed", "user_id", p.UserID, "err", err)
		return err
	}
	return nil
}

// HandleCalculateAllMatches runs the scheduled bulk sweep over all
// eligible users. A single user's failure is counted, not fatal.
func (h *Handler) HandleCalculateAllMatches(ctx context.Context, _ *asynq.Task) error {
	h.appCtx.Logger.Info("processing bulk match calculation")

	processed, failed, err := h.Sweep(ctx)
	if err != nil {
		return err
	}

	h.appCtx.Logger.Info("bulk match calculation complete",
		"processed", processed, "failed", failed)
	return nil
}

// Sweep recomputes persisted matches for every active, visibility-eligible
// user, with an inter-user delay to bound load. processed+failed always
// equals the eligible population size.
func (h *Handler) Sweep(ctx context.Context) (processed, failed int, err error) {
	ids, err := h.profiles.EligibleUserIDs(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to enumerate eligible users: %w", err)
	}

	for _, userID := range ids {
		select {
		case <-ctx.Done():
			return processed, failed, ctx.Err()
		default:
		}

		if err := h.recomputeUser(ctx, userID, false); err != nil {
			h.appCtx.Logger.Error("sweep user failed", "user_id", userID, "err", err)
			failed++
		} else {
			processed++
		}

		time.Sleep(h.sweepDelay)
	}
	return processed, failed, nil
}

// recomputeUser is the shared job body: recompute, persist wholesale, and
// optionally notify. Notification failures are logged, never propagated.
func (h *Handler) recomputeUser(ctx context.Context, userID uint64, notify bool) error {
	candidates, err := h.calc.CalculateMatches(ctx, userID)
	if err != nil {
		return fmt.Errorf("calculate matches for user %d: %w", userID, err)
	}

	if err := h.calc.SaveMatches(ctx, userID, candidates); err != nil {
		return fmt.Errorf("save matches for user %d: %w", userID, err)
	}

	if notify && len(candidates) > 0 {
		err := h.notifications.Create(ctx, userID,
			"MATCH_FOUND",
			"New matches found!",
			fmt.Sprintf("%d new match suggestions are available.", len(candidates)),
		)
		if err != nil {
			h.appCtx.Logger.Warn("failed to create match notification", "user_id", userID, "err", err)
		}
	}

	h.appCtx.Logger.Info("completed match calculation",
		"user_id", userID, "match_count", len(candidates))
	return nil
}

// NewServer builds the asynq worker server with the retry/backoff policy.
func NewServer(cfg *config.Config) *asynq.Server {
	return asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency:    cfg.Queue.Concurrency,
		Queues:         map[string]int{queueName: 1},
		RetryDelayFunc: retryDelay,
	})
}

// NewMux registers the handler for each task type.
func NewMux(h *Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCalculateMatches, h.HandleCalculateMatches)
	mux.HandleFunc(TypeCalculateAllMatches, h.HandleCalculateAllMatches)
	return mux
}
