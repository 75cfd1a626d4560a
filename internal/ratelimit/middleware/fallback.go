package middleware

import (
	"context"
	"log/slog"
	"time"

	"auditarmor/internal/ratelimit/models"
	"auditarmor/pkg/platform/circuit"
)

// FallbackStore answers from a shared primary store and switches to a local
// store while the primary is failing. Limits stay enforced per instance
// during an outage instead of being dropped entirely.
type FallbackStore struct {
	primary  BucketStore
	fallback BucketStore
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

// NewFallbackStore wraps primary with a circuit breaker that routes to
// fallback after consecutive primary errors.
func NewFallbackStore(primary, fallback BucketStore, breaker *circuit.Breaker, logger *slog.Logger) *FallbackStore {
	return &FallbackStore{
		primary:  primary,
		fallback: fallback,
		breaker:  breaker,
		logger:   logger,
	}
}

func (f *FallbackStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	if f.breaker.Allow() {
		result, err := f.primary.Allow(ctx, key, limit, window)
		if err == nil {
			if _, change := f.breaker.RecordSuccess(); change.Closed {
				f.logger.InfoContext(ctx, "rate limit store recovered", "store", f.breaker.Name())
			}
			return result, nil
		}
		if _, change := f.breaker.RecordFailure(); change.Opened {
			f.logger.WarnContext(ctx, "rate limit store failing, using local fallback",
				"store", f.breaker.Name(),
				"error", err,
			)
		}
	}

	result, err := f.fallback.Allow(ctx, key, limit, window)
	if err != nil {
		return nil, err
	}
	result.Degraded = true
	return result, nil
}
