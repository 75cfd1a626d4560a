// Package models holds the rate limiting result and response types shared by
// the stores and the HTTP middleware.
package models

import (
	"math"
	"time"
)

// RateLimitResult is the outcome of one limiter check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed

	// Degraded is set when the answer came from the local fallback counter
	// because the shared store was unavailable.
	Degraded bool `json:"-"`
}

// Denied builds a result for a rejected request. RetryAfter is rounded up to
// whole seconds and is never below 1.
func Denied(limit int, resetAt, now time.Time) *RateLimitResult {
	retry := int(math.Ceil(resetAt.Sub(now).Seconds()))
	if retry < 1 {
		retry = 1
	}
	return &RateLimitResult{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: retry,
	}
}
