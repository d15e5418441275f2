package backoff

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	mrand "math/rand/v2"
	"time"
)

// Delay calculates the exponential delay for a given attempt number.
// The delay is base * factor^attempt, clamped to [0, max].
//
// Negative attempts are treated as 0. A non-positive base returns 0.
// A factor below 1 is treated as 1, so the schedule never shrinks.
// Overflow (including float infinity) clamps to max.
func Delay(attempt int, base time.Duration, factor float64, max time.Duration) time.Duration {
	if base <= 0 || max <= 0 {
		return 0
	}

	if attempt < 0 {
		attempt = 0
	}

	if factor < 1 {
		factor = 1
	}

	scaled := float64(base) * math.Pow(factor, float64(attempt))
	if math.IsInf(scaled, 1) || scaled >= float64(max) {
		return max
	}

	return time.Duration(math.Round(scaled))
}

// FullJitter returns a random duration in the range [0, delay).
// Uses crypto/rand for randomness, falling back to math/rand if crypto fails.
// Returns 0 for zero or negative delays.
func FullJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(delay)))
	if err != nil {
		// Jitter quality is not worth stalling a retry loop over.
		return time.Duration(mrand.Int64N(int64(delay))) // #nosec G404
	}

	return time.Duration(n.Int64())
}

// DelayWithJitter combines Delay with full jitter.
// Returns a random duration in [0, Delay(attempt, base, factor, max)).
// This implements the "Full Jitter" strategy recommended by AWS.
func DelayWithJitter(attempt int, base time.Duration, factor float64, max time.Duration) time.Duration {
	return FullJitter(Delay(attempt, base, factor, max))
}

// SleepWithContext sleeps for the specified duration but respects context
// cancellation. Returns nil if the sleep completes, or an error wrapping
// ctx.Err() if the context is cancelled first.
// Returns immediately (nil) for zero or negative durations.
func SleepWithContext(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return nil
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context done: %w", ctx.Err())
	}
}
