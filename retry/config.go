package retry

import (
	"context"
	"time"

	"github.com/LerianStudio/lib-retry/backoff"
	"github.com/LerianStudio/lib-retry/log"
)

// Default configuration values applied by withDefaults.
const (
	DefaultMaxAttempts   = 3
	DefaultBaseDelay     = 1 * time.Second
	DefaultMaxDelay      = 30 * time.Second
	DefaultBackoffFactor = 2.0
)

// Config holds retry behavior configuration. The zero value of any field
// falls back to its documented default, so callers only set what they
// need to change.
type Config struct {
	// MaxAttempts is the total number of execution attempts, including
	// the first one. Default 3.
	MaxAttempts int

	// BaseDelay is the delay before the first retry. Default 1s.
	BaseDelay time.Duration

	// MaxDelay caps every computed delay. Default 30s.
	MaxDelay time.Duration

	// BackoffFactor is the multiplicative delay growth per attempt.
	// Default 2.
	BackoffFactor float64

	// ShouldRetry decides whether the failure of the given zero-based
	// attempt warrants another try. Default DefaultShouldRetry.
	ShouldRetry func(err error, attempt int) bool

	// Logger receives a diagnostic entry before every retry. Best-effort:
	// a broken sink never alters control flow. Default no-op.
	Logger log.Logger

	// OnRetry, when set, is invoked with the attempt index, the computed
	// delay and the failure before every retry sleep.
	OnRetry func(attempt int, delay time.Duration, err error)

	// Sleep suspends between attempts. Default backoff.SleepWithContext.
	// Inject a fake in tests to observe delays without waiting.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = DefaultMaxAttempts
	}

	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}

	if c.MaxDelay <= 0 {
		c.MaxDelay = DefaultMaxDelay
	}

	if c.BackoffFactor < 1 {
		c.BackoffFactor = DefaultBackoffFactor
	}

	if c.ShouldRetry == nil {
		c.ShouldRetry = DefaultShouldRetry
	}

	if c.Logger == nil {
		c.Logger = log.NewNop()
	}

	if c.Sleep == nil {
		c.Sleep = backoff.SleepWithContext
	}

	return c
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   DefaultMaxAttempts,
		BaseDelay:     DefaultBaseDelay,
		MaxDelay:      DefaultMaxDelay,
		BackoffFactor: DefaultBackoffFactor,
	}
}

// CriticalConfig is the preset for operations that must eventually land,
// such as payment submissions.
func CriticalConfig() Config {
	return Config{
		MaxAttempts:   5,
		BaseDelay:     1 * time.Second,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2,
	}
}

// StandardConfig is the preset for ordinary service calls.
func StandardConfig() Config {
	return Config{
		MaxAttempts:   3,
		BaseDelay:     1 * time.Second,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2,
	}
}

// FastConfig is the preset for latency-sensitive paths where waiting is
// worse than failing.
func FastConfig() Config {
	return Config{
		MaxAttempts:   2,
		BaseDelay:     500 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2,
	}
}
