package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LerianStudio/lib-retry/backoff"
	"github.com/LerianStudio/lib-retry/log"
)

// Operation is a repeatable unit of work. Each invocation is a fresh,
// independent attempt; side effects occur once per attempt.
type Operation[T any] func(ctx context.Context) (T, error)

// PanicError normalizes a panicking operation into an error, preserving
// the original panic payload in Value.
type PanicError struct {
	Value any
}

// Error returns the formatted panic message.
func (e *PanicError) Error() string {
	return fmt.Sprintf("operation panicked: %v", e.Value)
}

// Unwrap returns the panic payload when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}

// Do executes op under cfg's backoff schedule until it succeeds, the
// failure is ruled non-retryable, or the attempt budget is spent.
//
// On success the value is returned immediately. The terminal failure is
// always the last one observed, unwrapped and unmodified, so callers see
// the same error shape a single unretried call would have produced. The
// one exception is cancellation during a backoff sleep, where the sleep
// error and the last failure are joined so both stay matchable.
//
// Attempts within one invocation are strictly sequential. Concurrent
// invocations share no state.
func Do[T any](ctx context.Context, cfg Config, op Operation[T]) (T, error) {
	cfg = cfg.withDefaults()

	var zero T

	for attempt := 0; ; attempt++ {
		result, err := runAttempt(ctx, op)
		if err == nil {
			return result, nil
		}

		if !cfg.ShouldRetry(err, attempt) || attempt >= cfg.MaxAttempts-1 {
			return zero, err
		}

		delay := backoff.Delay(attempt, cfg.BaseDelay, cfg.BackoffFactor, cfg.MaxDelay)
		notifyRetry(ctx, cfg, attempt, delay, err)

		if sleepErr := cfg.Sleep(ctx, delay); sleepErr != nil {
			return zero, errors.Join(sleepErr, err)
		}
	}
}

// Run is the error-only convenience form of Do.
func Run(ctx context.Context, cfg Config, op func(ctx context.Context) error) error {
	_, err := Do(ctx, cfg, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})

	return err
}

// Wrap returns a function that runs fn under cfg's retry policy. Each
// call of the returned function is an independent retry sequence with its
// own attempt counter. Functions taking more than one argument close over
// the extras.
func Wrap[A, T any](cfg Config, fn func(ctx context.Context, arg A) (T, error)) func(ctx context.Context, arg A) (T, error) {
	return func(ctx context.Context, arg A) (T, error) {
		return Do(ctx, cfg, func(ctx context.Context) (T, error) {
			return fn(ctx, arg)
		})
	}
}

// runAttempt invokes op, converting a panic into a *PanicError so the
// retryability policy sees a uniform failure representation.
func runAttempt[T any](ctx context.Context, op Operation[T]) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()

	return op(ctx)
}

// notifyRetry emits the pre-sleep diagnostics. A panicking sink must not
// abort the retry loop.
func notifyRetry(ctx context.Context, cfg Config, attempt int, delay time.Duration, err error) {
	defer func() {
		_ = recover()
	}()

	cfg.Logger.Log(ctx, log.LevelWarn, "operation failed, retrying",
		log.Int("attempt", attempt),
		log.Duration("delay", delay),
		log.Err(err),
	)

	if cfg.OnRetry != nil {
		cfg.OnRetry(attempt, delay, err)
	}
}
