// Package backoff provides retry delay calculation with exponential growth
// and optional jitter.
//
// Use Delay inside retry loops and SleepWithContext to wait while respecting
// cancellation and deadlines.
package backoff
