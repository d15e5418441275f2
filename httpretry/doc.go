// Package httpretry wraps an http.RoundTripper so outbound requests are
// retried under a bounded backoff schedule.
//
// Only rewindable requests with idempotent methods are retried; everything
// else is delegated to the base transport untouched. Responses carrying a
// retryable 5xx status are consumed and surfaced as *retry.Error.
package httpretry
