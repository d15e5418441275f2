// Package retry executes operations under a bounded exponential backoff
// schedule with a pluggable retryability decision.
//
// Typical usage:
//
//	resp, err := retry.Do(ctx, retry.StandardConfig(), func(ctx context.Context) (*Quote, error) {
//	    return client.FetchQuote(ctx, symbol)
//	})
//
// Failures are classified structurally (see Kind) rather than by message
// matching: tag outbound failures with NetworkError or HTTPError so the
// default policy can tell a transient 503 from a permanent 404.
package retry
