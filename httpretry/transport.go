package httpretry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/LerianStudio/lib-retry/retry"
)

// drainLimit bounds how much of a discarded response body is read before
// closing, so the underlying connection can still be reused.
const drainLimit = 64 * 1024

// idempotentMethods are the methods retried by default (RFC 9110 §9.2.2).
var idempotentMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodOptions,
	http.MethodTrace,
	http.MethodPut,
	http.MethodDelete,
}

// Transport is an http.RoundTripper that retries eligible requests.
type Transport struct {
	// Base performs the actual round trips. nil means http.DefaultTransport.
	Base http.RoundTripper

	// Config is the retry policy. Zero-value fields fall back to the
	// documented defaults.
	Config retry.Config

	// Methods overrides the set of methods eligible for retry.
	// Empty means the idempotent methods.
	Methods []string
}

// NewTransport wraps base with the given retry policy.
func NewTransport(base http.RoundTripper, cfg retry.Config) *Transport {
	return &Transport{Base: base, Config: cfg}
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}

	return http.DefaultTransport
}

// eligible reports whether a request can be safely re-sent: its method
// must be in the retryable set and its body must be rewindable.
func (t *Transport) eligible(req *http.Request) bool {
	methods := t.Methods
	if len(methods) == 0 {
		methods = idempotentMethods
	}

	if !slices.Contains(methods, req.Method) {
		return false
	}

	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

// RoundTrip implements http.RoundTripper. Transport-level failures are
// tagged as network errors and statuses in the retryable 5xx set are
// consumed and tagged with their status code; both feed the configured
// retry policy. All other responses pass through unchanged.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.eligible(req) {
		return t.base().RoundTrip(req)
	}

	return retry.Do(req.Context(), t.Config, func(_ context.Context) (*http.Response, error) {
		attempt, err := rewound(req)
		if err != nil {
			return nil, err
		}

		resp, err := t.base().RoundTrip(attempt)
		if err != nil {
			return nil, retry.NetworkError(err)
		}

		if retry.RetryableStatus(resp.StatusCode) {
			drain(resp)

			return nil, retry.HTTPError(resp.StatusCode, nil)
		}

		return resp, nil
	})
}

// rewound clones req with a fresh body so the attempt owns its copy.
func rewound(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())

	if req.Body == nil || req.Body == http.NoBody || req.GetBody == nil {
		return clone, nil
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("rewind request body: %w", err)
	}

	clone.Body = body

	return clone, nil
}

// drain consumes and closes a discarded response body.
func drain(resp *http.Response) {
	if resp.Body == nil {
		return
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
	_ = resp.Body.Close()
}
