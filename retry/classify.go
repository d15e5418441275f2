package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
)

// Kind is a structured failure classification consumed by the default
// retryability policy.
type Kind uint8

const (
	// KindUnknown covers failures the library cannot classify. Never
	// retried by the default policy.
	KindUnknown Kind = iota

	// KindNetwork covers transport-level failures (dial errors, timeouts,
	// resets). Always retried by the default policy.
	KindNetwork

	// KindServer covers HTTP 5xx-class failures. Retried by the default
	// policy for 500, 502, 503 and 504.
	KindServer

	// KindClient covers HTTP 4xx-class failures. Never retried.
	KindClient
)

// String returns the string representation of a failure kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindClient:
		return "client"
	default:
		return "unknown"
	}
}

// Error is a failure tagged with its classification. It wraps the
// underlying cause so error identity is preserved through errors.Is/As.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

// Error returns the formatted failure message.
func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("http %d: %v", e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("http %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	default:
		return e.Kind.String() + " error"
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NetworkError tags err as a transport-level failure.
func NetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

// HTTPError tags err with an HTTP status code. The kind is derived from
// the status class: 5xx server, 4xx client, anything else unknown.
func HTTPError(status int, err error) *Error {
	kind := KindUnknown

	switch {
	case status >= http.StatusInternalServerError:
		kind = KindServer
	case status >= http.StatusBadRequest:
		kind = KindClient
	}

	return &Error{Kind: kind, StatusCode: status, Err: err}
}

// Classify inspects err and returns its failure kind. A tagged *Error
// wins; otherwise transport-level causes (net.Error, connection errnos,
// truncated reads) classify as network. Context cancellation and
// everything else classify as unknown.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindUnknown
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, io.ErrUnexpectedEOF):
		return KindNetwork
	}

	return KindUnknown
}

// RetryableStatus reports whether an HTTP status is worth another attempt.
// 501 and other exotic 5xx codes indicate conditions a retry cannot fix.
func RetryableStatus(status int) bool {
	switch status {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// DefaultShouldRetry is the default retryability policy: network failures
// always retry; server failures retry for 500, 502, 503 and 504 (or when
// no status is recorded); client and unclassified failures do not.
func DefaultShouldRetry(err error, _ int) bool {
	var tagged *Error
	if errors.As(err, &tagged) {
		switch tagged.Kind {
		case KindNetwork:
			return true
		case KindServer:
			return tagged.StatusCode == 0 || RetryableStatus(tagged.StatusCode)
		default:
			return false
		}
	}

	return Classify(err) == KindNetwork
}
