package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind identifies the failure category of a probe. Its value doubles as the
// tag written into the persisted snapshot, e.g. "SKU-9 (Error: Timeout)".
type Kind string

const (
	KindTimeout     Kind = "Timeout"
	KindConnection  Kind = "Connection"
	KindForbidden   Kind = "Forbidden"
	KindNotFound    Kind = "NotFound"
	KindRateLimited Kind = "RateLimited"
	KindRequest     Kind = "Request"
)

// metricLabel returns the lowercase label used for metrics and logs.
func (k Kind) metricLabel() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "request"
	}
}

// Error is a classified probe failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind.metricLabel(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify wraps a raw transport error and/or HTTP status into a probe Error.
func Classify(err error, statusCode int) *Error {
	if err == nil && statusCode == 0 {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &Error{Kind: KindConnection, Err: err}
	}

	if statusCode != 0 {
		wrapped := err
		if wrapped == nil {
			wrapped = fmt.Errorf("http status %d", statusCode)
		}
		switch statusCode {
		case http.StatusForbidden:
			return &Error{Kind: KindForbidden, Err: wrapped}
		case http.StatusNotFound:
			return &Error{Kind: KindNotFound, Err: wrapped}
		case http.StatusTooManyRequests:
			return &Error{Kind: KindRateLimited, Err: wrapped}
		}
	}

	if err == nil {
		err = fmt.Errorf("http status %d", statusCode)
	}
	return &Error{Kind: KindRequest, Err: err}
}

// ReasonTag returns the snapshot tag for any probe failure. Unclassified
// errors fall back to the generic request kind.
func ReasonTag(err error) string {
	if err == nil {
		return ""
	}
	var perr *Error
	if errors.As(err, &perr) {
		return string(perr.Kind)
	}
	return string(KindRequest)
}
