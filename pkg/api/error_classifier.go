package api

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/valyala/fasthttp"
)

// FailureReason says why an upstream call produced no usable data.
type FailureReason int

const (
	ReasonNone FailureReason = iota
	ReasonTransport
	ReasonTimeout
	ReasonCanceled
	ReasonStatus
	ReasonMalformed
	ReasonEmpty
	ReasonUnconfigured
)

func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTransport:
		return "transport"
	case ReasonTimeout:
		return "timeout"
	case ReasonCanceled:
		return "canceled"
	case ReasonStatus:
		return "status"
	case ReasonMalformed:
		return "malformed"
	case ReasonEmpty:
		return "empty"
	case ReasonUnconfigured:
		return "unconfigured"
	default:
		return "unknown"
	}
}

// ClassifyError maps an upstream error to a FailureReason. Typed errors are
// checked first; anything else falls back to message inspection.
func ClassifyError(err error) FailureReason {
	if err == nil {
		return ReasonNone
	}

	var statusErr *StatusError
	var netErr net.Error

	switch {
	case errors.Is(err, ErrMissingAPIKey):
		return ReasonUnconfigured
	case errors.Is(err, ErrEmptyCompletion):
		return ReasonEmpty
	case errors.Is(err, ErrMalformedResponse):
		return ReasonMalformed
	case errors.As(err, &statusErr):
		return ReasonStatus
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, fasthttp.ErrTimeout),
		errors.Is(err, fasthttp.ErrDialTimeout):
		return ReasonTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return ReasonTimeout
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return ReasonTimeout
	}

	return ReasonTransport
}
