package api

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey     = errors.New("api key not configured")
	ErrMalformedResponse = errors.New("malformed upstream response")
	ErrEmptyCompletion   = errors.New("completion returned no content")
	ErrUnknownProvider   = errors.New("unknown completion provider")
)

// StatusError is returned when an upstream answers with a non-200 status.
type StatusError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Message)
}
