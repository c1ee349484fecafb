package domain

import (
	"errors"
	"strings"
)

// Sentinel errors for the Bungie API failure modes that change app behavior
var (
	// ErrSystemDisabled means Bungie has taken the API offline (error code 5).
	// It is sticky: polling stops until a later manifest fetch succeeds.
	ErrSystemDisabled = errors.New("bungie API is disabled")

	// ErrUnavailable means the service returned 503.
	ErrUnavailable = errors.New("bungie API is unavailable")
)

// ErrorCategory buckets a failure for status display and retry policy.
type ErrorCategory int

const (
	CategoryNone ErrorCategory = iota
	CategorySystemDisabled
	CategoryUnavailable
	CategoryOther
)

// Classify maps an error from a manifest or character-data fetch to its
// category. The 503 check matches on message text because the upstream
// transport folds status codes into the error string.
func Classify(err error) ErrorCategory {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrSystemDisabled):
		return CategorySystemDisabled
	case errors.Is(err, ErrUnavailable), strings.Contains(err.Error(), "503"):
		return CategoryUnavailable
	default:
		return CategoryOther
	}
}

// AuthError wraps a failure from the auth gateway.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "authentication failed"
	}
	return "authentication failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error { return e.Err }
