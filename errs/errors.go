// Package errs defines the error taxonomy shared by the retrieval core.
//
// Errors fall into four classes with distinct propagation rules:
//
//   - ErrConfiguration: fatal operator errors (missing credentials,
//     embedding dimension mismatch). Never swallowed, surfaced at startup
//     or as a hard failure.
//   - ErrUnavailable: an external dependency (embedding API, vector index)
//     failed or timed out. Retryable from the caller's point of view.
//   - ErrNotFound: a referenced entity has no stored state. Callers that
//     can degrade to an empty result should do so instead of failing.
//   - ErrInvalid: the request is malformed and was rejected before any
//     dependency call.
//
// Classification is done with errors.Is, so wrapped errors keep their class:
//
//	if errors.Is(err, errs.ErrUnavailable) {
//	    // return 503 to the caller
//	}
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks fatal, non-retryable misconfiguration.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnavailable marks a failed or timed-out dependency call.
	ErrUnavailable = errors.New("dependency unavailable")

	// ErrNotFound marks a missing entity. Not a failure for callers with a
	// degrade-to-empty policy.
	ErrNotFound = errors.New("not found")

	// ErrInvalid marks a request rejected by validation.
	ErrInvalid = errors.New("invalid request")
)

// Configf wraps a formatted message as a configuration error.
func Configf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConfiguration)...)
}

// Unavailablef wraps a formatted message as a dependency-unavailable error.
func Unavailablef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnavailable)...)
}

// Invalidf wraps a formatted message as a validation error.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalid)...)
}

// WrapUnavailable attaches the unavailable class to an underlying dependency
// error while keeping the cause inspectable.
func WrapUnavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %v: %w", op, err, ErrUnavailable)
}
