package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorBackends = 3   // Indicates that fewer than two backends were resolvable.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// BackendErrorKind classifies how a single backend call failed. The kind is
// attached to the backend's response entry; it never aborts a comparison.
type BackendErrorKind string

// Backend error kinds cover the failure modes a backend call can resolve
// with. A response entry carrying one of these has empty text and is
// excluded from analysis.
const (
	// KindUnavailable indicates the backend could not be reached or
	// returned a server-side failure.
	KindUnavailable BackendErrorKind = "unavailable"
	// KindThrottled indicates the backend rejected the call due to rate
	// limiting or quota exhaustion.
	KindThrottled BackendErrorKind = "throttled"
	// KindBlocked indicates the backend refused the prompt for policy
	// reasons.
	KindBlocked BackendErrorKind = "blocked"
	// KindCancelled indicates the call was abandoned because the shared
	// cancellation signal fired before the backend completed.
	KindCancelled BackendErrorKind = "cancelled"
)

// BackendError wraps a failure from a single backend call while preserving
// the original cause and the classified kind. It is recovered locally into
// an error-tagged response entry and never propagates out of a fan-out.
type BackendError struct {
	// BackendID identifies the backend whose call failed.
	BackendID string
	// Kind classifies the failure mode.
	Kind BackendErrorKind
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a formatted message describing the backend failure.
func (e BackendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("backend %q %s: %v", e.BackendID, e.Kind, e.Cause)
	}
	return fmt.Sprintf("backend %q %s", e.BackendID, e.Kind)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e BackendError) Unwrap() error { return e.Cause }

// NewBackendError creates a BackendError for the given backend and kind.
func NewBackendError(backendID string, kind BackendErrorKind, cause error) error {
	return BackendError{BackendID: backendID, Kind: kind, Cause: cause}
}

// ClassifyBackendError extracts the BackendErrorKind from err. Context
// cancellation and deadline expiry map to KindCancelled; a BackendError
// anywhere in the chain contributes its own kind; everything else is
// KindUnavailable.
func ClassifyBackendError(err error) BackendErrorKind {
	if IsContextError(err) {
		return KindCancelled
	}
	var be BackendError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnavailable
}

// InsufficientBackendsError indicates that fewer than two backends were
// available for a comparison. It is surfaced to the caller as a refusal
// before any request is issued.
type InsufficientBackendsError struct {
	// Available is the number of backends that could be resolved.
	Available int
}

// Error returns a formatted message describing the refusal.
func (e InsufficientBackendsError) Error() string {
	return fmt.Sprintf("comparison requires at least 2 backends, have %d", e.Available)
}

// InsufficientDataError indicates that fewer than two successful responses
// were available for analysis. Callers should treat it as "analysis
// unavailable", not as a fatal condition.
type InsufficientDataError struct {
	// Successful is the number of successful responses available.
	Successful int
}

// Error returns a formatted message describing the condition.
func (e InsufficientDataError) Error() string {
	return fmt.Sprintf("analysis requires at least 2 successful responses, have %d", e.Successful)
}

// UnknownPromptError indicates an incremental backend addition was requested
// on a session that has no prompt to reuse.
type UnknownPromptError struct {
	// SessionID identifies the offending session.
	SessionID string
}

// Error returns a formatted message describing the refusal.
func (e UnknownPromptError) Error() string {
	return fmt.Sprintf("session %q has no prompt; run a comparison before adding backends", e.SessionID)
}

// MalformedPayloadError indicates a post-processing step expected structured
// output but received text it could not parse. It is absorbed into a
// degraded analysis result rather than surfaced as a failure.
type MalformedPayloadError struct {
	// BackendID identifies the backend whose output was unparseable.
	BackendID string
	// Detail explains what could not be parsed.
	Detail string
}

// Error returns a formatted message describing the malformed payload.
func (e MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload from backend %q: %s", e.BackendID, e.Detail)
}

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// TimeoutError represents a comparison timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
