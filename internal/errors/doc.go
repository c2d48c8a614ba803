// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// backend failure, analysis refusal, etc.) and for carrying the underlying
// cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Error types that carry a cause implement the Unwrap() method to support
// errors.Is() and errors.As().
//
// Nothing in this package represents a process-fatal condition: per-backend
// failures are recovered into error-tagged response entries, and analysis
// refusals leave the response data itself valid.
package apperrors
