// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--timeout"),
			expected: "invalid value 42 for flag --timeout",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestBackendError(t *testing.T) {
	t.Parallel()

	t.Run("Error includes backend id and kind", func(t *testing.T) {
		t.Parallel()
		err := NewBackendError("gpt-4o-mini", KindThrottled, errors.New("429 too many requests"))
		want := `backend "gpt-4o-mini" throttled: 429 too many requests`
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("Error without cause omits detail", func(t *testing.T) {
		t.Parallel()
		err := NewBackendError("claude-haiku", KindBlocked, nil)
		want := `backend "claude-haiku" blocked`
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("Unwrap exposes cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("connection refused")
		err := NewBackendError("local", KindUnavailable, cause)
		if !errors.Is(err, cause) {
			t.Error("expected errors.Is to find wrapped cause")
		}
	})
}

func TestClassifyBackendError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want BackendErrorKind
	}{
		{
			name: "Context canceled maps to cancelled",
			err:  context.Canceled,
			want: KindCancelled,
		},
		{
			name: "Deadline exceeded maps to cancelled",
			err:  context.DeadlineExceeded,
			want: KindCancelled,
		},
		{
			name: "BackendError contributes its own kind",
			err:  NewBackendError("b", KindThrottled, nil),
			want: KindThrottled,
		},
		{
			name: "Wrapped BackendError is still classified",
			err:  WrapError(NewBackendError("b", KindBlocked, nil), "submit"),
			want: KindBlocked,
		},
		{
			name: "Unknown error defaults to unavailable",
			err:  errors.New("boom"),
			want: KindUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyBackendError(tt.err); got != tt.want {
				t.Errorf("ClassifyBackendError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRefusalErrors(t *testing.T) {
	t.Parallel()

	t.Run("InsufficientBackendsError reports count", func(t *testing.T) {
		t.Parallel()
		err := InsufficientBackendsError{Available: 1}
		want := "comparison requires at least 2 backends, have 1"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("InsufficientDataError reports count", func(t *testing.T) {
		t.Parallel()
		err := InsufficientDataError{Successful: 1}
		want := "analysis requires at least 2 successful responses, have 1"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("UnknownPromptError names session", func(t *testing.T) {
		t.Parallel()
		err := UnknownPromptError{SessionID: "abc"}
		want := `session "abc" has no prompt; run a comparison before adding backends`
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("MalformedPayloadError names backend", func(t *testing.T) {
		t.Parallel()
		err := MalformedPayloadError{BackendID: "b", Detail: "no sections"}
		want := `malformed payload from backend "b": no sections`
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "comparison", Limit: 5 * time.Minute}
	want := `operation "comparison" timed out after 5m0s`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		if WrapError(nil, "context") != nil {
			t.Error("WrapError(nil) should return nil")
		}
	})

	t.Run("wrapped error preserves chain", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("original")
		err := WrapError(cause, "while doing %s", "work")
		if !errors.Is(err, cause) {
			t.Error("expected wrapped error to match original")
		}
		want := "while doing work: original"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped canceled", WrapError(context.Canceled, "fan-out"), true},
		{"other error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError() = %v, want %v", got, tt.want)
			}
		})
	}
}
