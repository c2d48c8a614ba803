package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/aicompare/internal/analysis"
	"github.com/agbru/aicompare/internal/config"
	apperrors "github.com/agbru/aicompare/internal/errors"
	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/ui"
)

func sampleResponses() []orchestration.AIResponse {
	return []orchestration.AIResponse{
		{
			BackendID:     "openai",
			DisplayName:   "GPT-4o mini",
			Text:          "A goroutine is a lightweight thread.",
			Latency:       420 * time.Millisecond,
			TokenEstimate: 9,
		},
		{
			BackendID:   "claude",
			DisplayName: "Claude Haiku",
			Latency:     100 * time.Millisecond,
			Err:         apperrors.NewBackendError("claude", apperrors.KindThrottled, errors.New("429")),
			Kind:        apperrors.KindThrottled,
		},
	}
}

func TestPresentComparisonTable(t *testing.T) {
	ui.InitTheme(false)

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(sampleResponses(), &buf)

	output := buf.String()
	for _, want := range []string{"Comparison Summary", "GPT-4o mini", "Claude Haiku", "✓ ok", "✗ throttled", "420ms"} {
		if !strings.Contains(output, want) {
			t.Errorf("table should contain %q, got:\n%s", want, output)
		}
	}
}

func TestPresentResponses_Modes(t *testing.T) {
	ui.InitTheme(false)

	t.Run("side-by-side shows bodies and failures", func(t *testing.T) {
		var buf bytes.Buffer
		p := CLIResultPresenter{Mode: config.DisplaySideBySide}
		p.PresentResponses(sampleResponses(), &buf)

		output := buf.String()
		if !strings.Contains(output, "lightweight thread") {
			t.Errorf("should contain response body, got:\n%s", output)
		}
		if !strings.Contains(output, "no response") {
			t.Errorf("should mark the failed backend, got:\n%s", output)
		}
	})

	t.Run("unified shows inline markers", func(t *testing.T) {
		var buf bytes.Buffer
		p := CLIResultPresenter{Mode: config.DisplayUnified}
		p.PresentResponses(sampleResponses(), &buf)

		output := buf.String()
		if !strings.Contains(output, "[GPT-4o mini]") {
			t.Errorf("should contain unified marker, got:\n%s", output)
		}
	})

	t.Run("analysis-only suppresses bodies", func(t *testing.T) {
		var buf bytes.Buffer
		p := CLIResultPresenter{Mode: config.DisplayAnalysisOnly}
		p.PresentResponses(sampleResponses(), &buf)

		if buf.Len() != 0 {
			t.Errorf("analysis-only mode should print nothing, got:\n%s", buf.String())
		}
	})
}

func TestPresentAnalysis(t *testing.T) {
	ui.InitTheme(false)

	t.Run("nil result", func(t *testing.T) {
		var buf bytes.Buffer
		CLIResultPresenter{}.PresentAnalysis(nil, nil, &buf)

		if !strings.Contains(buf.String(), "Analysis unavailable") {
			t.Errorf("should explain why analysis is missing, got:\n%s", buf.String())
		}
	})

	t.Run("full result", func(t *testing.T) {
		var buf bytes.Buffer
		result := &analysis.Result{
			OverallSimilarity: 0.72,
			CommonPoints:      []string{`Both responses mention "goroutine"`},
			KeyDifferences: []analysis.Difference{
				{Aspect: "Length", Description: "responses differ significantly in length"},
			},
			CodeAnalysis: map[string]analysis.CodeStats{
				"openai": {BlockCount: 1, Languages: []string{"go"}, Complexity: analysis.ComplexityLow},
			},
		}
		CLIResultPresenter{}.PresentAnalysis(result, nil, &buf)

		output := buf.String()
		for _, want := range []string{"72%", "goroutine", "Length", "go", "Low"} {
			if !strings.Contains(output, want) {
				t.Errorf("analysis output should contain %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("explanations only in explain mode", func(t *testing.T) {
		explanations := map[string]analysis.Explanation{
			"openai": {
				Introduction: "Goroutines are cheap.",
				KeyPoints:    []string{"started with the go keyword"},
				Clarity:      7,
				Depth:        analysis.DepthIntermediate,
			},
		}
		result := &analysis.Result{CodeAnalysis: map[string]analysis.CodeStats{}}

		var withExplain bytes.Buffer
		CLIResultPresenter{Explain: true}.PresentAnalysis(result, explanations, &withExplain)
		if !strings.Contains(withExplain.String(), "clarity 7/10") {
			t.Errorf("explain mode should render explanations, got:\n%s", withExplain.String())
		}
		if !strings.Contains(withExplain.String(), "Intermediate") {
			t.Errorf("explain mode should render depth, got:\n%s", withExplain.String())
		}

		var withoutExplain bytes.Buffer
		CLIResultPresenter{Explain: false}.PresentAnalysis(result, explanations, &withoutExplain)
		if strings.Contains(withoutExplain.String(), "Explanations") {
			t.Error("explanations should be hidden outside explain mode")
		}
	})
}

func TestHandleError(t *testing.T) {
	ui.InitTheme(false)

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"nil", nil, apperrors.ExitSuccess},
		{"config", apperrors.NewConfigError("bad flag"), apperrors.ExitErrorConfig},
		{"insufficient backends", apperrors.InsufficientBackendsError{Available: 1}, apperrors.ExitErrorBackends},
		{"insufficient data", apperrors.InsufficientDataError{Successful: 1}, apperrors.ExitErrorGeneric},
		{"timeout error", apperrors.TimeoutError{Operation: "comparison", Limit: time.Minute}, apperrors.ExitErrorTimeout},
		{"deadline", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			got := CLIResultPresenter{}.HandleError(tt.err, &buf)
			if got != tt.wantCode {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.wantCode)
			}
			if tt.err != nil && buf.Len() == 0 {
				t.Error("non-nil error should produce a message")
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	t.Parallel()

	if got := padRight("x", 3); got != "x   " {
		t.Errorf("padRight(x, 3) = %q", got)
	}
	if got := padRight("x", 0); got != "x" {
		t.Errorf("padRight(x, 0) = %q", got)
	}
	if got := padRight("x", -1); got != "x" {
		t.Errorf("padRight(x, -1) = %q", got)
	}
}
