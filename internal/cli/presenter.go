package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agbru/aicompare/internal/analysis"
	"github.com/agbru/aicompare/internal/config"
	apperrors "github.com/agbru/aicompare/internal/errors"
	"github.com/agbru/aicompare/internal/format"
	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/progress"
	"github.com/agbru/aicompare/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output. It wraps the DisplayProgress function to provide a spinner with a
// live settled-count display while backends are responding.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner for in-flight backend calls.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.Update, numBackends int, out io.Writer) {
	DisplayProgress(wg, updates, numBackends, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI
// output. It provides formatted, colorized output for comparison results in
// the command-line interface. Mode selects how response bodies are
// rendered; Explain adds the explanatory breakdown to the analysis section.
type CLIResultPresenter struct {
	Mode    config.DisplayMode
	Explain bool
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter  = CLIResultPresenter{}
	_ orchestration.LatencyFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler     = CLIResultPresenter{}
)

// PresentComparisonTable displays the comparison summary table with backend
// names, latencies, token estimates, and status in a formatted tabular
// layout. Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(responses []orchestration.AIResponse, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	// Find the maximum column widths for proper alignment
	maxNameLen := 7    // "Backend" header length
	maxLatencyLen := 7 // "Latency" header length
	maxTokenLen := 6   // "Tokens" header length
	for _, resp := range responses {
		if len(resp.DisplayName) > maxNameLen {
			maxNameLen = len(resp.DisplayName)
		}
		latency := format.FormatLatency(resp.Latency)
		if len(latency) > maxLatencyLen {
			maxLatencyLen = len(latency)
		}
		tokens := format.FormatTokenEstimate(resp.TokenEstimate)
		if len(tokens) > maxTokenLen {
			maxTokenLen = len(tokens)
		}
	}

	// Print header with proper padding
	fmt.Fprintf(out, "%sBackend%s%s   %sLatency%s%s   %sTokens%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-7),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxLatencyLen-7),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxTokenLen-6),
		ui.ColorUnderline(), ui.ColorReset())

	// Print each response row
	for _, resp := range responses {
		var status string
		if resp.Failed() {
			status = fmt.Sprintf("%s✗ %s%s", ui.ColorError(), resp.Kind, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✓ ok%s", ui.ColorSuccess(), ui.ColorReset())
		}
		latency := format.FormatLatency(resp.Latency)
		tokens := format.FormatTokenEstimate(resp.TokenEstimate)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorPrimary(), resp.DisplayName, ui.ColorReset(), padRight("", maxNameLen-len(resp.DisplayName)),
			ui.ColorWarning(), latency, ui.ColorReset(), padRight("", maxLatencyLen-len(latency)),
			ui.ColorSecondary(), tokens, ui.ColorReset(), padRight("", maxTokenLen-len(tokens)),
			status)
	}
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResponses displays the response bodies according to the configured
// display mode. In analysis-only mode the bodies are suppressed entirely.
func (p CLIResultPresenter) PresentResponses(responses []orchestration.AIResponse, out io.Writer) {
	switch p.Mode {
	case config.DisplayAnalysisOnly:
		return
	case config.DisplayUnified:
		p.presentUnified(responses, out)
	default:
		p.presentSideBySide(responses, out)
	}
}

// presentSideBySide renders each response under its own bordered header.
func (p CLIResultPresenter) presentSideBySide(responses []orchestration.AIResponse, out io.Writer) {
	for _, resp := range responses {
		fmt.Fprintf(out, "\n%s─── %s%s%s%s (%s) ───%s\n",
			ui.ColorSecondary(), ui.ColorReset(),
			ui.ColorPrimary()+ui.ColorBold(), resp.DisplayName, ui.ColorReset(),
			format.FormatLatency(resp.Latency), ui.ColorReset())
		if resp.Failed() {
			fmt.Fprintf(out, "%s(no response: %v)%s\n", ui.ColorError(), resp.Err, ui.ColorReset())
			continue
		}
		fmt.Fprintln(out, strings.TrimRight(resp.Text, "\n"))
	}
}

// presentUnified renders all responses as one stream with inline markers.
func (p CLIResultPresenter) presentUnified(responses []orchestration.AIResponse, out io.Writer) {
	fmt.Fprintf(out, "\n--- Responses ---\n")
	for _, resp := range responses {
		fmt.Fprintf(out, "\n%s[%s]%s ", ui.ColorPrimary()+ui.ColorBold(), resp.DisplayName, ui.ColorReset())
		if resp.Failed() {
			fmt.Fprintf(out, "%s(no response: %v)%s\n", ui.ColorError(), resp.Err, ui.ColorReset())
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.TrimRight(resp.Text, "\n"))
	}
}

// PresentAnalysis displays the cross-response analysis: similarity, common
// points, key differences, and per-backend code stats. When the presenter
// is in explain mode and explanations are available, the explanatory
// breakdown follows.
func (p CLIResultPresenter) PresentAnalysis(result *analysis.Result, explanations map[string]analysis.Explanation, out io.Writer) {
	fmt.Fprintf(out, "\n--- Analysis ---\n")

	if result == nil {
		fmt.Fprintf(out, "%sAnalysis unavailable: fewer than two backends responded.%s\n",
			ui.ColorWarning(), ui.ColorReset())
		return
	}

	fmt.Fprintf(out, "Overall similarity: %s%.0f%%%s\n",
		similarityColor(result.OverallSimilarity), result.OverallSimilarity*100, ui.ColorReset())

	if len(result.CommonPoints) > 0 {
		fmt.Fprintf(out, "\n%sCommon points:%s\n", ui.ColorBold(), ui.ColorReset())
		for _, point := range result.CommonPoints {
			fmt.Fprintf(out, "  %s•%s %s\n", ui.ColorSuccess(), ui.ColorReset(), point)
		}
	}

	if len(result.KeyDifferences) > 0 {
		fmt.Fprintf(out, "\n%sKey differences:%s\n", ui.ColorBold(), ui.ColorReset())
		for _, diff := range result.KeyDifferences {
			fmt.Fprintf(out, "  %s%s%s: %s\n",
				ui.ColorWarning(), diff.Aspect, ui.ColorReset(), diff.Description)
		}
	}

	if len(result.CodeAnalysis) > 0 {
		fmt.Fprintf(out, "\n%sCode:%s\n", ui.ColorBold(), ui.ColorReset())
		for _, id := range sortedKeys(result.CodeAnalysis) {
			stats := result.CodeAnalysis[id]
			langs := "none"
			if len(stats.Languages) > 0 {
				langs = strings.Join(stats.Languages, ", ")
			}
			fmt.Fprintf(out, "  %s%s%s: %d block(s), languages: %s, complexity: %s\n",
				ui.ColorPrimary(), id, ui.ColorReset(), stats.BlockCount, langs, stats.Complexity)
		}
	}

	if p.Explain && len(explanations) > 0 {
		p.presentExplanations(explanations, out)
	}
}

// presentExplanations renders the explanatory view of each response.
func (CLIResultPresenter) presentExplanations(explanations map[string]analysis.Explanation, out io.Writer) {
	fmt.Fprintf(out, "\n--- Explanations ---\n")
	for _, id := range sortedKeys(explanations) {
		exp := explanations[id]
		fmt.Fprintf(out, "\n%s%s%s (clarity %d/10, %s)\n",
			ui.ColorPrimary()+ui.ColorBold(), id, ui.ColorReset(), exp.Clarity, exp.Depth)
		if exp.Introduction != "" {
			fmt.Fprintf(out, "  %s\n", exp.Introduction)
		}
		for _, point := range exp.KeyPoints {
			fmt.Fprintf(out, "  %s-%s %s\n", ui.ColorInfo(), ui.ColorReset(), point)
		}
	}
}

// similarityColor picks the color for a similarity score: green when the
// responses broadly agree, yellow in the middle, red when they diverge.
func similarityColor(similarity float64) string {
	switch {
	case similarity >= 0.6:
		return ui.ColorSuccess()
	case similarity >= 0.3:
		return ui.ColorWarning()
	default:
		return ui.ColorError()
	}
}

// sortedKeys returns map keys in sorted order for stable output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatLatency formats a latency for display using the standard format.
func (CLIResultPresenter) FormatLatency(d time.Duration) string {
	return format.FormatLatency(d)
}

// HandleError maps a terminal error to an exit code, writing a colorized
// user-facing message along the way. A nil error yields ExitSuccess.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}

	var (
		configErr  apperrors.ConfigError
		availErr   apperrors.InsufficientBackendsError
		dataErr    apperrors.InsufficientDataError
		timeoutErr apperrors.TimeoutError
	)
	switch {
	case errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%s%v%s\n", ui.ColorError(), err, ui.ColorReset())
		return apperrors.ExitErrorTimeout
	case errors.As(err, &configErr):
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		return apperrors.ExitErrorConfig
	case errors.As(err, &availErr):
		fmt.Fprintf(out, "%s%v%s\n", ui.ColorError(), err, ui.ColorReset())
		return apperrors.ExitErrorBackends
	case errors.As(err, &dataErr):
		fmt.Fprintf(out, "%s%v%s\n", ui.ColorWarning(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sTimed out waiting for backends: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		return apperrors.ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sCanceled.%s\n", ui.ColorWarning(), ui.ColorReset())
		return apperrors.ExitErrorCanceled
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
}
