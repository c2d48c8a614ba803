package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/aicompare/internal/analysis"
	"github.com/agbru/aicompare/internal/progress"
)

// ProgressReporter defines the interface for displaying fan-out progress.
// It decouples the orchestration layer from the presentation layer: the
// orchestrator feeds lifecycle events into a channel and the reporter owns
// their visual representation (spinner, TUI panel, nothing at all).
type ProgressReporter interface {
	// DisplayProgress consumes progress updates until the channel is
	// closed. It runs in its own goroutine and signals wg when done.
	DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.Update, numBackends int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, updates <-chan progress.Update, numBackends int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.Update, numBackends int, out io.Writer) {
	f(wg, updates, numBackends, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range updates {
	}
}

// ResultPresenter defines the interface for presenting a settled comparison.
// Different output surfaces (plain CLI, TUI, file export) implement it
// without the orchestration layer knowing which is in use.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-backend outcome summary.
	PresentComparisonTable(responses []AIResponse, out io.Writer)

	// PresentResponses displays the response bodies themselves.
	PresentResponses(responses []AIResponse, out io.Writer)

	// PresentAnalysis displays the cross-response analysis. The analysis
	// pointer is nil when fewer than two responses succeeded.
	PresentAnalysis(result *analysis.Result, explanations map[string]analysis.Explanation, out io.Writer)
}

// LatencyFormatter formats response latencies for display.
type LatencyFormatter interface {
	FormatLatency(d time.Duration) string
}

// ErrorHandler maps a terminal error to an exit code, writing a user-facing
// message along the way.
type ErrorHandler interface {
	HandleError(err error, out io.Writer) int
}
