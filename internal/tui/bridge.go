package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/aicompare/internal/analysis"
	"github.com/agbru/aicompare/internal/cli"
	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/progress"
)

// programRef is a stable, shared reference to the running *tea.Program.
// Bubble Tea copies the model on every Update, so the model itself cannot
// hold the program pointer; the bridge adapters and all model copies share
// this one reference instead. Send is a no-op until SetProgram is called.
type programRef struct {
	mu      sync.Mutex
	program *tea.Program
}

// SetProgram installs the running program. Called once, right after
// tea.NewProgram and before the comparison goroutine starts.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.program = p
}

// Send forwards a message to the program if one is installed.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter by
// translating progress events into ProgressMsg values for the dashboard.
type TUIProgressReporter struct {
	ref     *programRef
	tracker *orchestration.ProgressTracker
}

// DisplayProgress consumes the update channel until it is closed,
// forwarding each event with its aggregated snapshot. The out writer is
// unused; the dashboard owns the terminal.
func (r *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.Update, numBackends int, _ io.Writer) {
	defer wg.Done()

	if r.tracker == nil {
		r.tracker = orchestration.NewProgressTracker(numBackends)
	}
	for u := range updates {
		snap := orchestration.ProgressSnapshot{Total: numBackends}
		if r.tracker != nil {
			snap = r.tracker.Update(u)
		}
		r.ref.Send(ProgressMsg{Update: u, Snapshot: snap})
	}
}

// TUIResultPresenter implements orchestration.ResultPresenter and
// ErrorHandler by sending the settled results to the dashboard as
// messages instead of writing them to the terminal.
type TUIResultPresenter struct {
	ref *programRef
}

var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends the settled responses to the dashboard.
func (p *TUIResultPresenter) PresentComparisonTable(responses []orchestration.AIResponse, _ io.Writer) {
	p.ref.Send(ResponsesMsg{Responses: responses})
}

// PresentResponses is a no-op: the dashboard renders response bodies from
// the ResponsesMsg sent by PresentComparisonTable.
func (p *TUIResultPresenter) PresentResponses(_ []orchestration.AIResponse, _ io.Writer) {}

// PresentAnalysis sends the analysis to the dashboard.
func (p *TUIResultPresenter) PresentAnalysis(result *analysis.Result, explanations map[string]analysis.Explanation, _ io.Writer) {
	p.ref.Send(AnalysisMsg{Result: result, Explanations: explanations})
}

// HandleError maps the error to an exit code using the same rules as the
// plain CLI, then notifies the dashboard. The message text goes nowhere;
// the dashboard shows its own error panel.
func (p *TUIResultPresenter) HandleError(err error, _ io.Writer) int {
	code := cli.CLIResultPresenter{}.HandleError(err, io.Discard)
	if err != nil {
		p.ref.Send(ErrorMsg{Err: err})
	}
	return code
}
