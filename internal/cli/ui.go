package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/progress"
)

// ProgressRefreshRate defines the refresh frequency of the spinner.
// 200ms keeps terminal updates cheap while the fan-out is in flight.
const ProgressRefreshRate = 200 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows the decoupling of DisplayProgress from a specific spinner
// implementation, facilitating easier testing and maintenance. It defines
// the essential controls for a spinner: starting, stopping, and updating
// its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner whose suffix tracks the fan-out: how
// many backend calls are in flight and how many have settled. It consumes
// updates until the channel is closed and signals wg when done.
func DisplayProgress(wg *sync.WaitGroup, updates <-chan progress.Update, numBackends int, out io.Writer) {
	defer wg.Done()

	tracker := orchestration.NewProgressTracker(numBackends)
	if tracker == nil {
		orchestration.DrainChannel(updates)
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.UpdateSuffix(fmt.Sprintf(" contacting %d backends...", numBackends))
	sp.Start()
	defer sp.Stop()

	for u := range updates {
		snap := tracker.Update(u)
		sp.UpdateSuffix(formatProgressSuffix(u, snap))
	}
}

// formatProgressSuffix builds the spinner status line from the latest event
// and the aggregated counts.
func formatProgressSuffix(last progress.Update, snap orchestration.ProgressSnapshot) string {
	settled := snap.Done + snap.Failed
	switch last.State {
	case progress.StateCalling:
		return fmt.Sprintf(" %s responding... (%d/%d settled)", last.BackendID, settled, snap.Total)
	case progress.StateDone:
		return fmt.Sprintf(" %s answered (%d/%d settled)", last.BackendID, settled, snap.Total)
	case progress.StateFailed:
		detail := last.Detail
		if detail == "" {
			detail = "error"
		}
		return fmt.Sprintf(" %s failed: %s (%d/%d settled)", last.BackendID, detail, settled, snap.Total)
	default:
		return fmt.Sprintf(" waiting... (%d/%d settled)", settled, snap.Total)
	}
}
