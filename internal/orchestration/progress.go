package orchestration

import (
	"github.com/agbru/aicompare/internal/progress"
)

// ProgressTracker aggregates the lifecycle events of a fan-out's tasks.
// It wraps the per-update bookkeeping both the CLI spinner and the TUI
// dashboard need, so neither duplicates the counting logic.
type ProgressTracker struct {
	numBackends int
	states      map[int]progress.State
}

// NewProgressTracker creates a tracker for the given number of backends.
// Returns nil if numBackends <= 0.
func NewProgressTracker(numBackends int) *ProgressTracker {
	if numBackends <= 0 {
		return nil
	}
	return &ProgressTracker{
		numBackends: numBackends,
		states:      make(map[int]progress.State, numBackends),
	}
}

// ProgressSnapshot is the aggregated view after processing an update.
type ProgressSnapshot struct {
	// InFlight is the number of tasks currently calling their backend.
	InFlight int
	// Done is the number of tasks settled successfully.
	Done int
	// Failed is the number of tasks settled with an error.
	Failed int
	// Total is the number of tasks in the fan-out.
	Total int
}

// Settled reports whether every task has resolved.
func (s ProgressSnapshot) Settled() bool {
	return s.Done+s.Failed == s.Total
}

// Update records one event and returns the aggregated snapshot.
func (t *ProgressTracker) Update(u progress.Update) ProgressSnapshot {
	t.states[u.BackendIndex] = u.State
	return t.Snapshot()
}

// Snapshot returns the current aggregated view without recording anything.
func (t *ProgressTracker) Snapshot() ProgressSnapshot {
	snap := ProgressSnapshot{Total: t.numBackends}
	for _, state := range t.states {
		switch state {
		case progress.StateCalling:
			snap.InFlight++
		case progress.StateDone:
			snap.Done++
		case progress.StateFailed:
			snap.Failed++
		}
	}
	return snap
}

// NumBackends returns the number of tasks being tracked.
func (t *ProgressTracker) NumBackends() int {
	return t.numBackends
}

// DrainChannel reads all updates from the channel without processing. Use
// this when updates should be discarded.
func DrainChannel(updates <-chan progress.Update) {
	for range updates {
	}
}
