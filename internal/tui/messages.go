package tui

import (
	"time"

	"github.com/agbru/aicompare/internal/analysis"
	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/progress"
)

// Messages flowing into the Bubble Tea event loop. The comparison runs in
// a background goroutine and communicates with the dashboard exclusively
// through these messages, sent via programRef.

// ProgressMsg carries one backend lifecycle event plus the aggregated
// snapshot at the time the event was recorded.
type ProgressMsg struct {
	Update   progress.Update
	Snapshot orchestration.ProgressSnapshot
}

// ResponsesMsg carries the settled response set, ordered by start time.
type ResponsesMsg struct {
	Responses []orchestration.AIResponse
}

// AnalysisMsg carries the cross-response analysis. Result is nil when
// fewer than two backends responded.
type AnalysisMsg struct {
	Result       *analysis.Result
	Explanations map[string]analysis.Explanation
}

// CompareCompleteMsg signals that the comparison goroutine has finished,
// successfully or not, and carries the process exit code to use.
type CompareCompleteMsg struct {
	ExitCode int
}

// ErrorMsg carries a terminal error from the comparison goroutine.
type ErrorMsg struct {
	Err error
}

// ContextCancelledMsg signals that the run context was cancelled
// (timeout or signal) while the dashboard was still open.
type ContextCancelledMsg struct{}

// TickMsg drives periodic sampling of runtime and system stats.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory reading for the metrics panel.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU/memory reading for the header
// and the metrics charts.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
