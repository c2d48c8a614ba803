// Package orchestration coordinates the concurrent fan-out of one prompt to
// multiple backends and the lifecycle of comparison sessions.
//
// The fan-out settles every task: per-backend failures are converted into
// error-tagged response entries and never abort sibling calls or propagate
// to the caller. Cancellation is cooperative via the shared context, and the
// call always returns once every task has resolved.
//
// The package is decoupled from presentation: progress and results flow
// through the ProgressReporter and ResultPresenter interfaces, implemented
// by the cli and tui packages.
package orchestration
