// Package progress defines the progress event types flowing from fan-out
// tasks to the presentation layer. Events travel over a buffered channel so
// backend goroutines are never blocked by a slow display.
package progress

// State describes where a single backend task is in its lifecycle.
type State string

const (
	// StateWaiting means the task has been submitted but has not started
	// its backend call yet.
	StateWaiting State = "waiting"
	// StateCalling means the backend call is in flight.
	StateCalling State = "calling"
	// StateDone means the backend returned a response.
	StateDone State = "done"
	// StateFailed means the backend call resolved with an error.
	StateFailed State = "failed"
)

// Update is a single progress event for one backend task within a fan-out.
type Update struct {
	// BackendIndex is the task's position in the fan-out (stable for the
	// lifetime of the call).
	BackendIndex int
	// BackendID identifies the backend the event belongs to.
	BackendID string
	// State is the task's new lifecycle state.
	State State
	// Detail optionally carries extra information (e.g. an error summary
	// for StateFailed).
	Detail string
}

// Callback receives progress updates from inside a backend task.
type Callback func(Update)
