package orchestration

import (
	"testing"

	"github.com/agbru/aicompare/internal/progress"
)

func TestNewProgressTracker(t *testing.T) {
	t.Parallel()
	if NewProgressTracker(0) != nil {
		t.Error("zero backends should yield a nil tracker")
	}
	if NewProgressTracker(-1) != nil {
		t.Error("negative backends should yield a nil tracker")
	}
	if tr := NewProgressTracker(3); tr == nil || tr.NumBackends() != 3 {
		t.Error("expected a tracker for 3 backends")
	}
}

func TestProgressTracker_Update(t *testing.T) {
	t.Parallel()
	tr := NewProgressTracker(3)

	snap := tr.Update(progress.Update{BackendIndex: 0, State: progress.StateCalling})
	if snap.InFlight != 1 || snap.Done != 0 || snap.Failed != 0 {
		t.Errorf("after first call: %+v", snap)
	}

	tr.Update(progress.Update{BackendIndex: 1, State: progress.StateCalling})
	snap = tr.Update(progress.Update{BackendIndex: 0, State: progress.StateDone})
	if snap.InFlight != 1 || snap.Done != 1 {
		t.Errorf("after first settle: %+v", snap)
	}
	if snap.Settled() {
		t.Error("snapshot should not report settled with tasks outstanding")
	}

	tr.Update(progress.Update{BackendIndex: 1, State: progress.StateFailed})
	snap = tr.Update(progress.Update{BackendIndex: 2, State: progress.StateDone})
	if !snap.Settled() {
		t.Errorf("all tasks resolved, snapshot should be settled: %+v", snap)
	}
	if snap.Done != 2 || snap.Failed != 1 {
		t.Errorf("final counts wrong: %+v", snap)
	}
}

func TestProgressTracker_UpdateOverwritesState(t *testing.T) {
	t.Parallel()
	tr := NewProgressTracker(1)
	tr.Update(progress.Update{BackendIndex: 0, State: progress.StateCalling})
	snap := tr.Update(progress.Update{BackendIndex: 0, State: progress.StateDone})
	if snap.InFlight != 0 || snap.Done != 1 {
		t.Errorf("a task's state should be overwritten, not accumulated: %+v", snap)
	}
}
