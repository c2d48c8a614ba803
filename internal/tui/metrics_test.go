package tui

import (
	"strings"
	"testing"

	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/ui"
)

func plainStyles(t *testing.T) {
	t.Helper()
	ui.InitTheme(true)
	initTUIStyles()
}

func TestMetricsModel_UpdateMemStats(t *testing.T) {
	m := NewMetricsModel()

	msg := MemStatsMsg{
		Alloc:        1024 * 1024 * 50, // 50 MB
		HeapSys:      1024 * 1024 * 80,
		NumGC:        10,
		NumGoroutine: 8,
	}
	m.UpdateMemStats(msg)

	if m.alloc != msg.Alloc {
		t.Errorf("expected alloc %d, got %d", msg.Alloc, m.alloc)
	}
	if m.heapSys != msg.HeapSys {
		t.Errorf("expected heapSys %d, got %d", msg.HeapSys, m.heapSys)
	}
	if m.numGC != msg.NumGC {
		t.Errorf("expected numGC %d, got %d", msg.NumGC, m.numGC)
	}
	if m.numGoroutine != msg.NumGoroutine {
		t.Errorf("expected numGoroutine %d, got %d", msg.NumGoroutine, m.numGoroutine)
	}
}

func TestMetricsModel_UpdateSysStats(t *testing.T) {
	m := NewMetricsModel()

	m.UpdateSysStats(25.0, 60.0)
	m.UpdateSysStats(30.0, 65.0)

	if m.cpuHistory.Len() != 2 {
		t.Errorf("expected 2 cpu samples, got %d", m.cpuHistory.Len())
	}
	if m.cpuHistory.Last() != 30.0 {
		t.Errorf("expected last cpu 30.0, got %f", m.cpuHistory.Last())
	}
	if m.memHistory.Last() != 65.0 {
		t.Errorf("expected last mem 65.0, got %f", m.memHistory.Last())
	}
}

func TestMetricsModel_Reset(t *testing.T) {
	m := NewMetricsModel()
	m.UpdateSysStats(25.0, 60.0)

	m.Reset()

	if m.cpuHistory.Len() != 0 {
		t.Error("expected cpuHistory to be empty after reset")
	}
	if m.memHistory.Len() != 0 {
		t.Error("expected memHistory to be empty after reset")
	}
}

func TestMetricsModel_View(t *testing.T) {
	plainStyles(t)

	m := NewMetricsModel()
	m.SetSize(50, 7)
	m.UpdateMemStats(MemStatsMsg{Alloc: 2048, HeapSys: 4096, NumGC: 3, NumGoroutine: 7})
	m.UpdateSysStats(40.0, 55.0)
	m.UpdateSnapshot(orchestration.ProgressSnapshot{InFlight: 1, Done: 2, Failed: 1, Total: 4})

	view := m.View()
	if !strings.Contains(view, "Runtime") {
		t.Error("expected view to contain panel title")
	}
	if !strings.Contains(view, "2.0 KiB") {
		t.Error("expected view to contain formatted heap size")
	}
	if !strings.Contains(view, "goroutines") {
		t.Error("expected view to contain goroutine count")
	}
	if !strings.Contains(view, "3/4") {
		t.Error("expected view to contain settle count")
	}
	if !strings.Contains(view, "cpu  40.0%") {
		t.Error("expected view to contain cpu reading")
	}
}

func TestMetricsModel_View_NoSnapshot(t *testing.T) {
	plainStyles(t)

	m := NewMetricsModel()
	m.SetSize(50, 7)

	view := m.View()
	if strings.Contains(view, "settled") {
		t.Error("expected no settle line before the fan-out starts")
	}
}
