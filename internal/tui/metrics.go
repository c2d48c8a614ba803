package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/aicompare/internal/format"
	"github.com/agbru/aicompare/internal/orchestration"
)

// sysHistoryCapacity bounds the CPU/memory history used for the charts.
// At the 500ms sampling rate this covers the last two minutes.
const sysHistoryCapacity = 240

// MetricsModel renders the runtime-metrics panel: heap and goroutine
// readings, the fan-out settle count, and CPU/memory history charts.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	numGoroutine int

	snapshot orchestration.ProgressSnapshot

	cpuHistory *RingBuffer
	memHistory *RingBuffer

	width  int
	height int
}

// NewMetricsModel creates an empty metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		cpuHistory: NewRingBuffer(sysHistoryCapacity),
		memHistory: NewRingBuffer(sysHistoryCapacity),
	}
}

// SetSize sets the panel dimensions.
func (m *MetricsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// UpdateMemStats records a runtime memory reading.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats appends a system CPU/memory reading to the charts.
func (m *MetricsModel) UpdateSysStats(cpu, mem float64) {
	m.cpuHistory.Push(cpu)
	m.memHistory.Push(mem)
}

// UpdateSnapshot records the latest fan-out settle counts.
func (m *MetricsModel) UpdateSnapshot(snap orchestration.ProgressSnapshot) {
	m.snapshot = snap
}

// Reset clears the chart history.
func (m *MetricsModel) Reset() {
	m.cpuHistory.Reset()
	m.memHistory.Reset()
}

// View renders the panel.
func (m MetricsModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Runtime"))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s  %s  %s  %s\n",
		formatMetricCol("heap", format.FormatBytes(m.alloc)),
		formatMetricCol("sys", format.FormatBytes(m.heapSys)),
		formatMetricCol("gc", fmt.Sprintf("%d", m.numGC)),
		formatMetricCol("goroutines", fmt.Sprintf("%d", m.numGoroutine)))

	if m.snapshot.Total > 0 {
		fmt.Fprintf(&b, "%s\n",
			formatMetricCol("settled", fmt.Sprintf("%d/%d (%d failed)",
				m.snapshot.Done+m.snapshot.Failed, m.snapshot.Total, m.snapshot.Failed)))
	}

	chartWidth := m.width - 12
	if chartWidth < 10 {
		chartWidth = 10
	}
	fmt.Fprintf(&b, "cpu %5.1f%% %s\n", m.cpuHistory.Last(),
		cpuSparklineStyle.Render(RenderSparkline(m.cpuHistory.Slice(), chartWidth)))

	memRows := RenderBrailleChart(m.memHistory.Slice(), chartWidth, 2)
	for i, row := range memRows {
		label := "         "
		if i == len(memRows)-1 {
			label = fmt.Sprintf("mem %5.1f%%", m.memHistory.Last())
		}
		fmt.Fprintf(&b, "%s %s\n", label, memSparklineStyle.Render(row))
	}

	return panelStyle.Width(m.width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

// formatMetricCol renders one "name value" metric column.
func formatMetricCol(name, value string) string {
	return dimStyle.Render(name+" ") + headerStyle.Render(value)
}
