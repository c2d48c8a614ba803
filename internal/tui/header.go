package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// headerPromptLimit caps the prompt preview shown in the header.
const headerPromptLimit = 48

// HeaderModel renders the one-line dashboard header: application name,
// prompt preview, elapsed time, and the latest system reading.
type HeaderModel struct {
	version   string
	prompt    string
	startTime time.Time
	endTime   time.Time
	cpu       float64
	mem       float64
	width     int
}

// NewHeaderModel creates the header for the given prompt.
func NewHeaderModel(version, prompt string) HeaderModel {
	return HeaderModel{
		version:   version,
		prompt:    prompt,
		startTime: time.Now(),
	}
}

// SetWidth sets the render width.
func (h *HeaderModel) SetWidth(width int) { h.width = width }

// SetDone freezes the elapsed counter.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// SetSysStats records the latest CPU/memory reading.
func (h *HeaderModel) SetSysStats(cpu, mem float64) {
	h.cpu = cpu
	h.mem = mem
}

// Elapsed returns the running (or frozen) wall-clock duration.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header line.
func (h HeaderModel) View() string {
	left := titleStyle.Render("aicompare "+h.version) +
		headerStyle.Render("  "+previewHeaderPrompt(h.prompt))
	right := headerStyle.Render(fmt.Sprintf("cpu %4.1f%%  mem %4.1f%%  %s",
		h.cpu, h.mem, h.Elapsed().Round(100*time.Millisecond)))

	gap := h.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// previewHeaderPrompt collapses whitespace and truncates the prompt for
// the header line.
func previewHeaderPrompt(prompt string) string {
	collapsed := strings.Join(strings.Fields(prompt), " ")
	if len(collapsed) > headerPromptLimit {
		collapsed = collapsed[:headerPromptLimit-3] + "..."
	}
	return "“" + collapsed + "”"
}
