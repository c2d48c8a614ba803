package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/aicompare/internal/backend"
	"github.com/agbru/aicompare/internal/format"
	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/progress"
)

// responseColumn is the per-backend pane state.
type responseColumn struct {
	backendID   string
	displayName string
	state       progress.State
	detail      string
	response    orchestration.AIResponse
	settled     bool
	offset      int
	lines       []string
}

// ResponsesModel renders the side-by-side response panes: one column per
// backend, showing lifecycle state while the fan-out runs and the wrapped
// response body once it settles.
type ResponsesModel struct {
	columns []responseColumn
	focused int
	width   int
	height  int
}

// NewResponsesModel creates a column per client, in fan-out order.
func NewResponsesModel(clients []backend.Client) ResponsesModel {
	columns := make([]responseColumn, len(clients))
	for i, c := range clients {
		info := c.Identify()
		columns[i] = responseColumn{
			backendID:   info.ID,
			displayName: info.DisplayName,
			state:       progress.StateWaiting,
		}
	}
	return ResponsesModel{columns: columns}
}

// SetSize sets the panel dimensions and rewraps settled bodies.
func (m *ResponsesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	for i := range m.columns {
		m.columns[i].rewrap(m.columnBodyWidth())
	}
}

// ApplyProgress records one lifecycle event.
func (m *ResponsesModel) ApplyProgress(u progress.Update) {
	for i := range m.columns {
		if m.columns[i].backendID == u.BackendID {
			m.columns[i].state = u.State
			m.columns[i].detail = u.Detail
			return
		}
	}
}

// SetResponses installs the settled response set.
func (m *ResponsesModel) SetResponses(responses []orchestration.AIResponse) {
	for _, resp := range responses {
		for i := range m.columns {
			if m.columns[i].backendID == resp.BackendID {
				m.columns[i].response = resp
				m.columns[i].settled = true
				if resp.Failed() {
					m.columns[i].state = progress.StateFailed
				} else {
					m.columns[i].state = progress.StateDone
				}
				m.columns[i].rewrap(m.columnBodyWidth())
			}
		}
	}
}

// FocusNext moves the focus one column right, wrapping.
func (m *ResponsesModel) FocusNext() {
	if len(m.columns) > 0 {
		m.focused = (m.focused + 1) % len(m.columns)
	}
}

// FocusPrev moves the focus one column left, wrapping.
func (m *ResponsesModel) FocusPrev() {
	if len(m.columns) > 0 {
		m.focused = (m.focused + len(m.columns) - 1) % len(m.columns)
	}
}

// Scroll moves the focused column's viewport by delta lines.
func (m *ResponsesModel) Scroll(delta int) {
	if len(m.columns) == 0 {
		return
	}
	col := &m.columns[m.focused]
	col.offset += delta
	max := len(col.lines) - m.bodyHeight()
	if col.offset > max {
		col.offset = max
	}
	if col.offset < 0 {
		col.offset = 0
	}
}

// PageSize returns the scroll step for page up/down.
func (m ResponsesModel) PageSize() int {
	if h := m.bodyHeight(); h > 1 {
		return h - 1
	}
	return 1
}

func (m ResponsesModel) columnWidth() int {
	if len(m.columns) == 0 {
		return m.width
	}
	return m.width/len(m.columns) - 1
}

// columnBodyWidth is the wrap width inside a column's border and padding.
func (m ResponsesModel) columnBodyWidth() int {
	w := m.columnWidth() - 4
	if w < 10 {
		w = 10
	}
	return w
}

// bodyHeight is the number of body lines visible per column.
func (m ResponsesModel) bodyHeight() int {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (c *responseColumn) rewrap(width int) {
	if !c.settled || c.response.Failed() {
		c.lines = nil
		return
	}
	c.lines = wrapText(c.response.Text, width)
	if c.offset > len(c.lines) {
		c.offset = 0
	}
}

// View renders all columns joined horizontally.
func (m ResponsesModel) View() string {
	if len(m.columns) == 0 {
		return ""
	}
	rendered := make([]string, len(m.columns))
	for i, col := range m.columns {
		rendered[i] = m.renderColumn(col, i == m.focused)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m ResponsesModel) renderColumn(col responseColumn, focused bool) string {
	var b strings.Builder

	b.WriteString(panelTitleStyle.Render(col.displayName))
	b.WriteString("\n")
	b.WriteString(m.renderStatus(col))
	b.WriteString("\n")

	body := m.bodyHeight()
	switch {
	case !col.settled:
		for i := 0; i < body; i++ {
			b.WriteString("\n")
		}
	case col.response.Failed():
		b.WriteString(statusFailedStyle.Render(fmt.Sprintf("no response: %v", col.response.Err)))
		for i := 1; i < body; i++ {
			b.WriteString("\n")
		}
	default:
		end := col.offset + body
		if end > len(col.lines) {
			end = len(col.lines)
		}
		for i := col.offset; i < end; i++ {
			b.WriteString(col.lines[i])
			b.WriteString("\n")
		}
		for i := end - col.offset; i < body; i++ {
			b.WriteString("\n")
		}
	}

	style := panelStyle
	if focused {
		style = focusedPanelStyle
	}
	return style.Width(m.columnWidth() - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (m ResponsesModel) renderStatus(col responseColumn) string {
	switch col.state {
	case progress.StateCalling:
		return statusCallingStyle.Render("● calling…")
	case progress.StateDone:
		return statusDoneStyle.Render(fmt.Sprintf("✓ %s · ~%d tokens",
			format.FormatLatency(col.response.Latency), col.response.TokenEstimate))
	case progress.StateFailed:
		kind := col.detail
		if col.settled && col.response.Kind != "" {
			kind = string(col.response.Kind)
		}
		if kind == "" {
			kind = "failed"
		}
		return statusFailedStyle.Render("✗ " + kind)
	default:
		return statusWaitingStyle.Render("○ waiting")
	}
}

// wrapText hard-wraps text to the given width, preserving blank lines.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		if raw == "" {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range strings.Fields(raw) {
			for len(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				out = append(out, word[:width])
				word = word[width:]
			}
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
