package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agbru/aicompare/internal/analysis"
)

// AnalysisModel renders the comparative-analysis panel once the fan-out
// has settled and the analysis has been computed.
type AnalysisModel struct {
	result       *analysis.Result
	explanations map[string]analysis.Explanation
	ready        bool
	width        int
	height       int
}

// SetSize sets the panel dimensions.
func (m *AnalysisModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetAnalysis installs the analysis outcome. A nil result means fewer
// than two backends responded.
func (m *AnalysisModel) SetAnalysis(result *analysis.Result, explanations map[string]analysis.Explanation) {
	m.result = result
	m.explanations = explanations
	m.ready = true
}

// View renders the panel.
func (m AnalysisModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Analysis"))
	b.WriteString("\n")

	switch {
	case !m.ready:
		b.WriteString(dimStyle.Render("waiting for responses…"))
	case m.result == nil:
		b.WriteString(statusFailedStyle.Render("unavailable: fewer than two backends responded"))
	default:
		m.renderResult(&b)
	}

	return panelStyle.Width(m.width - 2).Height(m.height - 2).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (m AnalysisModel) renderResult(b *strings.Builder) {
	score := m.result.OverallSimilarity
	fmt.Fprintf(b, "%s %s\n",
		m.renderSimilarityBar(score),
		similarityStyle(score).Render(fmt.Sprintf("%.0f%% similar", score*100)))

	if len(m.result.CommonPoints) > 0 {
		b.WriteString(panelTitleStyle.Render("Common points"))
		b.WriteString("\n")
		for _, p := range m.result.CommonPoints {
			fmt.Fprintf(b, "  • %s\n", p)
		}
	}

	if len(m.result.KeyDifferences) > 0 {
		b.WriteString(panelTitleStyle.Render("Key differences"))
		b.WriteString("\n")
		for _, d := range m.result.KeyDifferences {
			fmt.Fprintf(b, "  %s: %s\n", statusCallingStyle.Render(d.Aspect), d.Description)
		}
	}

	if len(m.result.CodeAnalysis) > 0 {
		b.WriteString(panelTitleStyle.Render("Code"))
		b.WriteString("\n")
		ids := make([]string, 0, len(m.result.CodeAnalysis))
		for id := range m.result.CodeAnalysis {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			stats := m.result.CodeAnalysis[id]
			langs := "none"
			if len(stats.Languages) > 0 {
				langs = strings.Join(stats.Languages, ", ")
			}
			fmt.Fprintf(b, "  %s: %d blocks (%s), complexity %s\n",
				id, stats.BlockCount, langs, stats.Complexity)
		}
	}

	if len(m.explanations) > 0 {
		b.WriteString(panelTitleStyle.Render("Explanations"))
		b.WriteString("\n")
		ids := make([]string, 0, len(m.explanations))
		for id := range m.explanations {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			e := m.explanations[id]
			fmt.Fprintf(b, "  %s: clarity %d/10, %s, %d key points\n",
				id, e.Clarity, e.Depth, len(e.KeyPoints))
		}
	}
}

// renderSimilarityBar draws a fixed-width filled bar for a score in [0, 1].
func (m AnalysisModel) renderSimilarityBar(score float64) string {
	const barWidth = 20
	filled := int(score*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return similarityStyle(score).Render(bar)
}
