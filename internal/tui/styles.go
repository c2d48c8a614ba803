package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/aicompare/internal/ui"
)

// Package-level styles, rebuilt from the active ui theme by initTUIStyles.
// They are variables rather than constants so a NO_COLOR run can swap in
// the colorless palette before the program starts.
var (
	titleStyle        lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	panelStyle        lipgloss.Style
	focusedPanelStyle lipgloss.Style
	panelTitleStyle   lipgloss.Style
	dimStyle          lipgloss.Style
	errorStyle        lipgloss.Style

	statusWaitingStyle lipgloss.Style
	statusCallingStyle lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusFailedStyle  lipgloss.Style

	similarityHighStyle lipgloss.Style
	similarityMidStyle  lipgloss.Style
	similarityLowStyle  lipgloss.Style

	cpuSparklineStyle lipgloss.Style
	memSparklineStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds every style from the current theme. Run calls it
// again after ui.InitTheme so the dashboard honors -no-color and NO_COLOR.
func initTUIStyles() {
	theme := ui.GetCurrentTUITheme()

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	headerStyle = lipgloss.NewStyle().Foreground(theme.Text)
	footerStyle = lipgloss.NewStyle().Foreground(theme.Dim)
	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(theme.Accent)
	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Info)
	dimStyle = lipgloss.NewStyle().Foreground(theme.Dim)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Error)

	statusWaitingStyle = lipgloss.NewStyle().Foreground(theme.Dim)
	statusCallingStyle = lipgloss.NewStyle().Foreground(theme.Warning)
	statusDoneStyle = lipgloss.NewStyle().Foreground(theme.Success)
	statusFailedStyle = lipgloss.NewStyle().Foreground(theme.Error)

	similarityHighStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Success)
	similarityMidStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Warning)
	similarityLowStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Error)

	cpuSparklineStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	memSparklineStyle = lipgloss.NewStyle().Foreground(theme.Info)
}

// similarityStyle picks the style matching a similarity score in [0, 1].
func similarityStyle(score float64) lipgloss.Style {
	switch {
	case score >= 0.6:
		return similarityHighStyle
	case score >= 0.3:
		return similarityMidStyle
	default:
		return similarityLowStyle
	}
}
