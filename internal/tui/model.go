// Package tui implements the interactive comparison dashboard: a Bubble
// Tea program showing live fan-out progress, side-by-side responses, the
// comparative analysis, and runtime metrics. The comparison itself runs in
// a background goroutine and feeds the dashboard through messages.
package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/aicompare/internal/backend"
	"github.com/agbru/aicompare/internal/cli"
	"github.com/agbru/aicompare/internal/config"
	apperrors "github.com/agbru/aicompare/internal/errors"
	"github.com/agbru/aicompare/internal/metrics"
	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/sysmon"
	"github.com/agbru/aicompare/internal/ui"
)

// Layout constants.
const (
	headerHeight  = 1
	footerHeight  = 1
	minBodyHeight = 4

	// metricsPanelHeight is the fixed height of the runtime panel.
	metricsPanelHeight = 7

	// analysisWidthPercent is the share of the width given to the
	// analysis column; the responses get the rest.
	analysisWidthPercent = 40

	// tickInterval drives runtime and system stat sampling.
	tickInterval = 500 * time.Millisecond
)

// defaultReportFile is where ctrl+s saves when -output was not given.
const defaultReportFile = "aicompare-report.md"

// Model is the root dashboard model.
type Model struct {
	header    HeaderModel
	responses ResponsesModel
	analysis  AnalysisModel
	metrics   MetricsModel
	keymap    KeyMap
	help      help.Model

	ref          *programRef
	session      *orchestration.Session
	memCollector *metrics.MemoryCollector
	ctx          context.Context

	outputFile string
	width      int
	height     int
	done       bool
	exitCode   int
	err        error
	statusLine string
}

func newModel(ctx context.Context, ref *programRef, sess *orchestration.Session, clients []backend.Client, cfg config.AppConfig, version string) Model {
	outputFile := cfg.OutputFile
	if outputFile == "" {
		outputFile = defaultReportFile
	}
	return Model{
		header:       NewHeaderModel(version, sess.Prompt),
		responses:    NewResponsesModel(clients),
		metrics:      NewMetricsModel(),
		keymap:       DefaultKeyMap(),
		help:         help.New(),
		ref:          ref,
		session:      sess,
		memCollector: metrics.NewMemoryCollector(),
		ctx:          ctx,
		outputFile:   outputFile,
		exitCode:     apperrors.ExitErrorCanceled,
	}
}

// Init starts the periodic sampler and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.sampleMemStatsCmd(), sampleSysStatsCmd(), watchContextCmd(m.ctx))
}

// tickCmd schedules the next sampling tick.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads the runtime memory stats.
func (m Model) sampleMemStatsCmd() tea.Cmd {
	collector := m.memCollector
	return func() tea.Msg {
		snap := collector.Snapshot()
		return MemStatsMsg{
			Alloc:        snap.HeapAlloc,
			HeapSys:      snap.HeapSys,
			NumGC:        snap.NumGC,
			NumGoroutine: snap.Goroutines,
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory usage.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		stats := sysmon.Sample()
		return SysStatsMsg{CPUPercent: stats.CPUPercent, MemPercent: stats.MemPercent}
	}
}

// watchContextCmd emits ContextCancelledMsg when the run context ends.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{}
	}
}

// Update is the message dispatcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m, tea.Batch(tickCmd(), m.sampleMemStatsCmd(), sampleSysStatsCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.header.SetSysStats(msg.CPUPercent, msg.MemPercent)
		m.metrics.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case ProgressMsg:
		m.responses.ApplyProgress(msg.Update)
		m.metrics.UpdateSnapshot(msg.Snapshot)
		return m, nil

	case ResponsesMsg:
		m.responses.SetResponses(msg.Responses)
		return m, nil

	case AnalysisMsg:
		m.analysis.SetAnalysis(msg.Result, msg.Explanations)
		return m, nil

	case CompareCompleteMsg:
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case ContextCancelledMsg:
		if m.done {
			return m, nil
		}
		// Let the in-flight tasks settle as cancelled; the
		// CompareCompleteMsg that follows carries the exit code.
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.NextPane):
		m.responses.FocusNext()
	case key.Matches(msg, m.keymap.PrevPane):
		m.responses.FocusPrev()
	case key.Matches(msg, m.keymap.Up):
		m.responses.Scroll(-1)
	case key.Matches(msg, m.keymap.Down):
		m.responses.Scroll(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.responses.Scroll(-m.responses.PageSize())
	case key.Matches(msg, m.keymap.PageDown):
		m.responses.Scroll(m.responses.PageSize())
	case key.Matches(msg, m.keymap.Export):
		m.statusLine = m.exportReport()
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// exportReport saves the session as a markdown report and returns the
// footer status line.
func (m Model) exportReport() string {
	if !m.done {
		return "nothing to save yet"
	}
	if err := cli.WriteSessionToFile(m.session, m.outputFile); err != nil {
		return "save failed: " + err.Error()
	}
	return "saved " + m.outputFile
}

// layout distributes the window among the panels.
func (m *Model) layout() {
	m.header.SetWidth(m.width)

	body := m.height - headerHeight - footerHeight
	if body < minBodyHeight {
		body = minBodyHeight
	}

	analysisWidth := m.width * analysisWidthPercent / 100
	responsesWidth := m.width - analysisWidth

	m.responses.SetSize(responsesWidth, body)
	m.analysis.SetSize(analysisWidth, body-metricsPanelHeight)
	m.metrics.SetSize(analysisWidth, metricsPanelHeight)
}

// View renders the full dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "starting dashboard..."
	}

	right := lipgloss.JoinVertical(lipgloss.Left, m.analysis.View(), m.metrics.View())
	bodyView := lipgloss.JoinHorizontal(lipgloss.Top, m.responses.View(), right)

	footer := footerStyle.Render(m.help.View(m.keymap))
	if m.statusLine != "" {
		footer = footerStyle.Render(m.statusLine) + "  " + footer
	}
	if m.err != nil {
		footer = errorStyle.Render(m.err.Error()) + "  " + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), bodyView, footer)
}

// Run opens the dashboard, launches the comparison, and blocks until the
// user quits or the run context ends. Returns the process exit code.
func Run(ctx context.Context, clients []backend.Client, cfg config.AppConfig, version string) int {
	ui.InitTheme(cfg.NoColor)
	initTUIStyles()

	ref := &programRef{}
	sess := orchestration.NewSession(cfg.Prompt)

	m := newModel(ctx, ref, sess, clients, cfg, version)
	p := tea.NewProgram(m, tea.WithAltScreen())
	ref.SetProgram(p)

	go runComparison(ctx, ref, sess, clients)

	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if fm, ok := final.(Model); ok {
		return fm.exitCode
	}
	return apperrors.ExitErrorGeneric
}

// runComparison executes the fan-out and analysis off the UI goroutine,
// reporting everything back through the program reference.
func runComparison(ctx context.Context, ref *programRef, sess *orchestration.Session, clients []backend.Client) {
	reporter := &TUIProgressReporter{ref: ref}
	presenter := &TUIResultPresenter{ref: ref}

	responses, err := orchestration.CompareAcrossBackends(ctx, sess.Prompt, clients, reporter, io.Discard)
	if err != nil {
		ref.Send(CompareCompleteMsg{ExitCode: presenter.HandleError(err, io.Discard)})
		return
	}

	sess.SetResponses(responses)
	presenter.PresentComparisonTable(sess.Responses(), io.Discard)

	// Analysis unavailability is not a failure; the panel explains it.
	_ = orchestration.Analyze(sess)
	presenter.PresentAnalysis(sess.Analysis(), sess.Explanations(), io.Discard)

	code := apperrors.ExitSuccess
	if ctx.Err() != nil {
		code = presenter.HandleError(ctx.Err(), io.Discard)
	}
	ref.Send(CompareCompleteMsg{ExitCode: code})
}
