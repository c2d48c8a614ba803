package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/aicompare/internal/config"
	apperrors "github.com/agbru/aicompare/internal/errors"
	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/progress"
)

func testModel(t *testing.T) Model {
	t.Helper()
	plainStyles(t)

	sess := orchestration.NewSession("explain goroutines")
	cfg := config.AppConfig{Prompt: "explain goroutines"}
	return newModel(context.Background(), &programRef{}, sess, testClients(), cfg, "1.0.0")
}

func TestModel_WindowSize(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model := updated.(Model)

	if model.width != 120 || model.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", model.width, model.height)
	}
	if model.responses.width == 0 {
		t.Error("expected layout to size the responses panel")
	}
}

func TestModel_ProgressAndCompletion(t *testing.T) {
	m := testModel(t)

	updated, _ := m.Update(ProgressMsg{
		Update:   progress.Update{BackendID: "openai", State: progress.StateCalling},
		Snapshot: orchestration.ProgressSnapshot{InFlight: 1, Total: 2},
	})
	model := updated.(Model)

	if model.metrics.snapshot.InFlight != 1 {
		t.Error("expected progress snapshot recorded in metrics panel")
	}

	updated, _ = model.Update(CompareCompleteMsg{ExitCode: apperrors.ExitSuccess})
	model = updated.(Model)

	if !model.done {
		t.Error("expected model marked done")
	}
	if model.exitCode != apperrors.ExitSuccess {
		t.Errorf("expected exit code %d, got %d", apperrors.ExitSuccess, model.exitCode)
	}
}

func TestModel_ExitCodeBeforeCompletion(t *testing.T) {
	m := testModel(t)

	// Quitting before the fan-out settles reports cancellation.
	if m.exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("expected initial exit code %d, got %d", apperrors.ExitErrorCanceled, m.exitCode)
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := testModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("expected tea.Quit, got %T", msg)
	}
}

func TestModel_ResponsesAndAnalysis(t *testing.T) {
	m := testModel(t)
	m.width = 120
	m.height = 40
	m.layout()

	updated, _ := m.Update(ResponsesMsg{Responses: []orchestration.AIResponse{
		{BackendID: "openai", DisplayName: "OpenAI GPT", Text: "goroutines are lightweight"},
		{BackendID: "claude", DisplayName: "Anthropic Claude", Text: "goroutines multiplex onto threads"},
	}})
	model := updated.(Model)

	updated, _ = model.Update(AnalysisMsg{Result: sampleAnalysis()})
	model = updated.(Model)

	view := model.View()
	if !strings.Contains(view, "OpenAI GPT") {
		t.Error("expected view to contain backend name")
	}
	if !strings.Contains(view, "72% similar") {
		t.Error("expected view to contain similarity score")
	}
}

func TestModel_ExportBeforeCompletion(t *testing.T) {
	m := testModel(t)

	if got := m.exportReport(); got != "nothing to save yet" {
		t.Errorf("expected export refusal before completion, got %q", got)
	}
}

func TestHeaderModel_Elapsed(t *testing.T) {
	h := NewHeaderModel("1.0.0", "explain goroutines")

	time.Sleep(5 * time.Millisecond)
	if h.Elapsed() <= 0 {
		t.Error("expected positive elapsed time")
	}

	h.SetDone()
	frozen := h.Elapsed()
	time.Sleep(5 * time.Millisecond)
	if h.Elapsed() != frozen {
		t.Error("expected elapsed time frozen after SetDone")
	}
}

func TestHeaderModel_View(t *testing.T) {
	plainStyles(t)

	h := NewHeaderModel("1.0.0", "explain   goroutines\nin Go")
	h.SetWidth(100)
	h.SetSysStats(12.5, 40.0)

	view := h.View()
	if !strings.Contains(view, "aicompare 1.0.0") {
		t.Error("expected header to contain app name and version")
	}
	if !strings.Contains(view, "explain goroutines in Go") {
		t.Error("expected header to contain collapsed prompt preview")
	}
	if !strings.Contains(view, "cpu 12.5%") {
		t.Error("expected header to contain cpu reading")
	}
}

func TestPreviewHeaderPrompt_Truncates(t *testing.T) {
	long := strings.Repeat("word ", 30)
	preview := previewHeaderPrompt(long)
	if len(preview) > headerPromptLimit+10 {
		t.Errorf("expected truncated preview, got %d chars", len(preview))
	}
	if !strings.Contains(preview, "...") {
		t.Error("expected ellipsis in truncated preview")
	}
}
