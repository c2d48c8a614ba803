package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/aicompare/internal/analysis"
	"github.com/agbru/aicompare/internal/config"
	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/ui"
)

// settledSession builds a session with two responses and a computed analysis.
func settledSession(t *testing.T) *orchestration.Session {
	t.Helper()

	sess := orchestration.NewSession("explain goroutines")
	sess.SetResponses(sampleResponses())
	sess.SetAnalysis(&analysis.Result{
		OverallSimilarity: 0.5,
		CommonPoints:      []string{"both mention scheduling"},
		KeyDifferences:    []analysis.Difference{{Aspect: "Length", Description: "one response is much longer"}},
		CodeAnalysis: map[string]analysis.CodeStats{
			"openai": {BlockCount: 2, Languages: []string{"go"}, Complexity: analysis.ComplexityMedium},
		},
	})
	sess.SetExplanations(map[string]analysis.Explanation{
		"openai": {Introduction: "Goroutines multiplex onto OS threads.", Clarity: 6, Depth: analysis.DepthAdvanced},
	})
	return sess
}

func TestWriteSessionToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	t.Run("writes markdown report", func(t *testing.T) {
		t.Parallel()
		outputFile := filepath.Join(tmpDir, "report.md")
		sess := settledSession(t)

		if err := WriteSessionToFile(sess, outputFile); err != nil {
			t.Fatalf("WriteSessionToFile: %v", err)
		}

		content, err := os.ReadFile(outputFile)
		if err != nil {
			t.Fatalf("read report: %v", err)
		}
		report := string(content)
		for _, want := range []string{
			"# Comparison Report",
			"explain goroutines",
			"### GPT-4o mini",
			"failed (throttled)",
			"Overall similarity: 50%",
			"both mention scheduling",
			"clarity 6/10, Advanced",
		} {
			if !strings.Contains(report, want) {
				t.Errorf("report should contain %q, got:\n%s", want, report)
			}
		}
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		t.Parallel()
		if err := WriteSessionToFile(settledSession(t), ""); err != nil {
			t.Errorf("empty path should not error: %v", err)
		}
	})

	t.Run("creates nested directories", func(t *testing.T) {
		t.Parallel()
		outputFile := filepath.Join(tmpDir, "nested", "dir", "report.md")
		if err := WriteSessionToFile(settledSession(t), outputFile); err != nil {
			t.Fatalf("WriteSessionToFile: %v", err)
		}
		if _, err := os.Stat(outputFile); err != nil {
			t.Errorf("report should exist in nested directory: %v", err)
		}
	})

	t.Run("session without analysis", func(t *testing.T) {
		t.Parallel()
		sess := orchestration.NewSession("p")
		sess.SetResponses(sampleResponses())

		outputFile := filepath.Join(tmpDir, "no-analysis.md")
		if err := WriteSessionToFile(sess, outputFile); err != nil {
			t.Fatalf("WriteSessionToFile: %v", err)
		}
		content, _ := os.ReadFile(outputFile)
		if !strings.Contains(string(content), "Unavailable") {
			t.Errorf("report should note missing analysis, got:\n%s", content)
		}
	})
}

func TestFormatQuietSession(t *testing.T) {
	t.Parallel()

	output := FormatQuietSession(settledSession(t))

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 2 backend lines + similarity, got %d:\n%s", len(lines), output)
	}
	if !strings.Contains(output, "openai\tok\t") {
		t.Errorf("should contain ok line, got:\n%s", output)
	}
	if !strings.Contains(output, "claude\tthrottled\t") {
		t.Errorf("should contain failure line, got:\n%s", output)
	}
	if !strings.Contains(output, "similarity\t0.50") {
		t.Errorf("should contain similarity line, got:\n%s", output)
	}
}

func TestDisplaySessionWithConfig(t *testing.T) {
	ui.InitTheme(false)
	tmpDir := t.TempDir()

	t.Run("quiet mode", func(t *testing.T) {
		var buf bytes.Buffer
		err := DisplaySessionWithConfig(&buf, settledSession(t), OutputConfig{Quiet: true})
		if err != nil {
			t.Fatalf("DisplaySessionWithConfig: %v", err)
		}
		if strings.Contains(buf.String(), "Comparison Summary") {
			t.Error("quiet mode should skip the table")
		}
		if !strings.Contains(buf.String(), "similarity") {
			t.Errorf("quiet mode should print the similarity line, got:\n%s", buf.String())
		}
	})

	t.Run("normal mode with file output", func(t *testing.T) {
		var buf bytes.Buffer
		outputFile := filepath.Join(tmpDir, "out.md")
		cfg := OutputConfig{OutputFile: outputFile, Mode: config.DisplaySideBySide}

		if err := DisplaySessionWithConfig(&buf, settledSession(t), cfg); err != nil {
			t.Fatalf("DisplaySessionWithConfig: %v", err)
		}
		if _, err := os.Stat(outputFile); err != nil {
			t.Errorf("output file should exist: %v", err)
		}
		if !strings.Contains(buf.String(), "Report saved to") {
			t.Errorf("should show the save message, got:\n%s", buf.String())
		}
	})

	t.Run("quiet mode with file output stays quiet", func(t *testing.T) {
		var buf bytes.Buffer
		outputFile := filepath.Join(tmpDir, "quiet.md")
		cfg := OutputConfig{OutputFile: outputFile, Quiet: true}

		if err := DisplaySessionWithConfig(&buf, settledSession(t), cfg); err != nil {
			t.Fatalf("DisplaySessionWithConfig: %v", err)
		}
		if _, err := os.Stat(outputFile); err != nil {
			t.Errorf("output file should exist: %v", err)
		}
		if strings.Contains(buf.String(), "Report saved to") {
			t.Error("quiet mode should not show the save message")
		}
	})
}
