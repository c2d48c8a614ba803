// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySession], [DisplayQuietSession], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietSession].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteSessionToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/aicompare/internal/config"
	"github.com/agbru/aicompare/internal/format"
	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/ui"
)

// OutputConfig holds configuration for session output.
type OutputConfig struct {
	// OutputFile is the path to save the session report (empty for no file output).
	OutputFile string
	// Quiet mode reduces output to one line per backend.
	Quiet bool
	// Mode selects how response bodies are rendered.
	Mode config.DisplayMode
	// Explain adds the explanatory breakdown to the analysis section.
	Explain bool
}

// WriteSessionToFile writes a settled comparison session to a markdown file.
// The report contains the prompt, every response body, and the analysis.
func WriteSessionToFile(sess *orchestration.Session, outputFile string) error {
	if outputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	responses := sess.Responses()

	fmt.Fprintf(file, "# Comparison Report\n\n")
	fmt.Fprintf(file, "- Session: %s\n", sess.ID)
	fmt.Fprintf(file, "- Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "- Backends: %d\n\n", len(responses))
	fmt.Fprintf(file, "## Prompt\n\n%s\n\n", strings.TrimSpace(sess.Prompt))

	fmt.Fprintf(file, "## Responses\n")
	for _, resp := range responses {
		fmt.Fprintf(file, "\n### %s\n\n", resp.DisplayName)
		fmt.Fprintf(file, "- Latency: %s\n", format.FormatLatency(resp.Latency))
		if resp.Failed() {
			fmt.Fprintf(file, "- Status: failed (%s)\n\n%v\n", resp.Kind, resp.Err)
			continue
		}
		fmt.Fprintf(file, "- Status: ok\n- Tokens (est.): %d\n\n", resp.TokenEstimate)
		fmt.Fprintf(file, "%s\n", strings.TrimRight(resp.Text, "\n"))
	}

	writeAnalysisMarkdown(file, sess)
	return nil
}

// writeAnalysisMarkdown appends the analysis section of the report.
func writeAnalysisMarkdown(file io.Writer, sess *orchestration.Session) {
	result := sess.Analysis()

	fmt.Fprintf(file, "\n## Analysis\n\n")
	if result == nil {
		fmt.Fprintf(file, "Unavailable: fewer than two backends responded.\n")
		return
	}

	fmt.Fprintf(file, "- Overall similarity: %.0f%%\n", result.OverallSimilarity*100)
	if len(result.CommonPoints) > 0 {
		fmt.Fprintf(file, "\n### Common points\n\n")
		for _, point := range result.CommonPoints {
			fmt.Fprintf(file, "- %s\n", point)
		}
	}
	if len(result.KeyDifferences) > 0 {
		fmt.Fprintf(file, "\n### Key differences\n\n")
		for _, diff := range result.KeyDifferences {
			fmt.Fprintf(file, "- **%s**: %s\n", diff.Aspect, diff.Description)
		}
	}
	if len(result.CodeAnalysis) > 0 {
		fmt.Fprintf(file, "\n### Code\n\n")
		for _, id := range sortedKeys(result.CodeAnalysis) {
			stats := result.CodeAnalysis[id]
			langs := "none"
			if len(stats.Languages) > 0 {
				langs = strings.Join(stats.Languages, ", ")
			}
			fmt.Fprintf(file, "- %s: %d block(s), languages: %s, complexity: %s\n",
				id, stats.BlockCount, langs, stats.Complexity)
		}
	}

	if explanations := sess.Explanations(); len(explanations) > 0 {
		fmt.Fprintf(file, "\n### Explanations\n")
		for _, id := range sortedKeys(explanations) {
			exp := explanations[id]
			fmt.Fprintf(file, "\n#### %s (clarity %d/10, %s)\n\n", id, exp.Clarity, exp.Depth)
			if exp.Introduction != "" {
				fmt.Fprintf(file, "%s\n", exp.Introduction)
			}
			for _, point := range exp.KeyPoints {
				fmt.Fprintf(file, "- %s\n", point)
			}
		}
	}
}

// FormatQuietSession formats a session for quiet mode output: one
// tab-separated line per backend plus a final similarity line, suitable for
// scripting.
func FormatQuietSession(sess *orchestration.Session) string {
	var b strings.Builder
	for _, resp := range sess.Responses() {
		status := "ok"
		if resp.Failed() {
			status = string(resp.Kind)
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\n", resp.BackendID, status, format.FormatLatency(resp.Latency))
	}
	if result := sess.Analysis(); result != nil {
		fmt.Fprintf(&b, "similarity\t%.2f\n", result.OverallSimilarity)
	}
	return b.String()
}

// DisplayQuietSession outputs a session in quiet mode (minimal output).
func DisplayQuietSession(out io.Writer, sess *orchestration.Session) {
	fmt.Fprint(out, FormatQuietSession(sess))
}

// DisplaySession renders a settled session to out using the presenter.
func DisplaySession(out io.Writer, sess *orchestration.Session, presenter CLIResultPresenter) {
	responses := sess.Responses()
	presenter.PresentComparisonTable(responses, out)
	presenter.PresentResponses(responses, out)
	presenter.PresentAnalysis(sess.Analysis(), sess.Explanations(), out)
}

// DisplaySessionWithConfig displays a session with the given output
// configuration. This is a unified function that handles all output modes.
func DisplaySessionWithConfig(out io.Writer, sess *orchestration.Session, cfg OutputConfig) error {
	if cfg.Quiet {
		DisplayQuietSession(out, sess)
	} else {
		DisplaySession(out, sess, CLIResultPresenter{Mode: cfg.Mode, Explain: cfg.Explain})
	}

	if cfg.OutputFile != "" {
		if err := WriteSessionToFile(sess, cfg.OutputFile); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
				ui.ColorSuccess(), ui.ColorPrimary(), cfg.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
