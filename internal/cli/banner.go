package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/aicompare/internal/backend"
	"github.com/agbru/aicompare/internal/config"
	"github.com/agbru/aicompare/internal/ui"
)

// promptPreviewLimit caps how much of the prompt the banner echoes back.
const promptPreviewLimit = 80

// PrintRunConfig displays the current run configuration to the user. It
// shows the prompt being compared, the timeout, and the display mode.
func PrintRunConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Run Configuration ---\n")
	fmt.Fprintf(out, "Prompt: %s%s%s\n",
		ui.ColorInfo(), previewPrompt(cfg.Prompt), ui.ColorReset())
	fmt.Fprintf(out, "Timeout: %s%s%s, display mode: %s%s%s.\n",
		ui.ColorWarning(), cfg.Timeout, ui.ColorReset(),
		ui.ColorPrimary(), cfg.DisplayMode, ui.ColorReset())
}

// PrintBackendLineup displays which backends will be queried.
func PrintBackendLineup(clients []backend.Client, out io.Writer) {
	names := make([]string, len(clients))
	for i, client := range clients {
		info := client.Identify()
		names[i] = fmt.Sprintf("%s%s%s (%s)", ui.ColorSuccess(), info.DisplayName, ui.ColorReset(), info.Tier)
	}
	fmt.Fprintf(out, "Querying %d backends: %s.\n", len(clients), strings.Join(names, ", "))
	fmt.Fprintf(out, "\n--- Starting Comparison ---\n")
}

// previewPrompt truncates a prompt to a single display line.
func previewPrompt(prompt string) string {
	prompt = strings.Join(strings.Fields(prompt), " ")
	if len(prompt) <= promptPreviewLimit {
		return prompt
	}
	return prompt[:promptPreviewLimit] + "..."
}
