// Interactive prompt loop for running comparisons without restarting the
// process. The loop keeps the last settled session around so backends can be
// added incrementally and the analysis re-examined.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/aicompare/internal/backend"
	"github.com/agbru/aicompare/internal/config"
	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/ui"
)

// REPLConfig holds configuration for the interactive session.
type REPLConfig struct {
	// Mode selects how response bodies are rendered.
	Mode config.DisplayMode
	// Explain adds the explanatory breakdown to the analysis output.
	Explain bool
	// Timeout is the maximum duration for each comparison.
	Timeout time.Duration
	// Extras widens the default selection from two backends to four.
	Extras bool
}

// REPL represents an interactive comparison session.
type REPL struct {
	config   REPLConfig
	registry *backend.Registry
	selected []backend.Client
	session  *orchestration.Session
	in       io.Reader
	out      io.Writer
}

// NewREPL creates a new interactive session over the given backend registry.
func NewREPL(registry *backend.Registry, cfg REPLConfig) *REPL {
	return &REPL{
		config:   cfg,
		registry: registry,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive session. It continuously reads user input
// and processes commands until the user exits or EOF is reached. The
// context bounds the whole session; individual comparisons get their own
// timeout on top of it.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		fmt.Fprint(r.out, ui.ColorSuccess()+"compare> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorError(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(ctx, input) {
			return // Exit command received
		}
	}
}

// printBanner displays the welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorPrimary(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sAI Backend Comparison - Interactive Mode%s             %s║%s\n",
		ui.ColorPrimary(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorPrimary(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorPrimary(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sask <prompt>%s   - Compare backends on a prompt (plain text also works)\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %suse <ids>%s      - Pick backends by ID, comma-separated (%s)\n", ui.ColorWarning(), ui.ColorReset(), r.backendList())
	fmt.Fprintf(r.out, "  %sadd <id>%s       - Add one backend to the last comparison\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s           - List available backends\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %smode <m>%s       - Change display mode (side-by-side, unified, analysis-only)\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexplain%s        - Toggle the explanation view\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sshow%s           - Re-display the last comparison\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexport <file>%s  - Save the last comparison as markdown\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s         - Display current configuration\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s           - Display this help\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s   - Leave interactive mode\n", ui.ColorWarning(), ui.ColorReset(), ui.ColorWarning(), ui.ColorReset())
}

// backendList returns a comma-separated list of registered backend IDs.
func (r *REPL) backendList() string {
	return strings.Join(r.registry.Names(), ", ")
}

// processCommand parses and executes a user command.
// Returns false if the session should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "ask", "a":
		r.cmdAsk(ctx, strings.TrimSpace(strings.TrimPrefix(input, parts[0])))
	case "use", "u":
		r.cmdUse(args)
	case "add":
		r.cmdAdd(ctx, args)
	case "list", "ls":
		r.cmdList()
	case "mode", "m":
		r.cmdMode(args)
	case "explain":
		r.cmdExplain()
	case "show", "s":
		r.cmdShow()
	case "export", "e":
		r.cmdExport(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorSuccess(), ui.ColorReset())
		return false
	default:
		// Anything that is not a command becomes the prompt itself.
		r.cmdAsk(ctx, input)
	}

	return true
}

// cmdAsk runs a comparison with the current backend lineup.
func (r *REPL) cmdAsk(ctx context.Context, prompt string) {
	if prompt == "" {
		fmt.Fprintf(r.out, "%sUsage: ask <prompt>%s\n", ui.ColorError(), ui.ColorReset())
		return
	}

	clients := r.selected
	if len(clients) == 0 {
		clients = orchestration.SelectDefaultBackends(r.registry.All(), r.config.Extras)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	fmt.Fprintln(r.out)
	responses, err := orchestration.CompareAcrossBackends(runCtx, prompt, clients, CLIProgressReporter{}, r.out)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		return
	}

	sess := orchestration.NewSession(prompt)
	sess.SetResponses(responses)
	if err := orchestration.Analyze(sess); err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorWarning(), err, ui.ColorReset())
	}
	r.session = sess
	r.cmdShow()
}

// cmdUse pins the backend lineup to an explicit set of IDs.
func (r *REPL) cmdUse(args []string) {
	if len(args) == 0 {
		r.selected = nil
		fmt.Fprintf(r.out, "Backend selection reset to %sautomatic%s.\n", ui.ColorSuccess(), ui.ColorReset())
		return
	}

	ids := strings.Split(strings.Join(args, ","), ",")
	var cleaned []string
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}

	clients, unknown := orchestration.ResolveBackends(r.registry, cleaned)
	if len(unknown) > 0 {
		fmt.Fprintf(r.out, "%sUnknown backends: %s%s\n", ui.ColorError(), strings.Join(unknown, ", "), ui.ColorReset())
		fmt.Fprintf(r.out, "Available backends: %s\n", r.backendList())
		return
	}
	if len(clients) < 2 {
		fmt.Fprintf(r.out, "%sA comparison needs at least 2 backends.%s\n", ui.ColorError(), ui.ColorReset())
		return
	}

	r.selected = clients
	fmt.Fprintf(r.out, "Backends set to: %s%s%s\n", ui.ColorSuccess(), strings.Join(cleaned, ", "), ui.ColorReset())
}

// cmdAdd queries one more backend against the last comparison's prompt.
func (r *REPL) cmdAdd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: add <backend-id>%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	if r.session == nil {
		fmt.Fprintf(r.out, "%sNo comparison yet. Run ask first.%s\n", ui.ColorError(), ui.ColorReset())
		return
	}

	client, ok := r.registry.Get(args[0])
	if !ok {
		fmt.Fprintf(r.out, "%sUnknown backend: %s%s\n", ui.ColorError(), args[0], ui.ColorReset())
		fmt.Fprintf(r.out, "Available backends: %s\n", r.backendList())
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	fmt.Fprintln(r.out)
	resp, err := orchestration.AddBackend(runCtx, r.session, client, CLIProgressReporter{}, r.out)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		return
	}

	if resp.Failed() {
		fmt.Fprintf(r.out, "%s%s failed: %v%s\n", ui.ColorWarning(), resp.DisplayName, resp.Err, ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "%s%s answered in %s.%s\n",
			ui.ColorSuccess(), resp.DisplayName, resp.Latency.Round(time.Millisecond), ui.ColorReset())
	}
	r.cmdShow()
}

// cmdList lists the registered backends, marking the selected lineup.
func (r *REPL) cmdList() {
	selected := make(map[string]bool, len(r.selected))
	for _, client := range r.selected {
		selected[client.Identify().ID] = true
	}

	fmt.Fprintf(r.out, "\n%sAvailable backends:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, client := range r.registry.All() {
		info := client.Identify()
		marker := "  "
		if selected[info.ID] {
			marker = ui.ColorSuccess() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-14s%s %s (%s)\n",
			marker, ui.ColorWarning(), info.ID, ui.ColorReset(), info.DisplayName, info.Tier)
	}
	fmt.Fprintln(r.out)
}

// cmdMode changes the display mode.
func (r *REPL) cmdMode(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: mode <side-by-side|unified|analysis-only>%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	mode, err := config.ParseDisplayMode(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorError(), err, ui.ColorReset())
		return
	}
	r.config.Mode = mode
	fmt.Fprintf(r.out, "Display mode changed to: %s%s%s\n", ui.ColorSuccess(), mode, ui.ColorReset())
}

// cmdExplain toggles the explanation view.
func (r *REPL) cmdExplain() {
	r.config.Explain = !r.config.Explain
	status := "disabled"
	if r.config.Explain {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Explanation view: %s%s%s\n", ui.ColorSuccess(), status, ui.ColorReset())
}

// cmdShow re-displays the last settled comparison.
func (r *REPL) cmdShow() {
	if r.session == nil {
		fmt.Fprintf(r.out, "%sNo comparison yet. Run ask first.%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	DisplaySession(r.out, r.session, CLIResultPresenter{Mode: r.config.Mode, Explain: r.config.Explain})
	fmt.Fprintln(r.out)
}

// cmdExport saves the last comparison to a markdown file.
func (r *REPL) cmdExport(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: export <file>%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	if r.session == nil {
		fmt.Fprintf(r.out, "%sNo comparison yet. Run ask first.%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	if err := WriteSessionToFile(r.session, args[0]); err != nil {
		fmt.Fprintf(r.out, "%sExport failed: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%s✓ Report saved to: %s%s\n", ui.ColorSuccess(), args[0], ui.ColorReset())
}

// cmdStatus displays the current session configuration.
func (r *REPL) cmdStatus() {
	lineup := "automatic"
	if len(r.selected) > 0 {
		ids := make([]string, len(r.selected))
		for i, client := range r.selected {
			ids[i] = client.Identify().ID
		}
		lineup = strings.Join(ids, ", ")
	}
	explain := "no"
	if r.config.Explain {
		explain = "yes"
	}

	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Backends: %s%s%s\n", ui.ColorPrimary(), lineup, ui.ColorReset())
	fmt.Fprintf(r.out, "  Mode:     %s%s%s\n", ui.ColorPrimary(), r.config.Mode, ui.ColorReset())
	fmt.Fprintf(r.out, "  Explain:  %s%s%s\n", ui.ColorPrimary(), explain, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:  %s%s%s\n", ui.ColorPrimary(), r.config.Timeout, ui.ColorReset())
	if r.session != nil {
		fmt.Fprintf(r.out, "  Session:  %s%s%s (%d responses)\n",
			ui.ColorSecondary(), r.session.ID, ui.ColorReset(), len(r.session.Responses()))
	}
	fmt.Fprintln(r.out)
}

