// Package app assembles the application: it parses configuration, builds
// the backend registry from the catalog, and dispatches to the requested
// surface (one-shot comparison, interactive loop, TUI dashboard, or shell
// completion).
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/aicompare/internal/backend"
	"github.com/agbru/aicompare/internal/cli"
	"github.com/agbru/aicompare/internal/config"
	apperrors "github.com/agbru/aicompare/internal/errors"
	"github.com/agbru/aicompare/internal/orchestration"
	"github.com/agbru/aicompare/internal/tui"
	"github.com/agbru/aicompare/internal/ui"
)

// Application represents the aicompare application instance.
type Application struct {
	Config    config.AppConfig
	Catalog   config.Catalog
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithCatalog sets a custom backend catalog, bypassing the catalog file.
func WithCatalog(c config.Catalog) AppOption {
	return func(a *Application) { a.Catalog = c }
}

// New creates a new Application instance by parsing command-line arguments
// and loading the backend catalog.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "aicompare"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if len(app.Catalog.Backends) == 0 {
		if cfg.CatalogFile != "" {
			catalog, err := config.LoadCatalog(cfg.CatalogFile)
			if err != nil {
				return nil, err
			}
			app.Catalog = catalog
		} else {
			app.Catalog = config.DefaultCatalog()
		}
	}

	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	registry, err := BuildRegistry(a.Catalog)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if a.Config.TUI {
		return a.runTUI(ctx, registry)
	}
	if a.Config.Interactive {
		return a.runInteractive(ctx, registry, out)
	}

	return a.runCompare(ctx, registry, out)
}

// runCompletion generates shell completion scripts. The registry is built
// from the catalog without filtering so completion lists every configured
// backend, keyed or not.
func (a *Application) runCompletion(out io.Writer) int {
	ids := make([]string, 0, len(a.Catalog.Backends))
	for _, entry := range a.Catalog.Backends {
		ids = append(ids, entry.ID)
	}
	if err := cli.GenerateCompletion(out, a.Config.Completion, ids); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context, registry *backend.Registry) int {
	if strings.TrimSpace(a.Config.Prompt) == "" {
		fmt.Fprintf(a.ErrWriter, "Error: a prompt is required. Usage: aicompare -tui [flags] <prompt>\n")
		return apperrors.ExitErrorConfig
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	clients, code := a.selectClients(registry)
	if code != apperrors.ExitSuccess {
		return code
	}
	return tui.Run(ctx, clients, a.Config, Version)
}

// runInteractive starts the prompt loop. The loop owns per-command
// timeouts, so only signal handling wraps it.
func (a *Application) runInteractive(ctx context.Context, registry *backend.Registry, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repl := cli.NewREPL(registry, cli.REPLConfig{
		Mode:    a.Config.DisplayMode,
		Explain: a.Config.Explain,
		Timeout: a.Config.Timeout,
		Extras:  a.Config.Extras,
	})
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// selectClients resolves the backend set for this run: the explicit
// -backends list when given, the tier-based default selection otherwise.
func (a *Application) selectClients(registry *backend.Registry) ([]backend.Client, int) {
	if len(a.Config.Backends) > 0 {
		clients, unknown := orchestration.ResolveBackends(registry, a.Config.Backends)
		if len(unknown) > 0 {
			fmt.Fprintf(a.ErrWriter, "Unknown backends: %v (known: %v)\n", unknown, registry.Names())
			return nil, apperrors.ExitErrorConfig
		}
		return clients, apperrors.ExitSuccess
	}

	clients := orchestration.SelectDefaultBackends(registry.All(), a.Config.Extras)
	if len(clients) < 2 {
		fmt.Fprintf(a.ErrWriter,
			"Error: %v\nConfigure API keys (e.g. OPENAI_API_KEY, ANTHROPIC_API_KEY) or provide a catalog with -config.\n",
			apperrors.InsufficientBackendsError{Available: len(clients)})
		return nil, apperrors.ExitErrorBackends
	}
	return clients, apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
