// Package config handles command-line parsing, environment overrides and the
// backend catalog file. Priority is CLI flags > environment variables >
// defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/aicompare/internal/errors"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "AICMP_"

// Defaults applied before flags and environment overrides.
const (
	DefaultTimeout   = 2 * time.Minute
	DefaultTraceFile = ""
)

// DisplayMode selects how a settled comparison is rendered.
type DisplayMode string

// Display modes.
const (
	// DisplaySideBySide renders the responses in parallel columns.
	DisplaySideBySide DisplayMode = "side-by-side"
	// DisplayUnified renders the responses one after another.
	DisplayUnified DisplayMode = "unified"
	// DisplayAnalysisOnly skips the response bodies and shows only the
	// analysis.
	DisplayAnalysisOnly DisplayMode = "analysis-only"
)

// ParseDisplayMode validates a display mode string.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(s) {
	case DisplaySideBySide, DisplayUnified, DisplayAnalysisOnly:
		return DisplayMode(s), nil
	}
	return "", apperrors.NewConfigError(
		"invalid display mode %q (valid: %s, %s, %s)",
		s, DisplaySideBySide, DisplayUnified, DisplayAnalysisOnly)
}

// AppConfig holds the complete runtime configuration.
type AppConfig struct {
	// Prompt is the prompt sent to every selected backend.
	Prompt string
	// Backends is the explicit backend set; empty means the default
	// selection policy applies.
	Backends []string
	// AddBackend, when set, re-queries this backend incrementally after
	// the comparison settles.
	AddBackend string
	// Extras widens the default selection from two backends to four.
	Extras bool
	// DisplayMode selects the output rendering.
	DisplayMode DisplayMode
	// Explain adds the per-response explanation view to the output.
	Explain bool
	// Timeout bounds the whole comparison.
	Timeout time.Duration
	// CatalogFile is the path to the YAML backend catalog; empty uses the
	// built-in catalog.
	CatalogFile string
	// OutputFile, when set, receives a markdown export of the session.
	OutputFile string
	// MetricsAddr, when set, serves Prometheus metrics on this address for
	// the lifetime of the run.
	MetricsAddr string
	// TraceFile, when set, receives the trace spans of the run.
	TraceFile string
	// TUI launches the interactive dashboard instead of plain output.
	TUI bool
	// Interactive starts the prompt loop instead of a one-shot comparison.
	Interactive bool
	// Completion, when set, prints a shell completion script and exits.
	Completion string
	// Quiet suppresses progress and prints only the final output.
	Quiet bool
	// Verbose enables debug logging.
	Verbose bool
	// NoColor disables ANSI colors regardless of terminal support.
	NoColor bool
}

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment overrides for flags not explicitly set, and validates the
// result. The remaining positional arguments form the prompt.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		DisplayMode: DisplaySideBySide,
		Timeout:     DefaultTimeout,
		TraceFile:   DefaultTraceFile,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] <prompt>\n\nFlags:\n", programName)
		fs.PrintDefaults()
	}

	var backends string
	var mode string
	fs.StringVar(&backends, "backends", "", "Comma-separated backend IDs to query (default: automatic selection)")
	fs.StringVar(&cfg.AddBackend, "add", "", "Backend ID to add incrementally after the comparison settles")
	fs.BoolVar(&cfg.Extras, "extras", false, "Query four backends instead of two under automatic selection")
	fs.StringVar(&mode, "mode", string(cfg.DisplayMode), "Display mode: side-by-side, unified or analysis-only")
	fs.BoolVar(&cfg.Explain, "explain", false, "Add the per-response explanation view to the output")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Overall comparison timeout (e.g. 90s, 2m)")
	fs.StringVar(&cfg.CatalogFile, "config", "", "Path to the YAML backend catalog")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write a markdown export of the session to this file")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for -output")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	fs.StringVar(&cfg.TraceFile, "trace-file", cfg.TraceFile, "Write trace spans to this file")
	fs.BoolVar(&cfg.TUI, "tui", false, "Launch the interactive dashboard")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Start an interactive prompt loop")
	fs.BoolVar(&cfg.Interactive, "i", false, "Shorthand for -interactive")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script for the given shell (bash, zsh, fish, powershell)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for -verbose")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable ANSI colors")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	cfg.Prompt = strings.TrimSpace(strings.Join(fs.Args(), " "))

	applyEnvOverrides(&cfg, fs, &backends, &mode)

	cfg.Backends = splitBackends(backends)

	parsedMode, err := ParseDisplayMode(mode)
	if err != nil {
		return AppConfig{}, err
	}
	cfg.DisplayMode = parsedMode

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// splitBackends parses the comma-separated backend list, dropping empty
// entries.
func splitBackends(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validate enforces cross-field constraints after flags and environment
// overrides have been applied.
func validate(cfg AppConfig) error {
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.TUI && cfg.Quiet {
		return apperrors.NewConfigError("-tui and -quiet are mutually exclusive")
	}
	if cfg.TUI && cfg.Interactive {
		return apperrors.NewConfigError("-tui and -interactive are mutually exclusive")
	}
	if len(cfg.Backends) == 1 {
		return apperrors.NewConfigError("a comparison needs at least 2 backends, got 1 (%s)", cfg.Backends[0])
	}
	return nil
}
