// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the AICMP_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// buildEnvOverrides returns the declarative table of all environment
// variable overrides. The backends and mode flags parse into intermediate
// strings, so their overrides target those instead of the config directly.
func buildEnvOverrides(backends, mode *string) []envOverride {
	return []envOverride{
		// String overrides
		{"BACKENDS", []string{"backends"}, func(_ *AppConfig, v string) {
			*backends = v
		}},
		{"MODE", []string{"mode"}, func(_ *AppConfig, v string) {
			*mode = v
		}},
		{"CONFIG", []string{"config"}, func(c *AppConfig, v string) {
			c.CatalogFile = v
		}},
		{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) {
			c.OutputFile = v
		}},
		{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) {
			c.MetricsAddr = v
		}},
		{"TRACE_FILE", []string{"trace-file"}, func(c *AppConfig, v string) {
			c.TraceFile = v
		}},

		// Duration overrides
		{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
			if parsed, err := time.ParseDuration(v); err == nil {
				c.Timeout = parsed
			}
		}},

		// Boolean overrides
		{"EXTRAS", []string{"extras"}, func(c *AppConfig, v string) {
			c.Extras = parseBoolEnv(v, c.Extras)
		}},
		{"EXPLAIN", []string{"explain"}, func(c *AppConfig, v string) {
			c.Explain = parseBoolEnv(v, c.Explain)
		}},
		{"TUI", []string{"tui"}, func(c *AppConfig, v string) {
			c.TUI = parseBoolEnv(v, c.TUI)
		}},
		{"INTERACTIVE", []string{"interactive", "i"}, func(c *AppConfig, v string) {
			c.Interactive = parseBoolEnv(v, c.Interactive)
		}},
		{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) {
			c.Quiet = parseBoolEnv(v, c.Quiet)
		}},
		{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) {
			c.Verbose = parseBoolEnv(v, c.Verbose)
		}},
		{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
			c.NoColor = parseBoolEnv(v, c.NoColor)
		}},
	}
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with AICMP_):
//   - BACKENDS, MODE, CONFIG, OUTPUT, METRICS_ADDR, TRACE_FILE, TIMEOUT,
//     EXTRAS, EXPLAIN, TUI, INTERACTIVE, QUIET, VERBOSE, NO_COLOR
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet, backends, mode *string) {
	for _, o := range buildEnvOverrides(backends, mode) {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
