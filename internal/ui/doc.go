// Package ui provides terminal color themes shared by the CLI and TUI
// presentation layers. Themes are process-wide and guarded by a mutex so the
// CLI, TUI, and tests can switch palettes safely.
package ui
