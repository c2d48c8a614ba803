package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "-" (e.g., "timeout")
	Short     string   // short flag alias (e.g., "q")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "mode", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsBackend bool     // true if values come from the backend catalog (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "backends", Help: "Comma-separated backend IDs to query", IsBackend: true, ValueName: "backends"},
	{Long: "add", Help: "Backend ID to add after the comparison settles", IsBackend: true, ValueName: "backend"},
	{Long: "extras", Help: "Query four backends instead of two"},
	{Long: "mode", Help: "Display mode", Values: []string{"side-by-side", "unified", "analysis-only"}, ValueName: "mode"},
	{Long: "explain", Help: "Add the per-response explanation view"},
	{Long: "timeout", Help: "Overall comparison timeout", Values: []string{"30s", "1m", "2m", "5m", "10m"}, ValueName: "duration"},
	{Long: "config", Help: "Backend catalog file", IsFile: true, ValueName: "file"},
	{Long: "output", Short: "o", Help: "Markdown report output path", IsFile: true, ValueName: "file"},
	{Long: "metrics-addr", Help: "Prometheus metrics listen address", Values: []string{":9090", "localhost:9090"}, ValueName: "address"},
	{Long: "trace-file", Help: "Trace span output path", IsFile: true, ValueName: "file"},
	{Long: "tui", Help: "Launch the interactive dashboard"},
	{Long: "interactive", Short: "i", Help: "Start an interactive prompt loop"},
	{Long: "quiet", Short: "q", Help: "Suppress progress output"},
	{Long: "verbose", Short: "v", Help: "Enable debug logging"},
	{Long: "no-color", Help: "Disable ANSI colors"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// zshHelpOverrides provides shell-specific help text overrides for zsh.
// Some flags carry slightly longer descriptions in zsh's _arguments format.
var zshHelpOverrides = map[string]string{
	"mode":     "Display mode for response bodies",
	"backends": "Backend IDs to query (comma-separated)",
}

// GenerateCompletion generates a shell completion script for the specified
// shell. The backends slice supplies the dynamic catalog IDs.
func GenerateCompletion(out io.Writer, shell string, backends []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, backends)
	case "zsh":
		return generateZshCompletion(out, backends)
	case "fish":
		return generateFishCompletion(out, backends)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, backends)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// formatBackendList joins backend IDs with space separators.
func formatBackendList(backends []string) string {
	return strings.Join(backends, " ")
}

// flagKey returns the identifier used for lookups: Long name if present, else Short.
func flagKey(f FlagCompletion) string {
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, backends []string) error {
	// Build opts string from registry
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "-"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	// Build case entries from registry. Order: backend flags, then static
	// value flags, then file flags.
	type caseEntry struct {
		patterns []string
		body     string
	}
	var orderedCases []caseEntry

	for _, f := range flagRegistry {
		if f.IsBackend {
			orderedCases = append(orderedCases, caseEntry{
				patterns: []string{"-" + f.Long},
				body:     `COMPREPLY=( $(compgen -W "${backends}" -- "${cur}") )`,
			})
		}
	}

	for _, f := range flagRegistry {
		if !f.IsBackend && !f.IsFile && len(f.Values) > 0 {
			orderedCases = append(orderedCases, caseEntry{
				patterns: []string{"-" + f.Long},
				body:     fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")),
			})
		}
	}

	var filePatterns []string
	for _, f := range flagRegistry {
		if f.IsFile {
			if f.Long != "" {
				filePatterns = append(filePatterns, "-"+f.Long)
			}
			if f.Short != "" {
				filePatterns = append(filePatterns, "-"+f.Short)
			}
		}
	}
	if len(filePatterns) > 0 {
		orderedCases = append(orderedCases, caseEntry{
			patterns: filePatterns,
			body: `# File/directory completion
            COMPREPLY=( $(compgen -f -- "${cur}") )`,
		})
	}

	// Format case entries
	var caseBody strings.Builder
	for _, c := range orderedCases {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(c.patterns, "|"))
		caseBody.WriteString(")\n")
		caseBody.WriteString("            ")
		caseBody.WriteString(c.body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	backendList := formatBackendList(backends)

	script := fmt.Sprintf(`# Bash completion script for aicompare
# Add this to your ~/.bashrc or ~/.bash_completion

_aicompare_completions() {
    local cur prev opts backends
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    # Available backends
    backends="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _aicompare_completions aicompare
`, strings.Join(opts, " "), backendList, caseBody.String())

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, backends []string) error {
	// Build _arguments entries from registry
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	backendList := formatBackendList(backends)

	script := fmt.Sprintf(`#compdef aicompare

# Zsh completion script for aicompare
# Add this to your ~/.zshrc or place in $fpath

_aicompare() {
    local -a backends
    backends=(%s)

    _arguments -s \
%s
}

_aicompare "$@"
`, backendList, strings.Join(args, " \\\n"))

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshHelp returns the help text for a flag in zsh, using an override if available.
func zshHelp(f FlagCompletion) string {
	key := flagKey(f)
	if override, ok := zshHelpOverrides[key]; ok {
		return override
	}
	return f.Help
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	help := zshHelp(f)

	// Build the value suffix
	valueSuffix := ""
	if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if f.IsBackend {
		valueSuffix = fmt.Sprintf(":%s:($backends)", f.ValueName)
	} else if len(f.Values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	} else if f.ValueName != "" {
		// Value-taking flag with no suggestions
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		// Has both short and long form
		return fmt.Sprintf("        '(-%s -%s)'{-%s,-%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '-%s[%s]%s'", f.Long, help, valueSuffix)
	}
	// Short only
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, backends []string) error {
	var lines []string

	lines = append(lines, "# Fish completion script for aicompare")
	lines = append(lines, "# Add this to ~/.config/fish/completions/aicompare.fish")
	lines = append(lines, "")
	lines = append(lines, "# Disable file completion by default")
	lines = append(lines, "complete -c aicompare -f")
	lines = append(lines, "")

	// Group flags into sections for comments.
	type section struct {
		comment string
		flags   []FlagCompletion
	}

	sections := []section{
		{comment: "# Help", flags: filterFlags("help")},
		{comment: "# Backend selection", flags: filterFlags("backends", "add", "extras")},
		{comment: "# Output options", flags: filterFlags("mode", "explain", "output", "quiet", "no-color")},
		{comment: "# Run options", flags: filterFlags("timeout", "config", "tui", "interactive", "verbose")},
		{comment: "# Observability", flags: filterFlags("metrics-addr", "trace-file")},
		{comment: "# Completion", flags: filterFlags("completion")},
	}

	backendList := formatBackendList(backends)

	for _, sec := range sections {
		lines = append(lines, sec.comment)
		for _, f := range sec.flags {
			lines = append(lines, fishCompleteLine(f, backendList))
		}
		lines = append(lines, "")
	}

	script := strings.Join(lines, "\n")

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// filterFlags returns flags from the registry matching the given long names.
func filterFlags(names ...string) []FlagCompletion {
	var result []FlagCompletion
	for _, name := range names {
		for _, f := range flagRegistry {
			if f.Long == name {
				result = append(result, f)
				break
			}
		}
	}
	return result
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, backendList string) string {
	var parts []string
	parts = append(parts, "complete -c aicompare")

	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}

	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	if f.IsFile {
		parts = append(parts, "-rF")
	} else if f.IsBackend {
		parts = append(parts, fmt.Sprintf("-xa '%s'", backendList))
	} else if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	} else if f.ValueName != "" {
		// Takes a value but no suggestions
		parts = append(parts, "-x")
	}

	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, backends []string) error {
	// Build $options entries from registry
	var optionEntries []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		if f.Long != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Long, f.Help))
		}
	}

	// Build context-aware switch entries: backend flags first, then flags
	// with static values.
	var switchEntries []string

	for _, f := range flagRegistry {
		if f.IsBackend {
			switchEntries = append(switchEntries, fmt.Sprintf(`        '-%s' {
            $aicompareBackends | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long))
		}
	}

	for _, f := range flagRegistry {
		if f.IsBackend || f.IsFile || len(f.Values) == 0 {
			continue
		}
		var quotedVals []string
		for _, v := range f.Values {
			quotedVals = append(quotedVals, fmt.Sprintf("'%s'", v))
		}
		switchEntries = append(switchEntries, fmt.Sprintf(`        '-%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quotedVals, ", ")))
	}

	// Format backend list for PowerShell
	psBackendList := "@()"
	if len(backends) > 0 {
		quoted := make([]string, len(backends))
		for i, b := range backends {
			quoted[i] = fmt.Sprintf("'%s'", b)
		}
		psBackendList = fmt.Sprintf("@(%s)", strings.Join(quoted, ", "))
	}

	script := fmt.Sprintf(`# PowerShell completion script for aicompare
# Add this to your $PROFILE

$aicompareBackends = %s

Register-ArgumentCompleter -CommandName 'aicompare' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $lastElement = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
%s
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psBackendList, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
