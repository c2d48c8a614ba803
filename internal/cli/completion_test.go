package cli

import (
	"bytes"
	"strings"
	"testing"
)

var completionBackends = []string{"openai", "claude", "ollama"}

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell    string
		contains []string
	}{
		{
			shell: "bash",
			contains: []string{
				"_aicompare_completions",
				"complete -F _aicompare_completions aicompare",
				"openai claude ollama",
				"side-by-side unified analysis-only",
			},
		},
		{
			shell: "zsh",
			contains: []string{
				"#compdef aicompare",
				"_arguments",
				"openai claude ollama",
				"-mode[Display mode for response bodies]",
			},
		},
		{
			shell: "fish",
			contains: []string{
				"complete -c aicompare -f",
				"-l backends",
				"-xa 'openai claude ollama'",
				"-l completion",
			},
		},
		{
			shell: "powershell",
			contains: []string{
				"Register-ArgumentCompleter -CommandName 'aicompare'",
				"$aicompareBackends = @('openai', 'claude', 'ollama')",
				"'-mode'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, completionBackends); err != nil {
				t.Fatalf("GenerateCompletion(%s): %v", tt.shell, err)
			}
			script := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(script, want) {
					t.Errorf("%s script should contain %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_PowerShellAlias(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := GenerateCompletion(&buf, "ps", completionBackends); err != nil {
		t.Fatalf("GenerateCompletion(ps): %v", err)
	}
	if !strings.Contains(buf.String(), "Register-ArgumentCompleter") {
		t.Error("ps alias should produce the PowerShell script")
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := GenerateCompletion(&buf, "tcsh", completionBackends)
	if err == nil {
		t.Fatal("expected an error for an unsupported shell")
	}
	if !strings.Contains(err.Error(), "tcsh") {
		t.Errorf("error should name the shell, got: %v", err)
	}
}

func TestFlagRegistryCoversEveryFlagOnce(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, f := range flagRegistry {
		key := flagKey(f)
		if key == "" {
			t.Error("registry entry without a name")
		}
		if seen[key] {
			t.Errorf("duplicate registry entry: %s", key)
		}
		seen[key] = true
	}
	for _, required := range []string{"backends", "mode", "timeout", "output", "completion"} {
		if !seen[required] {
			t.Errorf("registry missing flag %s", required)
		}
	}
}
