// This file contains the YAML backend catalog.

package config

import (
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/aicompare/internal/errors"
)

// CatalogEntry describes one backend in the catalog file.
type CatalogEntry struct {
	// ID is the stable backend identifier.
	ID string `yaml:"id"`
	// DisplayName is the human-facing name; defaults to ID.
	DisplayName string `yaml:"display_name"`
	// Kind selects the wire protocol: "openai" or "anthropic".
	Kind string `yaml:"kind"`
	// BaseURL is the API root.
	BaseURL string `yaml:"base_url"`
	// Model is the model name sent with every request.
	Model string `yaml:"model"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env"`
	// Tier optionally overrides the tier guessed from the model name:
	// "lightweight", "flagship" or "other".
	Tier string `yaml:"tier"`
	// MaxTokens caps the response length where the protocol supports it.
	MaxTokens int `yaml:"max_tokens"`
}

// Catalog is the set of configured backends, in file order.
type Catalog struct {
	Backends []CatalogEntry `yaml:"backends"`
}

// Backend kinds accepted in the catalog.
const (
	KindOpenAI    = "openai"
	KindAnthropic = "anthropic"
)

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, apperrors.NewConfigError("reading backend catalog %s: %v", path, err)
	}
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, apperrors.NewConfigError("parsing backend catalog %s: %v", path, err)
	}
	if err := validateCatalog(catalog); err != nil {
		return Catalog{}, err
	}
	return catalog, nil
}

// DefaultCatalog returns the built-in catalog used when no file is given.
// API keys still come from the environment; entries whose key variable is
// unset are filtered out at client-building time.
func DefaultCatalog() Catalog {
	return Catalog{Backends: []CatalogEntry{
		{
			ID:          "gpt-4o-mini",
			DisplayName: "GPT-4o mini",
			Kind:        KindOpenAI,
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
		},
		{
			ID:          "claude-haiku",
			DisplayName: "Claude Haiku",
			Kind:        KindAnthropic,
			BaseURL:     "https://api.anthropic.com/v1",
			Model:       "claude-haiku-4-20250514",
			APIKeyEnv:   "ANTHROPIC_API_KEY",
		},
		{
			ID:          "gpt-4o",
			DisplayName: "GPT-4o",
			Kind:        KindOpenAI,
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o",
			APIKeyEnv:   "OPENAI_API_KEY",
		},
		{
			ID:          "claude-sonnet",
			DisplayName: "Claude Sonnet",
			Kind:        KindAnthropic,
			BaseURL:     "https://api.anthropic.com/v1",
			Model:       "claude-sonnet-4-20250514",
			APIKeyEnv:   "ANTHROPIC_API_KEY",
		},
		{
			ID:          "ollama",
			DisplayName: "Ollama (local)",
			Kind:        KindOpenAI,
			BaseURL:     "http://localhost:11434/v1",
			Model:       "llama3",
		},
	}}
}

func validateCatalog(catalog Catalog) error {
	seen := map[string]bool{}
	for i, e := range catalog.Backends {
		if e.ID == "" {
			return apperrors.NewConfigError("catalog entry %d has no id", i)
		}
		if seen[e.ID] {
			return apperrors.NewConfigError("catalog entry %q is duplicated", e.ID)
		}
		seen[e.ID] = true
		if e.Kind != KindOpenAI && e.Kind != KindAnthropic {
			return apperrors.NewConfigError("catalog entry %q has unknown kind %q (valid: %s, %s)",
				e.ID, e.Kind, KindOpenAI, KindAnthropic)
		}
		if e.BaseURL == "" {
			return apperrors.NewConfigError("catalog entry %q has no base_url", e.ID)
		}
		if e.Model == "" {
			return apperrors.NewConfigError("catalog entry %q has no model", e.ID)
		}
	}
	return nil
}
