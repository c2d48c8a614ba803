package app

import (
	"os"

	"github.com/agbru/aicompare/internal/backend"
	"github.com/agbru/aicompare/internal/config"
)

// BuildRegistry instantiates a client for every usable catalog entry and
// registers it. Entries whose API key variable is named but unset are
// skipped: a missing key means the backend is not configured on this
// machine, not that the run should fail.
func BuildRegistry(catalog config.Catalog) (*backend.Registry, error) {
	registry := backend.NewRegistry()
	for _, entry := range catalog.Backends {
		client, ok := buildClient(entry)
		if !ok {
			continue
		}
		if err := registry.Register(client); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// buildClient constructs the client matching the entry's wire protocol.
// Returns false when the entry requires an API key that is not set.
func buildClient(entry config.CatalogEntry) (backend.Client, bool) {
	apiKey := ""
	if entry.APIKeyEnv != "" {
		apiKey = os.Getenv(entry.APIKeyEnv)
		if apiKey == "" {
			return nil, false
		}
	}

	displayName := entry.DisplayName
	if displayName == "" {
		displayName = entry.ID
	}
	tier, ok := backend.ParseTier(entry.Tier)
	if !ok {
		tier = backend.ClassifyTier(entry.Model)
	}
	info := backend.Info{ID: entry.ID, DisplayName: displayName, Tier: tier}

	switch entry.Kind {
	case config.KindAnthropic:
		return backend.NewAnthropicClient(backend.AnthropicOptions{
			Info:      info,
			BaseURL:   entry.BaseURL,
			Model:     entry.Model,
			APIKey:    apiKey,
			MaxTokens: entry.MaxTokens,
		}), true
	default:
		return backend.NewOpenAIClient(backend.OpenAIOptions{
			Info:    info,
			BaseURL: entry.BaseURL,
			Model:   entry.Model,
			APIKey:  apiKey,
		}), true
	}
}
