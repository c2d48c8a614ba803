package backend

import (
	"context"
	"strings"
)

//go:generate mockgen -source=backend.go -destination=mocks/mock_client.go -package=mocks

// Tier buckets backends for the default selection policy: lightweight models
// first, flagship models second, everything else last.
type Tier int

// Tiers, in selection order.
const (
	TierLightweight Tier = 1
	TierFlagship    Tier = 2
	TierOther       Tier = 3
)

// String returns a human-readable tier name.
func (t Tier) String() string {
	switch t {
	case TierLightweight:
		return "lightweight"
	case TierFlagship:
		return "flagship"
	default:
		return "other"
	}
}

// Info identifies a backend to the rest of the application.
type Info struct {
	// ID is the stable key a backend is registered and reported under.
	ID string
	// DisplayName is the human-facing name used in output.
	DisplayName string
	// Tier drives the default selection policy.
	Tier Tier
}

// Client is a single text-generation backend. Submit issues one prompt and
// blocks until the backend responds, the context is done, or the call fails.
type Client interface {
	// Identify returns the backend's static identity.
	Identify() Info
	// Submit sends the prompt and returns the response text. Failures are
	// returned as apperrors.BackendError so callers can classify them.
	Submit(ctx context.Context, prompt string) (string, error)
}

var (
	lightweightMarkers = []string{"mini", "nano", "lite", "haiku", "flash", "small", "tiny"}
	flagshipMarkers    = []string{"opus", "ultra", "pro", "large", "4o", "o1", "sonnet"}
)

// ParseTier parses an explicit tier name from the catalog.
func ParseTier(s string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lightweight":
		return TierLightweight, true
	case "flagship":
		return TierFlagship, true
	case "other":
		return TierOther, true
	}
	return 0, false
}

// ClassifyTier guesses a model's tier from its name. Catalog entries can
// override the guess with an explicit tier.
func ClassifyTier(model string) Tier {
	lower := strings.ToLower(model)
	for _, m := range lightweightMarkers {
		if strings.Contains(lower, m) {
			return TierLightweight
		}
	}
	for _, m := range flagshipMarkers {
		if strings.Contains(lower, m) {
			return TierFlagship
		}
	}
	return TierOther
}
