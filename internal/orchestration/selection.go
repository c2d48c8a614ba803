package orchestration

import (
	"github.com/agbru/aicompare/internal/backend"
)

// Comparison sizes used by the default selection policy.
const (
	defaultComparisonSize = 2
	extrasComparisonSize  = 4
)

// SelectDefaultBackends applies the default selection policy when the user
// names no explicit backend set: bucket the catalog into lightweight,
// flagship and other tiers, concatenate in that order, and take the first
// two (first four when extras are enabled). Catalog order is preserved
// within each tier.
func SelectDefaultBackends(clients []backend.Client, extras bool) []backend.Client {
	var lightweight, flagship, other []backend.Client
	for _, c := range clients {
		switch c.Identify().Tier {
		case backend.TierLightweight:
			lightweight = append(lightweight, c)
		case backend.TierFlagship:
			flagship = append(flagship, c)
		default:
			other = append(other, c)
		}
	}

	ordered := make([]backend.Client, 0, len(clients))
	ordered = append(ordered, lightweight...)
	ordered = append(ordered, flagship...)
	ordered = append(ordered, other...)

	limit := defaultComparisonSize
	if extras {
		limit = extrasComparisonSize
	}
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// ResolveBackends looks up an explicit backend set in the registry,
// preserving the requested order. Unknown IDs are reported all at once so
// the user can fix their invocation in one pass.
func ResolveBackends(registry *backend.Registry, ids []string) ([]backend.Client, []string) {
	clients := make([]backend.Client, 0, len(ids))
	var unknown []string
	for _, id := range ids {
		client, ok := registry.Get(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		clients = append(clients, client)
	}
	return clients, unknown
}
