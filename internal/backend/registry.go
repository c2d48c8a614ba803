package backend

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrClientNotFound indicates a lookup for an unregistered backend ID.
	ErrClientNotFound = errors.New("backend not found")
	// ErrClientRegistered indicates a duplicate registration attempt.
	ErrClientRegistered = errors.New("backend already registered")
	// ErrClientInvalid indicates a registration with an empty ID or nil client.
	ErrClientInvalid = errors.New("backend id and client are required")
)

// Registry holds the clients built from the backend catalog. All methods are
// safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: map[string]Client{}}
}

// Register adds a client under its identity's ID. IDs are matched
// case-insensitively.
func (r *Registry) Register(client Client) error {
	if client == nil {
		return ErrClientInvalid
	}
	key := normalizeID(client.Identify().ID)
	if key == "" {
		return ErrClientInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[key]; exists {
		return ErrClientRegistered
	}
	r.clients[key] = client
	return nil
}

// Get returns the client registered under id.
func (r *Registry) Get(id string) (Client, bool) {
	key := normalizeID(id)
	if key == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[key]
	return client, ok
}

// Names returns all registered backend IDs in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered clients ordered by ID.
func (r *Registry) All() []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)

	clients := make([]Client, 0, len(names))
	for _, name := range names {
		clients = append(clients, r.clients[name])
	}
	return clients
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
