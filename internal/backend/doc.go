// Package backend defines the client abstraction for text-generation
// backends, a concurrency-safe registry of configured clients, and HTTP
// implementations for OpenAI-compatible and Anthropic APIs.
//
// A Client resolves every call to either a response body or an error that
// internal/errors can classify; the orchestration layer never needs to know
// which wire protocol a backend speaks.
package backend
