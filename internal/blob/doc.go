// Package blob provides content-addressed storage for encrypted message
// payloads: an in-memory store for tests and local development, and an
// HTTP client for a pinning gateway.
package blob
