// Package ledger provides implementations of the ChitChat contract
// interface: an in-memory ledger with full contract semantics for tests and
// local development, and an HTTP client for a hosted ledger gateway.
package ledger
