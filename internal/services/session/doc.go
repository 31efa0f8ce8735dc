// Package session owns the per-conversation symmetric key: generation,
// wrapping under the counterparty's identity key, unwrapping with our own,
// and the authenticated encryption of message bodies.
package session
