package domain

import (
	"errors"
	"fmt"
)

// The error taxonomy. Crypto and key errors stay distinguishable all the way
// to the CLI boundary so it can choose between "retry", "re-exchange keys"
// and "data unrecoverable" messaging; they are never collapsed into a
// generic failure.
var (
	// ErrKeyGeneration: the crypto primitive was unavailable or rejected its
	// parameters. Fatal to the initiating operation, not auto-retried.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrKeyNotFound: no private key is stored locally for an account that is
	// expected to have one. Recoverable only by key import or account
	// re-creation; there is no other path back to old ciphertext.
	ErrKeyNotFound = errors.New("private key not found")

	// ErrUnwrap: a wrapped session key failed to decrypt (wrong key or
	// corrupted ciphertext). Distinct from ErrKeyNotFound so the caller can
	// tell "regenerate identity" from "retry".
	ErrUnwrap = errors.New("session key unwrap failed")

	// ErrAuthentication: a message envelope failed its authentication tag.
	// The item is undecryptable; batch operations skip it and continue.
	ErrAuthentication = errors.New("message authentication failed")

	// ErrNoSessionKey: no usable symmetric key could be resolved for the
	// pair. The caller must initiate key exchange before retrying.
	ErrNoSessionKey = errors.New("no session key for conversation")

	// ErrBlobNotFound: the blob store has no content for the identifier.
	// A defined condition, not a transport fault.
	ErrBlobNotFound = errors.New("blob not found")
)

// TransportError wraps a ledger or blob-store failure with enough context
// for a manual retry. Ledger writes are never auto-retried (they cost gas);
// idempotent reads may be.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Transport wraps err as a TransportError, or returns nil if err is nil.
func Transport(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Op: op, Err: err}
}
