package interfaces

import (
	domaintypes "github.com/roudra323/Chitchat-DApp-Project/internal/domain/types"
)

// Key store scopes. Each scope is its own namespace; ids never collide
// across scopes.
const (
	ScopeIdentityPrivate = "identity-private"
	ScopeSessionKey      = "session-key"
)

// KeyStore is durable, namespaced, device-local key persistence. Values are
// stored base64-encoded. There is no cross-device synchronization; that is a
// deliberate scope boundary.
type KeyStore interface {
	Save(scope, id string, value []byte) error
	// Load returns the stored bytes, or ok=false if absent.
	Load(scope, id string) (value []byte, ok bool, err error)
	Has(scope, id string) (bool, error)
	Clear(scope, id string) error
	// ClearAll removes the account's private key and every cached session
	// key (logout).
	ClearAll(account domaintypes.Address) error
	Close() error
}
