package interfaces

import (
	"context"

	domaintypes "github.com/roudra323/Chitchat-DApp-Project/internal/domain/types"
)

// IdentityService owns the per-account asymmetric identity keypair.
type IdentityService interface {
	// GenerateIdentity creates a keypair for the account, persists the
	// private half locally and returns the public half for on-chain
	// publication. The published key is immutable; losing the private half
	// makes every conversation with this identity permanently undecryptable.
	GenerateIdentity(account domaintypes.Address) (publicKey []byte, err error)

	HasIdentity(account domaintypes.Address) (bool, error)

	// ImportPrivateKey loads and imports the account's stored private key
	// for decrypt-only use. domain.ErrKeyNotFound if none is stored; that is
	// the unrecoverable-loss path.
	ImportPrivateKey(account domaintypes.Address) (PrivateKey, error)

	// ImportPublicKey imports external public key bytes for encrypt-only use.
	ImportPublicKey(der []byte) (PublicKey, error)

	// ExportPrivateKey and RestorePrivateKey move the stored private key in
	// and out of passphrase-protected backups, the one recovery path for a
	// lost device profile.
	ExportPrivateKey(account domaintypes.Address) ([]byte, error)
	RestorePrivateKey(account domaintypes.Address, der []byte) error
}

// SessionService owns the per-conversation symmetric key and the message
// body crypto.
type SessionService interface {
	// GetOrCreateSessionKey returns the cached key for the counterparty or
	// generates, caches and returns a fresh one. It never publishes the key;
	// publication is the caller's job via WrapForCounterparty.
	GetOrCreateSessionKey(counterparty domaintypes.Address) ([]byte, error)

	// CachedKey returns the locally cached session key if present.
	CachedKey(counterparty domaintypes.Address) (key []byte, ok bool, err error)

	// WrapForCounterparty encrypts raw key material under the counterparty's
	// public identity key; the output goes on the ledger.
	WrapForCounterparty(key, counterpartyPublicKey []byte) ([]byte, error)

	// Unwrap decrypts a wrapped key with account's private identity key and
	// caches the result under sender. domain.ErrKeyNotFound if the private
	// key is missing, domain.ErrUnwrap if decryption fails.
	Unwrap(account domaintypes.Address, wrapped []byte, sender domaintypes.Address) ([]byte, error)

	// DropKey clears the cached key for the pair (friend removal).
	DropKey(counterparty domaintypes.Address) error

	EncryptMessage(plaintext string, key []byte) (envelope string, err error)
	DecryptMessage(envelope string, key []byte) (plaintext string, err error)
}

// MessageService is the send/receive pipeline over ledger + blob store.
type MessageService interface {
	// Send encrypts plaintext, stores the blob, records the pointer on the
	// ledger and returns the CID. domain.ErrNoSessionKey means the caller
	// must trigger key exchange and retry.
	Send(ctx context.Context, account, counterparty domaintypes.Address, plaintext string) (cid string, err error)

	// History fetches, decrypts and timestamp-sorts the full conversation.
	// Pointers whose blobs cannot be fetched are skipped with a warning;
	// partial history still renders.
	History(ctx context.Context, account, counterparty domaintypes.Address) ([]domaintypes.MessageRecord, error)

	// HandleEvent processes one real-time EncryptedMessageStored event for
	// the active conversation. Returns nil (no error) for events that are
	// irrelevant or already seen.
	HandleEvent(ctx context.Context, account, active domaintypes.Address, ev domaintypes.LedgerEvent) (*domaintypes.MessageRecord, error)

	// MarkRead advances a sent message's client-local delivery status to
	// read, typically on a presence read receipt.
	MarkRead(cid string)

	// Status reports the client-local delivery status for a CID sent this
	// session.
	Status(cid string) (domaintypes.DeliveryStatus, bool)
}

// RosterService folds the contract's relationship event log into live
// pending/accepted views.
type RosterService interface {
	// Load replays the historical log once, in timestamp order.
	Load(ctx context.Context) error
	// Run subscribes to the live log and applies events sequentially until
	// ctx is done. One event finishes applying before the next starts.
	Run(ctx context.Context) error
	// OnChange registers a callback fired after each applied relationship
	// event. Must be set before Run.
	OnChange(fn func(domaintypes.LedgerEvent))
	Pending() []domaintypes.Relationship
	Accepted() []domaintypes.Relationship
}
