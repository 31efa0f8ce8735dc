package interfaces

import (
	"context"

	domaintypes "github.com/roudra323/Chitchat-DApp-Project/internal/domain/types"
)

// Ledger is the narrow view of the ChitChat contract the client depends on.
// Implementations bind a concrete ledger client library; the core never
// sees the binding's types. Writes wait for durable confirmation before
// returning.
type Ledger interface {
	// Accounts.
	CreateAccount(ctx context.Context, account domaintypes.Address, name, profileCID string, publicKey []byte) error
	GetUserInfo(ctx context.Context, account domaintypes.Address) (domaintypes.UserInfo, error)
	GetUserPublicKey(ctx context.Context, account domaintypes.Address) ([]byte, error)
	IsUserRegistered(ctx context.Context, account domaintypes.Address) (bool, error)

	// Friend requests. from is always the acting account: the requester for
	// Send, the addressee for Accept and Reject.
	SendFriendRequest(ctx context.Context, from, to domaintypes.Address) error
	AcceptFriendRequest(ctx context.Context, from, to domaintypes.Address) error
	RejectFriendRequest(ctx context.Context, from, to domaintypes.Address) error
	RemoveFriend(ctx context.Context, from, to domaintypes.Address) error
	FriendRequestStatus(ctx context.Context, account, other domaintypes.Address) (domaintypes.FriendRequestStatus, error)

	// Key exchange.
	IsKeyExchanged(ctx context.Context, account, other domaintypes.Address) (bool, error)
	ShareSymmetricKey(ctx context.Context, from, to domaintypes.Address, wrappedKey []byte) error
	// GetSharedKeyFrom returns the wrapped key sender published for account,
	// or nil if none exists.
	GetSharedKeyFrom(ctx context.Context, account, sender domaintypes.Address) ([]byte, error)

	// Messages.
	SendEncryptedMessage(ctx context.Context, from, to domaintypes.Address, cid string) error
	GetEncryptedMessageHistory(ctx context.Context, a, b domaintypes.Address) ([]domaintypes.PointerRecord, error)

	// QueryEvents returns the historical contract log in emission order.
	QueryEvents(ctx context.Context) ([]domaintypes.LedgerEvent, error)

	// SubscribeEvents delivers contract log entries in emission order until
	// ctx is done, after which the channel is closed. Delivery order is
	// assumed, not guaranteed, to match emission order.
	SubscribeEvents(ctx context.Context) (<-chan domaintypes.LedgerEvent, error)
}

// BlobStore is content-addressed storage. Identical bytes yield the same
// identifier; Get of a never-written identifier is domain.ErrBlobNotFound,
// not a transport fault.
type BlobStore interface {
	Put(ctx context.Context, data []byte) (cid string, err error)
	Get(ctx context.Context, cid string) ([]byte, error)
}
