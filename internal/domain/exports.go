package domain

import (
	interfaces "github.com/roudra323/Chitchat-DApp-Project/internal/domain/interfaces"
	types "github.com/roudra323/Chitchat-DApp-Project/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Address             = types.Address
	UserInfo            = types.UserInfo
	Relationship        = types.Relationship
	RelationshipStatus  = types.RelationshipStatus
	FriendRequestStatus = types.FriendRequestStatus
	EventKind           = types.EventKind
	LedgerEvent         = types.LedgerEvent
	PointerRecord       = types.PointerRecord
	MessageBlob         = types.MessageBlob
	MessageRecord       = types.MessageRecord
	DeliveryStatus      = types.DeliveryStatus
)

const (
	StatusPending  = types.StatusPending
	StatusAccepted = types.StatusAccepted
	StatusRejected = types.StatusRejected

	RequestNone     = types.RequestNone
	RequestSent     = types.RequestSent
	RequestReceived = types.RequestReceived
	RequestAccepted = types.RequestAccepted

	EventFriendRequestSent     = types.EventFriendRequestSent
	EventFriendRequestAccepted = types.EventFriendRequestAccepted
	EventFriendRequestRejected = types.EventFriendRequestRejected
	EventFriendRemoved         = types.EventFriendRemoved
	EventEncryptedMessage      = types.EventEncryptedMessage
	EventUserRegistered        = types.EventUserRegistered

	DeliverySent      = types.DeliverySent
	DeliveryDelivered = types.DeliveryDelivered
	DeliveryRead      = types.DeliveryRead

	ScopeIdentityPrivate = interfaces.ScopeIdentityPrivate
	ScopeSessionKey      = interfaces.ScopeSessionKey
)

// Helper re-exports.
var (
	NormalizeAddress = types.NormalizeAddress
	PairKey          = types.PairKey
	LowerAddress     = types.LowerAddress
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	CryptoProvider  = interfaces.CryptoProvider
	PrivateKey      = interfaces.PrivateKey
	PublicKey       = interfaces.PublicKey
	KeyStore        = interfaces.KeyStore
	Ledger          = interfaces.Ledger
	BlobStore       = interfaces.BlobStore
	IdentityService = interfaces.IdentityService
	SessionService  = interfaces.SessionService
	MessageService  = interfaces.MessageService
	RosterService   = interfaces.RosterService
)
