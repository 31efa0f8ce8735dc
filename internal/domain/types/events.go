package types

// EventKind enumerates the ledger contract's log entries consumed client-side.
type EventKind string

const (
	EventFriendRequestSent     EventKind = "FriendRequestSent"
	EventFriendRequestAccepted EventKind = "FriendRequestAccepted"
	EventFriendRequestRejected EventKind = "FriendRequestRejected"
	EventFriendRemoved         EventKind = "FriendRemoved"
	EventEncryptedMessage      EventKind = "EncryptedMessageStored"
	EventUserRegistered        EventKind = "UserRegistered"
)

// LedgerEvent is one entry of the append-only contract log. ID is stable for
// a given log entry so replays can be deduplicated. Name and CID are only set
// for the kinds that carry them.
type LedgerEvent struct {
	ID        string    `json:"id" cbor:"1,keyasint"`
	Kind      EventKind `json:"kind" cbor:"2,keyasint"`
	Sender    Address   `json:"sender" cbor:"3,keyasint"`
	Receiver  Address   `json:"receiver" cbor:"4,keyasint"`
	Timestamp int64     `json:"timestamp" cbor:"5,keyasint"`
	Name      string    `json:"name,omitempty" cbor:"6,keyasint,omitempty"`
	CID       string    `json:"cid,omitempty" cbor:"7,keyasint,omitempty"`
}

// IsRelationship reports whether the event feeds the relationship reducer.
func (e LedgerEvent) IsRelationship() bool {
	switch e.Kind {
	case EventFriendRequestSent, EventFriendRequestAccepted,
		EventFriendRequestRejected, EventFriendRemoved:
		return true
	}
	return false
}
