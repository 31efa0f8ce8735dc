package types

// RelationshipStatus is the latest folded status of an unordered account pair.
type RelationshipStatus string

const (
	StatusPending  RelationshipStatus = "pending"
	StatusAccepted RelationshipStatus = "accepted"
	StatusRejected RelationshipStatus = "rejected"
)

// FriendRequestStatus mirrors the ledger contract's per-pair request query.
type FriendRequestStatus int

const (
	RequestNone FriendRequestStatus = iota
	RequestSent
	RequestReceived
	RequestAccepted
)

func (s FriendRequestStatus) String() string {
	switch s {
	case RequestSent:
		return "sent"
	case RequestReceived:
		return "received"
	case RequestAccepted:
		return "accepted"
	default:
		return "none"
	}
}

// Relationship is a folded edge between two accounts. Sender and Receiver
// keep the direction of the originating request; status is derived from the
// latest-timestamped event for the unordered pair.
type Relationship struct {
	Sender    Address            `json:"sender"`
	Receiver  Address            `json:"receiver"`
	Timestamp int64              `json:"timestamp"`
	Status    RelationshipStatus `json:"status"`
}

// Peer returns the other side of the relationship from self's perspective.
func (r Relationship) Peer(self Address) Address {
	if r.Sender == self {
		return r.Receiver
	}
	return r.Sender
}
