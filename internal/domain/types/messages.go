package types

import "time"

// DeliveryStatus is a client-local annotation on an outgoing message. It is
// driven by write confirmation and presence-channel read receipts, never by
// the ledger.
type DeliveryStatus string

const (
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryRead      DeliveryStatus = "read"
)

// PointerRecord is an on-ledger pointer to an encrypted message blob.
type PointerRecord struct {
	CID        string `json:"cid"`
	UploadedAt int64  `json:"uploadedAt"`
}

// MessageBlob is the content stored off-ledger, one blob per message.
// Encoded with deterministic CBOR before upload so identical messages yield
// identical content identifiers. Ciphertext is the base64 nonce||ciphertext
// envelope produced by the session layer.
type MessageBlob struct {
	Sender     Address `cbor:"1,keyasint"`
	Receiver   Address `cbor:"2,keyasint"`
	Ciphertext string  `cbor:"3,keyasint"`
	SentAt     int64   `cbor:"4,keyasint"`
}

// MessageRecord is a decrypted message as rendered in a conversation.
// Mine reports the logical sender from the reader's perspective.
type MessageRecord struct {
	CID     string         `json:"cid"`
	EventID string         `json:"eventId,omitempty"`
	From    Address        `json:"from"`
	To      Address        `json:"to"`
	Mine    bool           `json:"mine"`
	Content string         `json:"content"`
	SentAt  time.Time      `json:"sentAt"`
	Status  DeliveryStatus `json:"status,omitempty"`
}
