package presence

// EventKind identifies a realtime side-channel event.
type EventKind string

const (
	EventOnline      EventKind = "online"
	EventOffline     EventKind = "offline"
	EventNewMessage  EventKind = "new-message"
	EventTypingStart EventKind = "typing-start"
	EventTypingStop  EventKind = "typing-stop"
	EventReadReceipt EventKind = "read-receipt"
)

// Event is one frame on the presence channel. CID is set only for
// new-message and read-receipt events.
type Event struct {
	Kind EventKind `json:"kind"`
	From string    `json:"from"`
	To   string    `json:"to"`
	CID  string    `json:"cid,omitempty"`
	At   int64     `json:"at"`
}
