package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

// Contract-level failures, mirroring the revert reasons of the deployed
// contract.
var (
	ErrNotRegistered     = errors.New("account not registered")
	ErrAlreadyRegistered = errors.New("account already registered")
	ErrNoPendingRequest  = errors.New("no pending friend request")
	ErrAlreadyFriends    = errors.New("already friends")
	ErrRequestExists     = errors.New("friend request already pending")
	ErrNotFriends        = errors.New("not friends")
)

type userRecord struct {
	info      domain.UserInfo
	publicKey []byte
}

type pairState struct {
	accepted bool
	// pendingFrom is the requester while a request is open, empty otherwise.
	pendingFrom domain.Address
}

// Memory is an in-process ledger with the contract's semantics: account
// registry, friend state machine, per-sender shared-key slots, append-only
// message pointers and an event log with live fan-out.
type Memory struct {
	mu sync.Mutex

	now  func() time.Time
	seq  int64
	subs map[int]chan domain.LedgerEvent
	next int

	users      map[domain.Address]userRecord
	pairs      map[string]pairState              // unordered pair key
	sharedKeys map[string][]byte                 // "from>to"
	messages   map[string][]domain.PointerRecord // unordered pair key
	log        []domain.LedgerEvent
}

// NewMemory returns an empty in-memory ledger using the wall clock.
func NewMemory() *Memory { return NewMemoryAt(time.Now) }

// NewMemoryAt injects the clock, for deterministic event timestamps in tests.
func NewMemoryAt(now func() time.Time) *Memory {
	return &Memory{
		now:        now,
		subs:       make(map[int]chan domain.LedgerEvent),
		users:      make(map[domain.Address]userRecord),
		pairs:      make(map[string]pairState),
		sharedKeys: make(map[string][]byte),
		messages:   make(map[string][]domain.PointerRecord),
	}
}

func directed(from, to domain.Address) string { return string(from) + ">" + string(to) }

// emitLocked appends an event to the log and fans it out to subscribers.
// Slow subscribers drop events rather than blocking the ledger.
func (m *Memory) emitLocked(kind domain.EventKind, sender, receiver domain.Address, name, cid string) {
	m.seq++
	ev := domain.LedgerEvent{
		ID:        fmt.Sprintf("evt-%d", m.seq),
		Kind:      kind,
		Sender:    sender,
		Receiver:  receiver,
		Timestamp: m.now().Unix(),
		Name:      name,
		CID:       cid,
	}
	m.log = append(m.log, ev)
	for _, ch := range m.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (m *Memory) requireRegisteredLocked(accounts ...domain.Address) error {
	for _, a := range accounts {
		if _, ok := m.users[a]; !ok {
			return fmt.Errorf("%w: %s", ErrNotRegistered, a)
		}
	}
	return nil
}

func (m *Memory) CreateAccount(ctx context.Context, account domain.Address, name, profileCID string, publicKey []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[account]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, account)
	}
	m.users[account] = userRecord{
		info:      domain.UserInfo{Name: name, ProfileCID: profileCID},
		publicKey: append([]byte(nil), publicKey...),
	}
	m.emitLocked(domain.EventUserRegistered, account, "", name, profileCID)
	return nil
}

func (m *Memory) GetUserInfo(ctx context.Context, account domain.Address) (domain.UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[account]
	if !ok {
		return domain.UserInfo{}, fmt.Errorf("%w: %s", ErrNotRegistered, account)
	}
	return u.info, nil
}

func (m *Memory) GetUserPublicKey(ctx context.Context, account domain.Address) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[account]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, account)
	}
	return append([]byte(nil), u.publicKey...), nil
}

func (m *Memory) IsUserRegistered(ctx context.Context, account domain.Address) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[account]
	return ok, nil
}

func (m *Memory) SendFriendRequest(ctx context.Context, from, to domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireRegisteredLocked(from, to); err != nil {
		return err
	}
	pair := domain.PairKey(from, to)
	st := m.pairs[pair]
	if st.accepted {
		return ErrAlreadyFriends
	}
	if st.pendingFrom != "" {
		return ErrRequestExists
	}
	m.pairs[pair] = pairState{pendingFrom: from}
	m.emitLocked(domain.EventFriendRequestSent, from, to, "", "")
	return nil
}

func (m *Memory) AcceptFriendRequest(ctx context.Context, from, to domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pair := domain.PairKey(from, to)
	st := m.pairs[pair]
	// Only the addressee of the open request may accept.
	if st.pendingFrom == "" || st.pendingFrom != to {
		return ErrNoPendingRequest
	}
	m.pairs[pair] = pairState{accepted: true}
	m.emitLocked(domain.EventFriendRequestAccepted, from, to, "", "")
	return nil
}

func (m *Memory) RejectFriendRequest(ctx context.Context, from, to domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pair := domain.PairKey(from, to)
	st := m.pairs[pair]
	if st.pendingFrom == "" || st.pendingFrom != to {
		return ErrNoPendingRequest
	}
	// Rejected pairs are forgotten entirely; a later request starts fresh.
	delete(m.pairs, pair)
	m.emitLocked(domain.EventFriendRequestRejected, from, to, "", "")
	return nil
}

func (m *Memory) RemoveFriend(ctx context.Context, from, to domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pair := domain.PairKey(from, to)
	if !m.pairs[pair].accepted {
		return ErrNotFriends
	}
	delete(m.pairs, pair)
	delete(m.sharedKeys, directed(from, to))
	delete(m.sharedKeys, directed(to, from))
	m.emitLocked(domain.EventFriendRemoved, from, to, "", "")
	return nil
}

func (m *Memory) FriendRequestStatus(ctx context.Context, account, other domain.Address) (domain.FriendRequestStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.pairs[domain.PairKey(account, other)]
	switch {
	case st.accepted:
		return domain.RequestAccepted, nil
	case st.pendingFrom == account:
		return domain.RequestSent, nil
	case st.pendingFrom == other:
		return domain.RequestReceived, nil
	default:
		return domain.RequestNone, nil
	}
}

func (m *Memory) IsKeyExchanged(ctx context.Context, account, other domain.Address) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, a := m.sharedKeys[directed(account, other)]
	_, b := m.sharedKeys[directed(other, account)]
	return a || b, nil
}

func (m *Memory) ShareSymmetricKey(ctx context.Context, from, to domain.Address, wrappedKey []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireRegisteredLocked(from, to); err != nil {
		return err
	}
	m.sharedKeys[directed(from, to)] = append([]byte(nil), wrappedKey...)
	return nil
}

func (m *Memory) GetSharedKeyFrom(ctx context.Context, account, sender domain.Address) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wrapped, ok := m.sharedKeys[directed(sender, account)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), wrapped...), nil
}

func (m *Memory) SendEncryptedMessage(ctx context.Context, from, to domain.Address, cid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireRegisteredLocked(from, to); err != nil {
		return err
	}
	pair := domain.PairKey(from, to)
	m.messages[pair] = append(m.messages[pair], domain.PointerRecord{
		CID:        cid,
		UploadedAt: m.now().Unix(),
	})
	m.emitLocked(domain.EventEncryptedMessage, from, to, "", cid)
	return nil
}

func (m *Memory) GetEncryptedMessageHistory(ctx context.Context, a, b domain.Address) ([]domain.PointerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ptrs := m.messages[domain.PairKey(a, b)]
	return append([]domain.PointerRecord(nil), ptrs...), nil
}

func (m *Memory) QueryEvents(ctx context.Context) ([]domain.LedgerEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.LedgerEvent(nil), m.log...), nil
}

func (m *Memory) SubscribeEvents(ctx context.Context) (<-chan domain.LedgerEvent, error) {
	m.mu.Lock()
	ch := make(chan domain.LedgerEvent, 64)
	id := m.next
	m.next++
	m.subs[id] = ch
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

var _ domain.Ledger = (*Memory)(nil)
