package message

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/sirupsen/logrus"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

// blobEnc is deterministic CBOR so identical messages always produce
// identical bytes and therefore identical content identifiers.
var blobEnc cbor.EncMode

func init() {
	var err error
	blobEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// Service orchestrates the message pipeline over the ledger, the blob store
// and the session layer.
type Service struct {
	ledger  domain.Ledger
	blobs   domain.BlobStore
	session domain.SessionService
	log     *logrus.Logger

	mu     sync.Mutex
	seen   map[string]struct{}              // event IDs already rendered
	status map[string]domain.DeliveryStatus // client-local, keyed by CID
}

// New constructs a message service.
func New(ledger domain.Ledger, blobs domain.BlobStore, session domain.SessionService, log *logrus.Logger) *Service {
	return &Service{
		ledger:  ledger,
		blobs:   blobs,
		session: session,
		log:     log,
		seen:    make(map[string]struct{}),
		status:  make(map[string]domain.DeliveryStatus),
	}
}

// Send encrypts plaintext for counterparty, stores the blob and records its
// pointer on the ledger. Returns the CID once the ledger write is durably
// confirmed. Each failing step surfaces distinctly so the caller can mark
// the message failed instead of losing it silently.
func (s *Service) Send(ctx context.Context, account, counterparty domain.Address, plaintext string) (string, error) {
	key, err := s.resolveSessionKey(ctx, account, counterparty)
	if err != nil {
		return "", err
	}

	envelope, err := s.session.EncryptMessage(plaintext, key)
	if err != nil {
		return "", fmt.Errorf("encrypt message: %w", err)
	}

	blob, err := blobEnc.Marshal(domain.MessageBlob{
		Sender:     account,
		Receiver:   counterparty,
		Ciphertext: envelope,
		SentAt:     time.Now().Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("encode blob: %w", err)
	}

	cid, err := s.blobs.Put(ctx, blob)
	if err != nil {
		return "", domain.Transport("blob put", err)
	}
	s.setStatus(cid, domain.DeliverySent)

	// The ledger write is not auto-retried on failure: transactions cost gas
	// and the caller decides whether to resubmit.
	if err := s.ledger.SendEncryptedMessage(ctx, account, counterparty, cid); err != nil {
		return "", domain.Transport("ledger send", err)
	}
	s.setStatus(cid, domain.DeliveryDelivered)
	return cid, nil
}

// History lists every pointer for the pair, decrypts each blob and returns
// the records sorted by the embedded plaintext timestamp, never by arrival
// order. Unfetchable or undecryptable items are skipped with a warning so
// partial history still renders.
func (s *Service) History(ctx context.Context, account, counterparty domain.Address) ([]domain.MessageRecord, error) {
	pointers, err := s.ledger.GetEncryptedMessageHistory(ctx, account, counterparty)
	if err != nil {
		return nil, domain.Transport("ledger history", err)
	}
	if len(pointers) == 0 {
		return []domain.MessageRecord{}, nil
	}

	key, err := s.resolveSessionKey(ctx, account, counterparty)
	if err != nil {
		return nil, err
	}

	records := make([]domain.MessageRecord, 0, len(pointers))
	for _, ptr := range pointers {
		rec, err := s.fetchAndDecrypt(ctx, account, ptr.CID, key)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"cid":          ptr.CID,
				"counterparty": counterparty,
			}).WithError(err).Warn("skipping unreadable message")
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SentAt.Before(records[j].SentAt)
	})
	return records, nil
}

// HandleEvent processes one real-time EncryptedMessageStored event. Events
// outside the active conversation, or replays of an already-rendered log
// entry, return (nil, nil).
func (s *Service) HandleEvent(ctx context.Context, account, active domain.Address, ev domain.LedgerEvent) (*domain.MessageRecord, error) {
	if ev.Kind != domain.EventEncryptedMessage {
		return nil, nil
	}
	inConversation := (ev.Sender == account && ev.Receiver == active) ||
		(ev.Sender == active && ev.Receiver == account)
	if !inConversation {
		return nil, nil
	}

	id := eventDedupID(ev)
	s.mu.Lock()
	if _, dup := s.seen[id]; dup {
		s.mu.Unlock()
		return nil, nil
	}
	s.seen[id] = struct{}{}
	s.mu.Unlock()

	key, err := s.resolveSessionKey(ctx, account, active)
	if err != nil {
		s.forget(id)
		return nil, err
	}
	rec, err := s.fetchAndDecrypt(ctx, account, ev.CID, key)
	if err != nil {
		// A transient fetch failure must stay retryable; only a rendered
		// event counts as seen.
		s.forget(id)
		return nil, err
	}
	rec.EventID = id
	return &rec, nil
}

func (s *Service) forget(id string) {
	s.mu.Lock()
	delete(s.seen, id)
	s.mu.Unlock()
}

// MarkRead records a presence-channel read receipt for a sent message.
// Client-local only; the ledger knows nothing about read state.
func (s *Service) MarkRead(cid string) { s.setStatus(cid, domain.DeliveryRead) }

// Status returns the client-local delivery status for a CID we sent.
func (s *Service) Status(cid string) (domain.DeliveryStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.status[cid]
	return st, ok
}

// resolveSessionKey yields the symmetric key for the pair: local cache
// first, then the counterparty's wrapped-key record on the ledger. When both
// exist, the key created by the lexicographically lower address wins, so
// both sides converge on the same key after a concurrent exchange.
func (s *Service) resolveSessionKey(ctx context.Context, account, counterparty domain.Address) ([]byte, error) {
	cached, haveCached, err := s.session.CachedKey(counterparty)
	if err != nil {
		return nil, err
	}

	wrapped, err := s.ledger.GetSharedKeyFrom(ctx, account, counterparty)
	if err != nil {
		if haveCached {
			// Reads are retryable later; the cached key keeps us working now.
			s.log.WithError(err).Warn("shared-key lookup failed, using cached key")
			return cached, nil
		}
		return nil, domain.Transport("ledger shared key", err)
	}

	switch {
	case !haveCached && wrapped == nil:
		return nil, fmt.Errorf("%w: pair %s/%s", domain.ErrNoSessionKey, account, counterparty)
	case !haveCached:
		return s.session.Unwrap(account, wrapped, counterparty)
	case wrapped == nil:
		return cached, nil
	default:
		// Both sides established a key. Deterministic tie-break: the lower
		// address's key wins on both clients.
		if domain.LowerAddress(account, counterparty) == counterparty {
			return s.session.Unwrap(account, wrapped, counterparty)
		}
		return cached, nil
	}
}

func (s *Service) fetchAndDecrypt(ctx context.Context, account domain.Address, cid string, key []byte) (domain.MessageRecord, error) {
	raw, err := s.blobs.Get(ctx, cid)
	if err != nil {
		if errors.Is(err, domain.ErrBlobNotFound) {
			return domain.MessageRecord{}, fmt.Errorf("blob %s: %w", cid, err)
		}
		return domain.MessageRecord{}, domain.Transport("blob get", err)
	}

	var blob domain.MessageBlob
	if err := cbor.Unmarshal(raw, &blob); err != nil {
		return domain.MessageRecord{}, fmt.Errorf("decode blob %s: %w", cid, err)
	}

	plaintext, err := s.session.DecryptMessage(blob.Ciphertext, key)
	if err != nil {
		return domain.MessageRecord{}, fmt.Errorf("blob %s: %w", cid, err)
	}

	return domain.MessageRecord{
		CID:     cid,
		From:    blob.Sender,
		To:      blob.Receiver,
		Mine:    blob.Sender == account,
		Content: plaintext,
		SentAt:  time.Unix(blob.SentAt, 0),
	}, nil
}

func (s *Service) setStatus(cid string, st domain.DeliveryStatus) {
	s.mu.Lock()
	s.status[cid] = st
	s.mu.Unlock()
}

// eventDedupID derives a stable identifier for a log entry so replays do not
// render twice. The ledger's own ID is used when present.
func eventDedupID(ev domain.LedgerEvent) string {
	if ev.ID != "" {
		return ev.ID
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%s|%d", ev.Kind, ev.Sender, ev.Receiver, ev.CID, ev.Timestamp)))
	return hex.EncodeToString(sum[:8])
}

var _ domain.MessageService = (*Service)(nil)
