package roster

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

// Service keeps a live State fed by the ledger's event log: one historical
// fold on Load, then sequential application of subscribed events.
type Service struct {
	ledger domain.Ledger
	log    *logrus.Logger

	mu    sync.RWMutex
	state *State

	// onChange, when set, is invoked after each applied event with the
	// event that changed the state. Used by the CLI watch command.
	onChange func(domain.LedgerEvent)
}

// New constructs a roster service over the ledger.
func New(ledger domain.Ledger, log *logrus.Logger) *Service {
	return &Service{ledger: ledger, log: log, state: NewState()}
}

// OnChange registers a callback fired after every applied relationship
// event. Must be set before Run.
func (s *Service) OnChange(fn func(domain.LedgerEvent)) { s.onChange = fn }

// Load replays the historical event log exactly once, in timestamp order.
func (s *Service) Load(ctx context.Context) error {
	events, err := s.ledger.QueryEvents(ctx)
	if err != nil {
		return domain.Transport("ledger query events", err)
	}
	s.mu.Lock()
	s.state.Fold(events)
	s.mu.Unlock()
	return nil
}

// Run subscribes to the live log and applies events until ctx is done.
// Events are applied strictly one at a time: the channel receive loop is the
// only writer, so no two folds ever interleave.
func (s *Service) Run(ctx context.Context) error {
	events, err := s.ledger.SubscribeEvents(ctx)
	if err != nil {
		return domain.Transport("ledger subscribe", err)
	}
	for ev := range events {
		if !ev.IsRelationship() {
			continue
		}
		s.mu.Lock()
		s.state.Apply(ev)
		s.mu.Unlock()
		s.log.WithFields(logrus.Fields{
			"kind":     ev.Kind,
			"sender":   ev.Sender,
			"receiver": ev.Receiver,
		}).Debug("applied relationship event")
		if s.onChange != nil {
			s.onChange(ev)
		}
	}
	return ctx.Err()
}

// DropKeyOnRemoval returns an OnChange callback that clears the cached
// session key for the other side of any FriendRemoved event involving
// account. Removal ends the conversation on both clients, not just the
// initiator's.
func DropKeyOnRemoval(account domain.Address, sessions domain.SessionService, log *logrus.Logger) func(domain.LedgerEvent) {
	return func(ev domain.LedgerEvent) {
		if ev.Kind != domain.EventFriendRemoved {
			return
		}
		var peer domain.Address
		switch account {
		case ev.Sender:
			peer = ev.Receiver
		case ev.Receiver:
			peer = ev.Sender
		default:
			return
		}
		if err := sessions.DropKey(peer); err != nil {
			log.WithError(err).WithField("peer", peer).Warn("dropping session key after friend removal")
		}
	}
}

// Pending returns the current pending requests, one per unordered pair.
func (s *Service) Pending() []domain.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Pending()
}

// Accepted returns the current accepted relationships.
func (s *Service) Accepted() []domain.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Accepted()
}

var _ domain.RosterService = (*Service)(nil)
