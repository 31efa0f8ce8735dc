package roster

import (
	"sort"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

// State is the pure fold target: (state, event) -> state. It has no network
// or clock dependency, so it is testable against a canned event list.
//
// Each pair is written under both orderings of (sender, receiver) so lookup
// works from either side; the derived views deduplicate before exposing.
type State struct {
	relationships map[string]domain.Relationship
	// removedAt holds, per unordered pair, the timestamp of the latest
	// removal, so replayed events older than the removal cannot resurrect
	// the edge.
	removedAt map[string]int64
}

// NewState returns an empty reducer state.
func NewState() *State {
	return &State{
		relationships: make(map[string]domain.Relationship),
		removedAt:     make(map[string]int64),
	}
}

func directedKey(a, b domain.Address) string { return string(a) + ">" + string(b) }

// Fold applies a batch of historical events in timestamp order, ties broken
// by slice order. Events of other kinds are ignored.
func (s *State) Fold(events []domain.LedgerEvent) {
	ordered := make([]domain.LedgerEvent, 0, len(events))
	for _, ev := range events {
		if ev.IsRelationship() {
			ordered = append(ordered, ev)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})
	for _, ev := range ordered {
		s.Apply(ev)
	}
}

// Apply folds a single event. Safe to call with already-seen or
// out-of-order events: an event older than the pair's current state is a
// no-op, so replays converge to the same pending/accepted sets.
func (s *State) Apply(ev domain.LedgerEvent) {
	if !ev.IsRelationship() {
		return
	}
	pair := domain.PairKey(ev.Sender, ev.Receiver)
	if ev.Timestamp < s.removedAt[pair] {
		return
	}

	key := directedKey(ev.Sender, ev.Receiver)
	reverse := directedKey(ev.Receiver, ev.Sender)
	if existing, ok := s.relationships[key]; ok && ev.Timestamp < existing.Timestamp {
		return
	}

	if ev.Kind == domain.EventFriendRemoved {
		// Removal for a pair that was never accepted is a no-op by
		// construction: deleting absent keys changes nothing.
		delete(s.relationships, key)
		delete(s.relationships, reverse)
		s.removedAt[pair] = ev.Timestamp
		return
	}

	rel := domain.Relationship{
		Sender:    ev.Sender,
		Receiver:  ev.Receiver,
		Timestamp: ev.Timestamp,
		Status:    statusFor(ev.Kind),
	}
	s.relationships[key] = rel
	s.relationships[reverse] = rel
}

func statusFor(kind domain.EventKind) domain.RelationshipStatus {
	switch kind {
	case domain.EventFriendRequestAccepted:
		return domain.StatusAccepted
	case domain.EventFriendRequestRejected:
		return domain.StatusRejected
	default:
		return domain.StatusPending
	}
}

// Pending returns relationships whose latest status is pending, one entry
// per unordered pair. Rejected pairs are not visible in any view.
func (s *State) Pending() []domain.Relationship {
	return s.view(domain.StatusPending)
}

// Accepted returns relationships whose latest status is accepted, one entry
// per unordered pair.
func (s *State) Accepted() []domain.Relationship {
	return s.view(domain.StatusAccepted)
}

func (s *State) view(status domain.RelationshipStatus) []domain.Relationship {
	seen := make(map[string]struct{})
	out := make([]domain.Relationship, 0)
	for _, rel := range s.relationships {
		if rel.Status != status {
			continue
		}
		pair := domain.PairKey(rel.Sender, rel.Receiver)
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, rel)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return domain.PairKey(out[i].Sender, out[i].Receiver) < domain.PairKey(out[j].Sender, out[j].Receiver)
	})
	return out
}
