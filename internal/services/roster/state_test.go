package roster_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
	"github.com/roudra323/Chitchat-DApp-Project/internal/services/roster"
)

const (
	x = domain.Address("0xaaa1")
	y = domain.Address("0xbbb2")
	z = domain.Address("0xccc3")
)

func sent(from, to domain.Address, ts int64) domain.LedgerEvent {
	return domain.LedgerEvent{Kind: domain.EventFriendRequestSent, Sender: from, Receiver: to, Timestamp: ts}
}

func accepted(from, to domain.Address, ts int64) domain.LedgerEvent {
	return domain.LedgerEvent{Kind: domain.EventFriendRequestAccepted, Sender: from, Receiver: to, Timestamp: ts}
}

func rejected(from, to domain.Address, ts int64) domain.LedgerEvent {
	return domain.LedgerEvent{Kind: domain.EventFriendRequestRejected, Sender: from, Receiver: to, Timestamp: ts}
}

func removed(from, to domain.Address, ts int64) domain.LedgerEvent {
	return domain.LedgerEvent{Kind: domain.EventFriendRemoved, Sender: from, Receiver: to, Timestamp: ts}
}

func pairs(rels []domain.Relationship) []string {
	out := make([]string, 0, len(rels))
	for _, rel := range rels {
		out = append(out, domain.PairKey(rel.Sender, rel.Receiver))
	}
	return out
}

func TestRequestThenAccept(t *testing.T) {
	s := roster.NewState()
	s.Fold([]domain.LedgerEvent{
		sent(x, y, 1),
		accepted(y, x, 2),
	})

	require.Empty(t, s.Pending())
	require.Equal(t, []string{domain.PairKey(x, y)}, pairs(s.Accepted()))
}

func TestPendingVisibleFromBothSides(t *testing.T) {
	s := roster.NewState()
	s.Apply(sent(x, y, 1))

	pending := s.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, x, pending[0].Sender)
	require.Equal(t, y, pending[0].Peer(x))
	require.Equal(t, x, pending[0].Peer(y))
}

func TestRejectedHiddenFromViews(t *testing.T) {
	s := roster.NewState()
	s.Fold([]domain.LedgerEvent{
		sent(x, y, 1),
		rejected(y, x, 2),
	})

	require.Empty(t, s.Pending())
	require.Empty(t, s.Accepted())
}

func TestRemovalDeletesBothOrderings(t *testing.T) {
	s := roster.NewState()
	s.Fold([]domain.LedgerEvent{
		sent(x, y, 1),
		accepted(y, x, 2),
		sent(x, z, 3),
		removed(y, x, 4),
	})

	require.Empty(t, s.Accepted())
	require.Equal(t, []string{domain.PairKey(x, z)}, pairs(s.Pending()))
}

func TestReplayIsIdempotent(t *testing.T) {
	events := []domain.LedgerEvent{
		sent(x, y, 1),
		accepted(y, x, 2),
		sent(z, x, 3),
	}

	s := roster.NewState()
	s.Fold(events)
	s.Fold(events)
	for _, ev := range events {
		s.Apply(ev)
	}

	require.Equal(t, []string{domain.PairKey(x, z)}, pairs(s.Pending()))
	require.Equal(t, []string{domain.PairKey(x, y)}, pairs(s.Accepted()))
}

func TestOutOfOrderFoldConverges(t *testing.T) {
	// The same history delivered shuffled must produce the same state.
	s := roster.NewState()
	s.Fold([]domain.LedgerEvent{
		removed(y, x, 4),
		accepted(y, x, 2),
		sent(x, y, 1),
		sent(x, y, 5),
	})

	require.Empty(t, s.Accepted())
	require.Equal(t, []string{domain.PairKey(x, y)}, pairs(s.Pending()))
}

func TestStaleEventCannotResurrectRemovedPair(t *testing.T) {
	s := roster.NewState()
	s.Fold([]domain.LedgerEvent{
		sent(x, y, 1),
		accepted(y, x, 2),
		removed(x, y, 5),
	})

	// A replayed acceptance from before the removal is a no-op.
	s.Apply(accepted(y, x, 2))
	require.Empty(t, s.Accepted())
	require.Empty(t, s.Pending())
}

func TestReRequestAfterRemoval(t *testing.T) {
	s := roster.NewState()
	s.Fold([]domain.LedgerEvent{
		sent(x, y, 1),
		accepted(y, x, 2),
		removed(x, y, 3),
		sent(y, x, 4),
	})

	require.Equal(t, []string{domain.PairKey(x, y)}, pairs(s.Pending()))
	require.Empty(t, s.Accepted())
}
