package presence_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
	"github.com/roudra323/Chitchat-DApp-Project/internal/presence"
)

func newTestHub(t *testing.T) *httptest.Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	// Queue replay needs a reachable Redis; the relay path between two live
	// sockets does not, so these tests run without one.
	h := presence.NewHub(context.Background(), redis.NewClient(&redis.Options{Addr: "localhost:0"}), logger)
	t.Cleanup(h.Close)
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return srv
}

func waitEvent(t *testing.T, ch <-chan presence.Event, kind presence.EventKind) presence.Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			require.True(t, ok, "event channel closed while waiting for %s", kind)
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", kind)
		}
	}
}

func TestRelayBetweenLiveEnds(t *testing.T) {
	srv := newTestHub(t)
	ctx := context.Background()

	alice := domain.Address("0xaaa1")
	bob := domain.Address("0xbbb2")

	ca, err := presence.Dial(ctx, srv.URL, alice, bob)
	require.NoError(t, err)
	defer ca.Close()

	cb, err := presence.Dial(ctx, srv.URL, bob, alice)
	require.NoError(t, err)
	defer cb.Close()

	// Alice sees Bob come online.
	ev := waitEvent(t, ca.Events(), presence.EventOnline)
	require.Equal(t, string(bob), ev.From)

	require.NoError(t, ca.TypingStart())
	ev = waitEvent(t, cb.Events(), presence.EventTypingStart)
	require.Equal(t, string(alice), ev.From)

	require.NoError(t, ca.NotifyMessage("cid-42"))
	ev = waitEvent(t, cb.Events(), presence.EventNewMessage)
	require.Equal(t, "cid-42", ev.CID)

	require.NoError(t, cb.ReadReceipt("cid-42"))
	ev = waitEvent(t, ca.Events(), presence.EventReadReceipt)
	require.Equal(t, "cid-42", ev.CID)
}

func TestOfflineMarkerOnDisconnect(t *testing.T) {
	srv := newTestHub(t)
	ctx := context.Background()

	alice := domain.Address("0xaaa1")
	bob := domain.Address("0xbbb2")

	ca, err := presence.Dial(ctx, srv.URL, alice, bob)
	require.NoError(t, err)
	defer ca.Close()

	cb, err := presence.Dial(ctx, srv.URL, bob, alice)
	require.NoError(t, err)

	waitEvent(t, ca.Events(), presence.EventOnline)
	require.NoError(t, cb.Close())
	waitEvent(t, ca.Events(), presence.EventOffline)
}
