package keystore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
	"github.com/roudra323/Chitchat-DApp-Project/internal/keystore"
)

func openStore(t *testing.T) *keystore.Store {
	t.Helper()
	s, err := keystore.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openStore(t)

	value := []byte{0x01, 0x02, 0xff}
	require.NoError(t, s.Save(domain.ScopeSessionKey, "0xabc", value))

	got, ok, err := s.Load(domain.ScopeSessionKey, "0xabc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, value, got)

	has, err := s.Has(domain.ScopeSessionKey, "0xabc")
	require.NoError(t, err)
	require.True(t, has)
}

func TestLoadAbsent(t *testing.T) {
	s := openStore(t)

	_, ok, err := s.Load(domain.ScopeIdentityPrivate, "0xmissing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestScopesDoNotCollide(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Save(domain.ScopeIdentityPrivate, "0xabc", []byte("priv")))
	require.NoError(t, s.Save(domain.ScopeSessionKey, "0xabc", []byte("sym")))

	got, ok, err := s.Load(domain.ScopeIdentityPrivate, "0xabc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("priv"), got)
}

func TestClear(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Save(domain.ScopeSessionKey, "0xabc", []byte("sym")))
	require.NoError(t, s.Clear(domain.ScopeSessionKey, "0xabc"))

	has, err := s.Has(domain.ScopeSessionKey, "0xabc")
	require.NoError(t, err)
	require.False(t, has)

	// Clearing an absent entry is a no-op.
	require.NoError(t, s.Clear(domain.ScopeSessionKey, "0xnever"))
}

func TestClearAll(t *testing.T) {
	s := openStore(t)
	account := domain.Address("0xme")

	require.NoError(t, s.Save(domain.ScopeIdentityPrivate, string(account), []byte("priv")))
	require.NoError(t, s.Save(domain.ScopeSessionKey, "0xfriend1", []byte("k1")))
	require.NoError(t, s.Save(domain.ScopeSessionKey, "0xfriend2", []byte("k2")))

	require.NoError(t, s.ClearAll(account))

	for _, entry := range []struct{ scope, id string }{
		{domain.ScopeIdentityPrivate, string(account)},
		{domain.ScopeSessionKey, "0xfriend1"},
		{domain.ScopeSessionKey, "0xfriend2"},
	} {
		has, err := s.Has(entry.scope, entry.id)
		require.NoError(t, err)
		require.False(t, has, "%s/%s should be gone", entry.scope, entry.id)
	}
}
