package identity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roudra323/Chitchat-DApp-Project/internal/crypto"
	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
	"github.com/roudra323/Chitchat-DApp-Project/internal/keystore"
	"github.com/roudra323/Chitchat-DApp-Project/internal/services/identity"
)

const alice = domain.Address("0xaaa1")

func newService(t *testing.T) *identity.Service {
	t.Helper()
	keys, err := keystore.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { keys.Close() })
	return identity.New(keys, crypto.NewProvider())
}

func TestGenerateIdentity(t *testing.T) {
	svc := newService(t)

	has, err := svc.HasIdentity(alice)
	require.NoError(t, err)
	require.False(t, has)

	pub, err := svc.GenerateIdentity(alice)
	require.NoError(t, err)
	require.NotEmpty(t, pub)

	has, err = svc.HasIdentity(alice)
	require.NoError(t, err)
	require.True(t, has)

	// The persisted private half is immediately usable.
	priv, err := svc.ImportPrivateKey(alice)
	require.NoError(t, err)
	require.NotNil(t, priv)
}

func TestImportPrivateKeyMissing(t *testing.T) {
	svc := newService(t)
	_, err := svc.ImportPrivateKey(alice)
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestExportRestoreRoundTrip(t *testing.T) {
	src := newService(t)
	dst := newService(t)

	pub, err := src.GenerateIdentity(alice)
	require.NoError(t, err)

	der, err := src.ExportPrivateKey(alice)
	require.NoError(t, err)
	require.NoError(t, dst.RestorePrivateKey(alice, der))

	// The restored key decrypts what the published public key encrypts.
	imported, err := dst.ImportPublicKey(pub)
	require.NoError(t, err)
	wrapped, err := imported.Encrypt([]byte("session key material"))
	require.NoError(t, err)

	priv, err := dst.ImportPrivateKey(alice)
	require.NoError(t, err)
	plain, err := priv.Decrypt(wrapped)
	require.NoError(t, err)
	require.Equal(t, []byte("session key material"), plain)
}

func TestRestoreRejectsGarbage(t *testing.T) {
	svc := newService(t)
	require.Error(t, svc.RestorePrivateKey(alice, []byte("not a der key")))

	has, err := svc.HasIdentity(alice)
	require.NoError(t, err)
	require.False(t, has)
}

func TestExportMissing(t *testing.T) {
	svc := newService(t)
	_, err := svc.ExportPrivateKey(alice)
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}
