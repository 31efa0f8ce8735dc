package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roudra323/Chitchat-DApp-Project/internal/crypto"
	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

func TestKeyPairWrapUnwrapRoundTrip(t *testing.T) {
	p := crypto.NewProvider()

	privDER, pubDER, err := p.GenerateKeyPair()
	require.NoError(t, err)

	pub, err := p.ImportPublicKey(pubDER)
	require.NoError(t, err)
	priv, err := p.ImportPrivateKey(privDER)
	require.NoError(t, err)

	sessionKey, err := p.GenerateSessionKey()
	require.NoError(t, err)
	require.Len(t, sessionKey, crypto.SessionKeyBytes)

	wrapped, err := pub.Encrypt(sessionKey)
	require.NoError(t, err)
	// 2048-bit modulus gives a fixed-size ciphertext.
	require.Len(t, wrapped, 256)

	unwrapped, err := priv.Decrypt(wrapped)
	require.NoError(t, err)
	require.Equal(t, sessionKey, unwrapped)
}

func TestSealOpenRoundTrip(t *testing.T) {
	p := crypto.NewProvider()
	key, err := p.GenerateSessionKey()
	require.NoError(t, err)

	for _, plaintext := range []string{"", "hello", "héllo wörld ✉", string(make([]byte, 4096))} {
		env, err := p.Seal(key, []byte(plaintext))
		require.NoError(t, err)

		got, err := p.Open(key, env)
		require.NoError(t, err)
		require.Equal(t, []byte(plaintext), got)
	}
}

func TestSealDrawsFreshNonce(t *testing.T) {
	p := crypto.NewProvider()
	key, err := p.GenerateSessionKey()
	require.NoError(t, err)

	a, err := p.Seal(key, []byte("same plaintext"))
	require.NoError(t, err)
	b, err := p.Seal(key, []byte("same plaintext"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.NotEqual(t, a[:crypto.NonceBytes], b[:crypto.NonceBytes])
}

func TestOpenDetectsTampering(t *testing.T) {
	p := crypto.NewProvider()
	key, err := p.GenerateSessionKey()
	require.NoError(t, err)

	env, err := p.Seal(key, []byte("authentic"))
	require.NoError(t, err)

	for i := range env {
		mutated := append([]byte(nil), env...)
		mutated[i] ^= 0x01
		_, err := p.Open(key, mutated)
		require.ErrorIs(t, err, domain.ErrAuthentication, "bit flip at byte %d must not pass", i)
	}
}

func TestOpenWrongKey(t *testing.T) {
	p := crypto.NewProvider()
	k1, _ := p.GenerateSessionKey()
	k2, _ := p.GenerateSessionKey()

	env, err := p.Seal(k1, []byte("secret"))
	require.NoError(t, err)

	_, err = p.Open(k2, env)
	require.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestOpenTruncatedEnvelope(t *testing.T) {
	p := crypto.NewProvider()
	key, _ := p.GenerateSessionKey()

	_, err := p.Open(key, []byte{0x01, 0x02})
	require.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestBackupRoundTrip(t *testing.T) {
	blob, err := crypto.SealBackup("hunter2", []byte("key material"))
	require.NoError(t, err)

	got, err := crypto.OpenBackup("hunter2", blob)
	require.NoError(t, err)
	require.Equal(t, []byte("key material"), got)

	_, err = crypto.OpenBackup("wrong", blob)
	require.Error(t, err)
}
