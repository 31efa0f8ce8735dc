package interfaces

// PrivateKey is an imported asymmetric private key, usable for decrypt only.
type PrivateKey interface {
	Decrypt(ciphertext []byte) ([]byte, error)
}

// PublicKey is an imported asymmetric public key, usable for encrypt only.
type PublicKey interface {
	Encrypt(plaintext []byte) ([]byte, error)
}

// CryptoProvider is the injected crypto capability. The production
// implementation sits on the platform primitives; tests inject a
// deterministic fake.
type CryptoProvider interface {
	// GenerateKeyPair creates a fresh 2048-bit OAEP keypair and returns the
	// encoded private (PKCS#8) and public (PKIX) halves. Both halves come
	// from the same operation; there is no way to regenerate one later.
	GenerateKeyPair() (private, public []byte, err error)

	ImportPrivateKey(der []byte) (PrivateKey, error)
	ImportPublicKey(der []byte) (PublicKey, error)

	// GenerateSessionKey returns fresh 256-bit symmetric key material.
	GenerateSessionKey() ([]byte, error)

	// Seal authenticated-encrypts plaintext under key with a fresh random
	// 96-bit nonce and returns nonce || ciphertext. Every call draws a new
	// nonce; reuse under the same key is the one forbidden state.
	Seal(key, plaintext []byte) ([]byte, error)

	// Open splits envelope into nonce and ciphertext and
	// authenticated-decrypts. Fails on tag mismatch; it never ignores the tag.
	Open(key, envelope []byte) ([]byte, error)
}
