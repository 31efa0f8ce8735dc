package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

const (
	// RSA-OAEP with a 2048-bit modulus and SHA-256 digest; wraps session
	// keys only, never message bodies.
	rsaBits = 2048

	// AES-256-GCM for message bodies.
	SessionKeyBytes = 32
	NonceBytes      = 12
)

// Provider is the production domain.CryptoProvider on top of the platform
// primitives.
type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

// GenerateKeyPair creates a 2048-bit RSA keypair and returns the PKCS#8
// private and PKIX public encodings. Both halves come from the one
// operation.
func (Provider) GenerateKeyPair() (private, public []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaBits)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}
	private, err = x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}
	public, err = x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}
	return private, public, nil
}

type privateKey struct{ key *rsa.PrivateKey }

func (p privateKey) Decrypt(ciphertext []byte) ([]byte, error) {
	return rsa.DecryptOAEP(sha256.New(), rand.Reader, p.key, ciphertext, nil)
}

type publicKey struct{ key *rsa.PublicKey }

func (p publicKey) Encrypt(plaintext []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, p.key, plaintext, nil)
}

func (Provider) ImportPrivateKey(der []byte) (domain.PrivateKey, error) {
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("import private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("import private key: not an RSA key")
	}
	return privateKey{key: key}, nil
}

func (Provider) ImportPublicKey(der []byte) (domain.PublicKey, error) {
	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("import public key: %w", err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("import public key: not an RSA key")
	}
	return publicKey{key: key}, nil
}

func (Provider) GenerateSessionKey() ([]byte, error) {
	key := make([]byte, SessionKeyBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeyGeneration, err)
	}
	return key, nil
}

// Seal encrypts plaintext under key with a fresh random nonce and returns
// nonce || ciphertext. A new nonce is drawn on every call.
func (Provider) Seal(key, plaintext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, NonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open splits envelope into nonce and ciphertext and decrypts. Tag mismatch
// is domain.ErrAuthentication.
func (Provider) Open(key, envelope []byte) ([]byte, error) {
	if len(envelope) < NonceBytes {
		return nil, domain.ErrAuthentication
	}
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, envelope[:NonceBytes], envelope[NonceBytes:], nil)
	if err != nil {
		return nil, domain.ErrAuthentication
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("session key rejected: %w", err)
	}
	return cipher.NewGCM(block)
}

var _ domain.CryptoProvider = (*Provider)(nil)
