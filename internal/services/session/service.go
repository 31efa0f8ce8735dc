package session

import (
	"errors"
	"fmt"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
	"github.com/roudra323/Chitchat-DApp-Project/internal/keycodec"
)

// Service manages symmetric session keys, one per unordered account pair.
//
// Key availability for a conversation, from one participant's side:
//
//	NO_KEY --(we initiate)------------> generated + cached locally
//	NO_KEY --(counterparty published)--> unwrapped, then cached
//	cached is terminal for the pair until a friend-removal clears it.
//
// Keys never expire and are never rotated automatically.
type Service struct {
	keys     domain.KeyStore
	crypto   domain.CryptoProvider
	identity domain.IdentityService
}

// New returns a session service over the given store, crypto provider and
// identity layer.
func New(keys domain.KeyStore, crypto domain.CryptoProvider, identity domain.IdentityService) *Service {
	return &Service{keys: keys, crypto: crypto, identity: identity}
}

// GetOrCreateSessionKey returns the cached key for counterparty, or
// generates a fresh 256-bit key, caches it and returns it. Publication is
// the caller's responsibility via WrapForCounterparty.
func (s *Service) GetOrCreateSessionKey(counterparty domain.Address) ([]byte, error) {
	key, ok, err := s.CachedKey(counterparty)
	if err != nil {
		return nil, err
	}
	if ok {
		return key, nil
	}
	key, err = s.crypto.GenerateSessionKey()
	if err != nil {
		return nil, err
	}
	if err := s.keys.Save(domain.ScopeSessionKey, string(counterparty), key); err != nil {
		return nil, fmt.Errorf("cache session key: %w", err)
	}
	return key, nil
}

// CachedKey returns the locally cached session key for counterparty.
func (s *Service) CachedKey(counterparty domain.Address) ([]byte, bool, error) {
	return s.keys.Load(domain.ScopeSessionKey, string(counterparty))
}

// WrapForCounterparty encrypts raw session key material under the
// counterparty's public identity key. The output is a fixed-size ciphertext
// suitable for ledger storage.
func (s *Service) WrapForCounterparty(key, counterpartyPublicKey []byte) ([]byte, error) {
	pub, err := s.identity.ImportPublicKey(counterpartyPublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnwrap, err)
	}
	wrapped, err := pub.Encrypt(key)
	if err != nil {
		return nil, fmt.Errorf("wrap session key: %w", err)
	}
	return wrapped, nil
}

// Unwrap decrypts a wrapped session key with account's private identity key
// and caches the raw key under sender. The two failure modes stay distinct:
// domain.ErrKeyNotFound (private key missing, identity must be restored or
// regenerated) and domain.ErrUnwrap (wrong key or corrupted ciphertext,
// worth a retry).
func (s *Service) Unwrap(account domain.Address, wrapped []byte, sender domain.Address) ([]byte, error) {
	priv, err := s.identity.ImportPrivateKey(account)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUnwrap, err)
	}
	key, err := priv.Decrypt(wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnwrap, err)
	}
	if err := s.keys.Save(domain.ScopeSessionKey, string(sender), key); err != nil {
		return nil, fmt.Errorf("cache unwrapped key: %w", err)
	}
	return key, nil
}

// DropKey clears the cached session key for the pair. Called when a
// friend-removal event ends the conversation.
func (s *Service) DropKey(counterparty domain.Address) error {
	return s.keys.Clear(domain.ScopeSessionKey, string(counterparty))
}

// EncryptMessage authenticated-encrypts plaintext under key and returns the
// base64 nonce||ciphertext envelope. A fresh nonce is drawn on every call.
func (s *Service) EncryptMessage(plaintext string, key []byte) (string, error) {
	envelope, err := s.crypto.Seal(key, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return keycodec.BytesToBase64(envelope), nil
}

// DecryptMessage reverses EncryptMessage. domain.ErrAuthentication on tag
// mismatch; a tampered envelope never yields plaintext.
func (s *Service) DecryptMessage(envelope string, key []byte) (string, error) {
	raw, err := keycodec.Base64ToBytes(envelope)
	if err != nil {
		return "", fmt.Errorf("%w: malformed envelope: %v", domain.ErrAuthentication, err)
	}
	plaintext, err := s.crypto.Open(key, raw)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

var _ domain.SessionService = (*Service)(nil)
