package identity

import (
	"fmt"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

// Service generates and loads identity keypairs through the injected crypto
// provider, persisting private halves in the key store.
type Service struct {
	keys   domain.KeyStore
	crypto domain.CryptoProvider
}

// New returns an identity service over the given store and crypto provider.
func New(keys domain.KeyStore, crypto domain.CryptoProvider) *Service {
	return &Service{keys: keys, crypto: crypto}
}

// GenerateIdentity creates a fresh keypair for account, persists the private
// half and returns the public half for on-chain publication. Generation and
// persistence happen in one operation: a published public key whose private
// half was never stored would strand every future conversation.
func (s *Service) GenerateIdentity(account domain.Address) ([]byte, error) {
	private, public, err := s.crypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	if err := s.keys.Save(domain.ScopeIdentityPrivate, string(account), private); err != nil {
		return nil, fmt.Errorf("persist private key: %w", err)
	}
	return public, nil
}

// HasIdentity reports whether a private key is stored for account. Gates the
// registration and key-exchange flows.
func (s *Service) HasIdentity(account domain.Address) (bool, error) {
	return s.keys.Has(domain.ScopeIdentityPrivate, string(account))
}

// ImportPrivateKey loads account's stored private key for decrypt-only use.
// domain.ErrKeyNotFound if nothing is stored; there is no recovery from that
// short of a backup import or account re-creation.
func (s *Service) ImportPrivateKey(account domain.Address) (domain.PrivateKey, error) {
	der, ok, err := s.keys.Load(domain.ScopeIdentityPrivate, string(account))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: account %s", domain.ErrKeyNotFound, account)
	}
	return s.crypto.ImportPrivateKey(der)
}

// ImportPublicKey imports external public key bytes for encrypt-only use.
func (s *Service) ImportPublicKey(der []byte) (domain.PublicKey, error) {
	return s.crypto.ImportPublicKey(der)
}

// ExportPrivateKey returns the stored private key bytes for backup.
func (s *Service) ExportPrivateKey(account domain.Address) ([]byte, error) {
	der, ok, err := s.keys.Load(domain.ScopeIdentityPrivate, string(account))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: account %s", domain.ErrKeyNotFound, account)
	}
	return der, nil
}

// RestorePrivateKey stores private key bytes recovered from a backup.
func (s *Service) RestorePrivateKey(account domain.Address, der []byte) error {
	if _, err := s.crypto.ImportPrivateKey(der); err != nil {
		return fmt.Errorf("backup does not contain a usable private key: %w", err)
	}
	return s.keys.Save(domain.ScopeIdentityPrivate, string(account), der)
}

var _ domain.IdentityService = (*Service)(nil)
