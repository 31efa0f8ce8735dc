package app

import (
	"github.com/sirupsen/logrus"

	"github.com/roudra323/Chitchat-DApp-Project/internal/blob"
	"github.com/roudra323/Chitchat-DApp-Project/internal/crypto"
	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
	"github.com/roudra323/Chitchat-DApp-Project/internal/keystore"
	"github.com/roudra323/Chitchat-DApp-Project/internal/ledger"
	identitysvc "github.com/roudra323/Chitchat-DApp-Project/internal/services/identity"
	messagesvc "github.com/roudra323/Chitchat-DApp-Project/internal/services/message"
	rostersvc "github.com/roudra323/Chitchat-DApp-Project/internal/services/roster"
	sessionsvc "github.com/roudra323/Chitchat-DApp-Project/internal/services/session"
)

// Wire bundles all stores, services and clients for the CLI.
type Wire struct {
	Keys     domain.KeyStore
	Ledger   domain.Ledger
	Blobs    domain.BlobStore
	Identity domain.IdentityService
	Sessions domain.SessionService
	Messages domain.MessageService
	Roster   domain.RosterService
	Log      *logrus.Logger
}

// NewWire constructs the dependency graph from cfg. Gateways left
// unconfigured fall back to in-process implementations, which is enough for
// local experiments and tests.
func NewWire(cfg Config) (*Wire, error) {
	log := logrus.New()
	if cfg.LogLevel != "" {
		lvl, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		log.SetLevel(lvl)
	}

	keys, err := keystore.Open(cfg.Home)
	if err != nil {
		return nil, err
	}

	var led domain.Ledger
	if cfg.LedgerURL != "" {
		led = ledger.NewHTTP(cfg.LedgerURL)
	} else {
		led = ledger.NewMemory()
	}

	var blobs domain.BlobStore
	if cfg.BlobURL != "" {
		blobs = blob.NewHTTP(cfg.BlobURL)
	} else {
		blobs = blob.NewMemory()
	}

	provider := crypto.NewProvider()
	identity := identitysvc.New(keys, provider)
	sessions := sessionsvc.New(keys, provider, identity)
	messages := messagesvc.New(led, blobs, sessions, log)
	roster := rostersvc.New(led, log)

	return &Wire{
		Keys:     keys,
		Ledger:   led,
		Blobs:    blobs,
		Identity: identity,
		Sessions: sessions,
		Messages: messages,
		Roster:   roster,
		Log:      log,
	}, nil
}

// Close releases held resources, currently just the key store.
func (w *Wire) Close() error { return w.Keys.Close() }
