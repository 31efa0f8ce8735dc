package app

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds runtime wiring options for building the app. Values come
// from the optional TOML config file with flags layered on top.
type Config struct {
	Home    string `toml:"home"`    // data directory, e.g. $HOME/.chitchat
	Account string `toml:"account"` // ledger address acted as

	LedgerURL   string `toml:"ledger_url"`   // ledger gateway; empty runs in-memory
	BlobURL     string `toml:"blob_url"`     // pinning gateway; empty runs in-memory
	PresenceURL string `toml:"presence_url"` // presence hub, e.g. http://127.0.0.1:8081

	LogLevel string `toml:"log_level"` // logrus level name, default "info"
}

// LoadConfig reads a TOML config file into cfg. A missing file is not an
// error; flags alone can carry the full configuration.
func LoadConfig(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	_, err := toml.DecodeFile(path, cfg)
	return err
}
