package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roudra323/Chitchat-DApp-Project/internal/app"
	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

var (
	cfgPath string
	cfg     app.Config
	wire    *app.Wire

	account domain.Address
)

func Execute() error {
	root := &cobra.Command{
		Use:   "chitchat",
		Short: "End-to-end encrypted chat over a public ledger",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				cfg.Home = filepath.Join(dir, ".chitchat")
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}

			if cfgPath == "" {
				cfgPath = filepath.Join(cfg.Home, "config.toml")
			}
			fileCfg := app.Config{}
			if err := app.LoadConfig(cfgPath, &fileCfg); err != nil {
				return err
			}
			applyDefaults(&cfg, fileCfg)

			if cfg.Account == "" {
				return fmt.Errorf("account address required (--account or config.toml)")
			}
			account = domain.NormalizeAddress(cfg.Account)

			var err error
			wire, err = app.NewWire(cfg)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.Close()
		},
	}

	root.PersistentFlags().StringVar(&cfg.Home, "home", "", "data dir (default ~/.chitchat)")
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default <home>/config.toml)")
	root.PersistentFlags().StringVar(&cfg.Account, "account", "", "ledger address to act as")
	root.PersistentFlags().StringVar(&cfg.LedgerURL, "ledger", "", "ledger gateway URL (default in-memory)")
	root.PersistentFlags().StringVar(&cfg.BlobURL, "blob", "", "pinning gateway URL (default in-memory)")
	root.PersistentFlags().StringVar(&cfg.PresenceURL, "presence", "", "presence hub URL")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "", "log level (default info)")

	root.AddCommand(
		registerCmd(),
		friendsCmd(),
		exchangeKeysCmd(),
		sendCmd(),
		historyCmd(),
		chatCmd(),
		watchCmd(),
		backupCmd(),
		logoutCmd(),
	)
	return root.Execute()
}

// applyDefaults fills unset flag values from the config file.
func applyDefaults(dst *app.Config, file app.Config) {
	if dst.Account == "" {
		dst.Account = file.Account
	}
	if dst.LedgerURL == "" {
		dst.LedgerURL = file.LedgerURL
	}
	if dst.BlobURL == "" {
		dst.BlobURL = file.BlobURL
	}
	if dst.PresenceURL == "" {
		dst.PresenceURL = file.PresenceURL
	}
	if dst.LogLevel == "" {
		dst.LogLevel = file.LogLevel
	}
}
