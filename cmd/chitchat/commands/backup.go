package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roudra323/Chitchat-DApp-Project/internal/crypto"
)

// backup: move the identity private key in and out of passphrase-protected
// files. The ledger holds only the public half, so this is the one recovery
// path for a lost device profile.
func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore the identity private key",
	}
	cmd.AddCommand(backupExportCmd(), backupImportCmd())
	return cmd
}

func backupExportCmd() *cobra.Command {
	var passphrase string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the identity private key to an encrypted backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			der, err := wire.Identity.ExportPrivateKey(account)
			if err != nil {
				return err
			}
			sealed, err := crypto.SealBackup(passphrase, der)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], sealed, 0o600); err != nil {
				return err
			}
			fmt.Printf("identity for %s written to %s\n", account, args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the backup")
	_ = cmd.MarkFlagRequired("passphrase")
	return cmd
}

func backupImportCmd() *cobra.Command {
	var passphrase string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore the identity private key from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sealed, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			der, err := crypto.OpenBackup(passphrase, sealed)
			if err != nil {
				return err
			}
			if err := wire.Identity.RestorePrivateKey(account, der); err != nil {
				return err
			}
			fmt.Printf("identity for %s restored from %s\n", account, args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the backup")
	_ = cmd.MarkFlagRequired("passphrase")
	return cmd
}
