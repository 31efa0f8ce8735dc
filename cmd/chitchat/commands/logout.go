package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// logout: wipe the local key material for the account. Without a backup the
// identity private key is gone for good, so require explicit confirmation.
func logoutCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the account's local keys from this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("this deletes the identity private key and every session key; re-run with --yes after taking a backup")
			}
			if err := wire.Keys.ClearAll(account); err != nil {
				return err
			}
			fmt.Printf("local keys for %s removed\n", account)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
