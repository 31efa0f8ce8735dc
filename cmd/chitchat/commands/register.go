package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// register <name>: generate an identity keypair and register the account.
func registerCmd() *cobra.Command {
	var profileCID string
	cmd := &cobra.Command{
		Use:   "register <name>",
		Short: "Create an identity and register the account on the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			registered, err := wire.Ledger.IsUserRegistered(ctx, account)
			if err != nil {
				return err
			}
			if registered {
				return fmt.Errorf("account %s is already registered", account)
			}

			has, err := wire.Identity.HasIdentity(account)
			if err != nil {
				return err
			}
			if has {
				return fmt.Errorf("an identity already exists for %s; remove it or use another account", account)
			}

			pub, err := wire.Identity.GenerateIdentity(account)
			if err != nil {
				return err
			}
			if err := wire.Ledger.CreateAccount(ctx, account, name, profileCID, pub); err != nil {
				return err
			}
			fmt.Printf("registered %s as %q\n", account, name)
			return nil
		},
	}
	cmd.Flags().StringVar(&profileCID, "profile-cid", "", "CID of an already-pinned profile image")
	return cmd
}
