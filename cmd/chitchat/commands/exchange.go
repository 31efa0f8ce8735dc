package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

// exchange-keys <address>: establish the shared conversation key. If the
// friend already published a wrapped key for us we adopt it; otherwise we
// generate one and publish it wrapped under their identity key.
func exchangeKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange-keys <address>",
		Short: "Establish the shared conversation key with a friend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			peer := domain.NormalizeAddress(args[0])

			st, err := wire.Ledger.FriendRequestStatus(ctx, account, peer)
			if err != nil {
				return err
			}
			if st != domain.RequestAccepted {
				return fmt.Errorf("%s is not an accepted friend (status %s)", peer, st)
			}

			wrapped, err := wire.Ledger.GetSharedKeyFrom(ctx, account, peer)
			if err != nil {
				return err
			}
			if wrapped != nil {
				if _, err := wire.Sessions.Unwrap(account, wrapped, peer); err != nil {
					return err
				}
				fmt.Printf("adopted the key %s shared with us\n", peer)
				return nil
			}

			key, err := wire.Sessions.GetOrCreateSessionKey(peer)
			if err != nil {
				return err
			}
			peerPub, err := wire.Ledger.GetUserPublicKey(ctx, peer)
			if err != nil {
				return err
			}
			out, err := wire.Sessions.WrapForCounterparty(key, peerPub)
			if err != nil {
				return err
			}
			if err := wire.Ledger.ShareSymmetricKey(ctx, account, peer, out); err != nil {
				return err
			}
			fmt.Printf("shared a new conversation key with %s\n", peer)
			return nil
		},
	}
}
