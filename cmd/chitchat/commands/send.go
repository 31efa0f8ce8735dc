package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
	"github.com/roudra323/Chitchat-DApp-Project/internal/presence"
)

// send <address> <message>: encrypt, pin and record a message.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <address> <message>",
		Short: "Encrypt and send a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			peer := domain.NormalizeAddress(args[0])

			cid, err := wire.Messages.Send(ctx, account, peer, args[1])
			if errors.Is(err, domain.ErrNoSessionKey) {
				return fmt.Errorf("no conversation key with %s; run exchange-keys first", peer)
			}
			if err != nil {
				return err
			}

			// Best effort nudge; the peer recovers from the ledger anyway.
			if cfg.PresenceURL != "" {
				if pc, perr := presence.Dial(ctx, cfg.PresenceURL, account, peer); perr == nil {
					pc.NotifyMessage(cid)
					pc.Close()
				}
			}

			fmt.Printf("sent (%s)\n", cid)
			return nil
		},
	}
}
