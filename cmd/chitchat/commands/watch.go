package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
	"github.com/roudra323/Chitchat-DApp-Project/internal/services/roster"
)

// watch: follow relationship events live. Folds the historical log first,
// then applies subscribed events until interrupted, printing each change and
// clearing the session key for any conversation a removal ends.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow friend requests and removals live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := wire.Roster.Load(ctx); err != nil {
				return err
			}

			dropKeys := roster.DropKeyOnRemoval(account, wire.Sessions, wire.Log)
			wire.Roster.OnChange(func(ev domain.LedgerEvent) {
				dropKeys(ev)
				printRosterEvent(ev)
			})

			fmt.Printf("watching relationship events for %s (ctrl-c to stop)\n", account)
			if err := wire.Roster.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func printRosterEvent(ev domain.LedgerEvent) {
	switch ev.Kind {
	case domain.EventFriendRequestSent:
		fmt.Printf("* friend request: %s -> %s\n", ev.Sender, ev.Receiver)
	case domain.EventFriendRequestAccepted:
		fmt.Printf("* accepted: %s and %s are now friends\n", ev.Sender, ev.Receiver)
	case domain.EventFriendRequestRejected:
		fmt.Printf("* rejected: %s declined %s\n", ev.Sender, ev.Receiver)
	case domain.EventFriendRemoved:
		fmt.Printf("* removed: %s and %s are no longer friends\n", ev.Sender, ev.Receiver)
	}
}
