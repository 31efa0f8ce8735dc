package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

// mine keeps only relationships that involve the acting account. The
// reducer folds the whole contract log, which covers every pair.
func mine(rels []domain.Relationship) []domain.Relationship {
	out := rels[:0:0]
	for _, rel := range rels {
		if rel.Sender == account || rel.Receiver == account {
			out = append(out, rel)
		}
	}
	return out
}

// friends: friend request lifecycle and roster views.
func friendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friends",
		Short: "Manage friend requests and the friend list",
	}
	cmd.AddCommand(
		friendsAddCmd(),
		friendsAcceptCmd(),
		friendsRejectCmd(),
		friendsRemoveCmd(),
		friendsRequestsCmd(),
		friendsListCmd(),
	)
	return cmd
}

func friendsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <address>",
		Short: "Send a friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer := domain.NormalizeAddress(args[0])
			if err := wire.Ledger.SendFriendRequest(cmd.Context(), account, peer); err != nil {
				return err
			}
			fmt.Printf("friend request sent to %s\n", peer)
			return nil
		},
	}
}

func friendsAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <address>",
		Short: "Accept a pending friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer := domain.NormalizeAddress(args[0])
			if err := wire.Ledger.AcceptFriendRequest(cmd.Context(), account, peer); err != nil {
				return err
			}
			fmt.Printf("accepted %s\n", peer)
			return nil
		},
	}
}

func friendsRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <address>",
		Short: "Reject a pending friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer := domain.NormalizeAddress(args[0])
			if err := wire.Ledger.RejectFriendRequest(cmd.Context(), account, peer); err != nil {
				return err
			}
			fmt.Printf("rejected %s\n", peer)
			return nil
		},
	}
}

func friendsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <address>",
		Short: "Remove a friend and drop the shared conversation key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer := domain.NormalizeAddress(args[0])
			if err := wire.Ledger.RemoveFriend(cmd.Context(), account, peer); err != nil {
				return err
			}
			if err := wire.Sessions.DropKey(peer); err != nil {
				return err
			}
			fmt.Printf("removed %s\n", peer)
			return nil
		},
	}
}

func friendsRequestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List pending friend requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Roster.Load(cmd.Context()); err != nil {
				return err
			}
			rels := mine(wire.Roster.Pending())
			if len(rels) == 0 {
				fmt.Println("no pending requests")
				return nil
			}
			for _, rel := range rels {
				dir := "incoming from"
				if rel.Sender == account {
					dir = "outgoing to"
				}
				fmt.Printf("%s %s (%s)\n", dir, rel.Peer(account), time.Unix(rel.Timestamp, 0).Format(time.RFC3339))
			}
			return nil
		},
	}
}

func friendsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accepted friends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := wire.Roster.Load(ctx); err != nil {
				return err
			}
			rels := mine(wire.Roster.Accepted())
			if len(rels) == 0 {
				fmt.Println("no friends yet")
				return nil
			}
			for _, rel := range rels {
				peer := rel.Peer(account)
				info, err := wire.Ledger.GetUserInfo(ctx, peer)
				if err != nil {
					fmt.Printf("%s\n", peer)
					continue
				}
				fmt.Printf("%s (%s)\n", peer, info.Name)
			}
			return nil
		},
	}
}
