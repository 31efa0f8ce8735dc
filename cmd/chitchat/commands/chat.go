package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
	"github.com/roudra323/Chitchat-DApp-Project/internal/presence"
)

// chat <address>: interactive conversation. Prints history, then follows
// ledger events and presence frames while reading outgoing lines from stdin.
func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <address>",
		Short: "Live conversation view with presence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			peer := domain.NormalizeAddress(args[0])

			records, err := wire.Messages.History(ctx, account, peer)
			if err != nil {
				return err
			}
			for _, rec := range records {
				printRecord(rec)
			}

			events, err := wire.Ledger.SubscribeEvents(ctx)
			if err != nil {
				return err
			}

			var pc *presence.Client
			if cfg.PresenceURL != "" {
				pc, err = presence.Dial(ctx, cfg.PresenceURL, account, peer)
				if err != nil {
					wire.Log.Warnf("presence unavailable: %v", err)
				} else {
					defer pc.Close()
				}
			}

			go followLedger(cmd, peer, events, pc)
			if pc != nil {
				go followPresence(cmd, pc)
			}

			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "/quit" {
					return nil
				}
				cid, err := wire.Messages.Send(ctx, account, peer, line)
				if err != nil {
					fmt.Printf("! send failed: %v\n", err)
					continue
				}
				if pc != nil {
					pc.NotifyMessage(cid)
				}
			}
			return scanner.Err()
		},
	}
}

// followLedger prints messages for the active conversation as their events
// land, acknowledging each over presence.
func followLedger(cmd *cobra.Command, peer domain.Address, events <-chan domain.LedgerEvent, pc *presence.Client) {
	for ev := range events {
		rec, err := wire.Messages.HandleEvent(cmd.Context(), account, peer, ev)
		if err != nil {
			wire.Log.Warnf("event %s: %v", ev.ID, err)
			continue
		}
		if rec == nil || rec.Mine {
			continue
		}
		printRecord(*rec)
		if pc != nil {
			pc.ReadReceipt(rec.CID)
		}
	}
}

// followPresence renders the peer's side-channel frames.
func followPresence(cmd *cobra.Command, pc *presence.Client) {
	for ev := range pc.Events() {
		switch ev.Kind {
		case presence.EventOnline:
			fmt.Printf("* %s is online\n", ev.From)
		case presence.EventOffline:
			fmt.Printf("* %s went offline\n", ev.From)
		case presence.EventTypingStart:
			fmt.Printf("* %s is typing...\n", ev.From)
		case presence.EventReadReceipt:
			wire.Messages.MarkRead(ev.CID)
			fmt.Printf("* read: %s\n", ev.CID)
		}
	}
}
