package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roudra323/Chitchat-DApp-Project/internal/domain"
)

// history <address>: fetch, decrypt and print the conversation.
func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <address>",
		Short: "Fetch and decrypt the conversation history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer := domain.NormalizeAddress(args[0])
			records, err := wire.Messages.History(cmd.Context(), account, peer)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("no messages")
				return nil
			}
			for _, rec := range records {
				printRecord(rec)
			}
			return nil
		},
	}
}

func printRecord(rec domain.MessageRecord) {
	who := string(rec.From)
	if rec.Mine {
		who = "me"
	}
	fmt.Printf("[%s] %s: %s\n", rec.SentAt.Format("2006-01-02 15:04:05"), who, rec.Content)
}
