package chat

import (
	"fmt"

	"github.com/spf13/cobra"

	"localchat/internal/cli"
	"localchat/store"
)

// newDeleteCmd instantiates and returns the chat delete command.
func newDeleteCmd(s *store.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [chat-id]",
		Short: "Delete a chat and its messages",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			chatID := args[0]
			chat, err := s.GetChat(chatID)
			cobra.CheckErr(err)

			if !cli.QueryUser(fmt.Sprintf("Delete chat %q (%s)?", chat.Title, chat.ID)) {
				return
			}
			cobra.CheckErr(s.DeleteChat(chatID))
			cli.Info("deleted chat %s\n", chatID)
		},
	}
	return cmd
}
