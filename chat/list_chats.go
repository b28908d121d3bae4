package chat

import (
	"time"

	"github.com/spf13/cobra"

	"localchat/internal/cli"
	"localchat/store"
)

// newListCmd instantiates and returns the chat list command.
func newListCmd(s *store.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all chats",
		Long:  "List all chats, most recently updated first",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			cli.Title("LOCALCHAT CHAT LIST")

			chats, err := s.ListChats()
			cobra.CheckErr(err)
			for _, chat := range chats {
				cli.AIOutput("chat (%s) - %s\n", chat.ID, time.UnixMicro(chat.UpdateTimestamp).String())
				cli.UserInput("> %s [%s]\n", chat.Title, chat.ModelID)
			}
		},
	}
	return cmd
}
