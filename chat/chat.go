// Package chat holds the chat command tree: the interactive TUI plus
// the list, delete and models subcommands.
package chat

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"localchat/chat/tui"
	"localchat/configuration"
	"localchat/internal/conversation"
	"localchat/internal/debug"
	"localchat/internal/engine"
	"localchat/internal/session"
	"localchat/model"
	"localchat/store"
)

// NewCmd instantiates and returns the chat command.
func NewCmd(
	config *configuration.Config,
	preferences *configuration.Preferences,
	preferencesPath string,
	s *store.Store,
	eng *engine.Manager,
) *cobra.Command {
	var opts struct {
		Model    *model.Opts
		ChatID   string
		Continue bool
	}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Parse or create chat. An existing chat keeps the model
			// it was created with; the flag only applies to new ones.
			var chat *store.Chat
			var err error
			if opts.ChatID != "" {
				chat, err = s.GetChat(opts.ChatID)
				cobra.CheckErr(err)
			} else if opts.Continue {
				chats, err := s.ListChats()
				cobra.CheckErr(err)
				if len(chats) == 0 {
					cobra.CheckErr(errors.New("no chat to continue"))
				}
				chat = chats[0]
			}

			var chatModel *model.Model
			if chat != nil {
				chatModel, err = model.Parse(&model.Opts{Model: chat.ModelID})
				cobra.CheckErr(err)
			} else {
				chatModel, err = model.Parse(opts.Model)
				cobra.CheckErr(err)
				chat, err = s.CreateChat(chatModel.ID)
				cobra.CheckErr(err)
			}

			// Remember the model for next time. Best effort.
			preferences.SelectedModel = chatModel.ID
			if err := preferences.Save(preferencesPath); err != nil {
				debug.GetLogger().Error("saving preferences", "error", err)
			}

			view := session.New(s)
			cobra.CheckErr(view.Load(chat.ID))

			m, err := tui.New(ctx, view, eng, chatModel)
			if err != nil {
				return err
			}
			controller := conversation.NewController(view, eng, engine.Options{
				Temperature: config.Temperature,
				MaxTokens:   config.MaxTokens,
			}, m.NotifySessionUpdated)
			m.SetController(controller)

			p := tea.NewProgram(
				m,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithMouseCellMotion(),
			)
			m.SetProgram(p)
			m.InitializeEngine()

			if _, err := p.Run(); err != nil {
				return errors.Wrap(err, "running chat")
			}
			return nil
		},
	}

	opts.Model = model.GetOpts(cmd, config, preferences)
	cmd.Flags().StringVar(&opts.ChatID, "id", "", "specify a chat id")
	cmd.Flags().BoolVarP(&opts.Continue, "continue", "c", false, "Continue the most recent chat")

	cmd.AddCommand(newListCmd(s))
	cmd.AddCommand(newDeleteCmd(s))
	cmd.AddCommand(newModelsCmd(preferences))
	return cmd
}
