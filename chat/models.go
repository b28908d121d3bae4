package chat

import (
	"github.com/spf13/cobra"

	"localchat/configuration"
	"localchat/internal/cli"
	"localchat/model"
)

// newModelsCmd instantiates and returns the models command.
func newModelsCmd(preferences *configuration.Preferences) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List available models",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			cli.Title("LOCALCHAT MODELS")

			for _, m := range model.List() {
				marker := " "
				if m.ID == preferences.SelectedModel {
					marker = "*"
				}
				cli.AIOutput("%s %s (%s)\n", marker, m.Name, m.ID)
				cli.UserInput("  %s - %s params, %d token context\n", m.Description, m.Parameters, m.ContextLength)
			}
			cli.Separator()
			cli.Info("* currently selected. Pass --model to the chat command to switch.\n")
		},
	}
	return cmd
}
