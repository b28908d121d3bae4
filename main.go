package main

import (
	"github.com/spf13/cobra"

	"localchat/chat"
	"localchat/configuration"
	"localchat/internal/engine"
	"localchat/store"
)

const (
	configFilepath      = "~/.localchat/config.json"
	preferencesFilepath = "~/.localchat/preferences.json"
)

var rootCmd = &cobra.Command{
	Use:   "localchat",
	Short: "A CLI for chatting with locally served models",
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}
	preferences, err := configuration.LoadPreferences(preferencesFilepath)
	if err != nil {
		panic(err)
	}

	s, err := store.New(config.DatabasePath)
	if err != nil {
		panic(err)
	}
	defer s.Close()

	// Instantiate the inference runtime client.
	runtime := engine.NewLocalRuntime(config.RuntimeHost)
	manager := engine.NewManager(runtime)

	rootCmd.AddCommand(chat.NewCmd(config, preferences, preferencesFilepath, s, manager))
	rootCmd.Execute()
}
