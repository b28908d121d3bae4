package model

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"localchat/configuration"
)

// Opts for model.
type Opts struct {
	Model string
}

// GetOpts on the given command. The flag defaults to the last model the
// user selected, falling back to the configured default.
func GetOpts(cmd *cobra.Command, config *configuration.Config, preferences *configuration.Preferences) *Opts {
	opts := &Opts{}
	defaultModel := config.DefaultModel
	if preferences.SelectedModel != "" {
		defaultModel = preferences.SelectedModel
	}
	cmd.Flags().StringVar(&opts.Model, "model", defaultModel, "specify a model")
	return opts
}

// Model represents a chat model served by the local runtime.
type Model struct {
	ID            string
	Name          string
	Description   string
	ContextLength int
	Parameters    string
}

var models = []*Model{
	{
		ID:            "Llama-3.2-1B-Instruct-q4f32_1-MLC",
		Name:          "Llama 3.2 1B Instruct",
		Description:   "Fast, lightweight model good for basic tasks",
		ContextLength: 2048,
		Parameters:    "1B",
	},
	{
		ID:            "Llama-2-7b-chat-q4f32_1-MLC",
		Name:          "Llama 2 7B Chat",
		Description:   "Balanced model for general conversation",
		ContextLength: 4096,
		Parameters:    "7B",
	},
	{
		ID:            "Mistral-7B-Instruct-v0.2-q4f32_1-MLC",
		Name:          "Mistral 7B Instruct",
		Description:   "High-quality instruction following",
		ContextLength: 8192,
		Parameters:    "7B",
	},
}

// List returns the catalog in display order.
func List() []*Model {
	return models
}

// Parse the model.
func Parse(opts *Opts) (*Model, error) {
	for _, model := range models {
		if model.ID == opts.Model {
			return model, nil
		}
	}
	return nil, errors.Errorf("unknown model (%s)", opts.Model)
}
