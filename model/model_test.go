package model

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localchat/configuration"
)

func TestParse(t *testing.T) {
	m, err := Parse(&Opts{Model: "Mistral-7B-Instruct-v0.2-q4f32_1-MLC"})
	require.NoError(t, err)
	assert.Equal(t, "Mistral 7B Instruct", m.Name)
	assert.Equal(t, 8192, m.ContextLength)

	_, err = Parse(&Opts{Model: "gpt-4"})
	require.Error(t, err)
}

func TestGetOpts_PreferenceOverridesDefault(t *testing.T) {
	config := &configuration.Config{DefaultModel: "Llama-3.2-1B-Instruct-q4f32_1-MLC"}

	opts := GetOpts(&cobra.Command{}, config, &configuration.Preferences{})
	assert.Equal(t, "Llama-3.2-1B-Instruct-q4f32_1-MLC", opts.Model)

	preferences := &configuration.Preferences{SelectedModel: "Llama-2-7b-chat-q4f32_1-MLC"}
	opts = GetOpts(&cobra.Command{}, config, preferences)
	assert.Equal(t, "Llama-2-7b-chat-q4f32_1-MLC", opts.Model)
}
