package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_InitializesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.json")

	config, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8090", config.RuntimeHost)
	assert.Equal(t, "Llama-3.2-1B-Instruct-q4f32_1-MLC", config.DefaultModel)
	assert.Equal(t, float32(0.7), config.Temperature)
	assert.Equal(t, 500, config.MaxTokens)

	// The default file was written for next time.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestParse_ReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"runtime_host": "http://127.0.0.1:9999",
		"default_model": "Mistral-7B-Instruct-v0.2-q4f32_1-MLC",
		"database_path": "/tmp/other.db",
		"temperature": 0.2,
		"max_tokens": 64
	}`), 0644))

	config, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", config.RuntimeHost)
	assert.Equal(t, "Mistral-7B-Instruct-v0.2-q4f32_1-MLC", config.DefaultModel)
	assert.Equal(t, "/tmp/other.db", config.DatabasePath)
	assert.Equal(t, float32(0.2), config.Temperature)
	assert.Equal(t, 64, config.MaxTokens)
}

func TestPreferences_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "preferences.json")

	preferences, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Empty(t, preferences.SelectedModel)

	preferences.SelectedModel = "Llama-2-7b-chat-q4f32_1-MLC"
	require.NoError(t, preferences.Save(path))

	reloaded, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, "Llama-2-7b-chat-q4f32_1-MLC", reloaded.SelectedModel)
}
