package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"localchat/file"
)

var defaultConfig = Config{
	RuntimeHost:    "http://127.0.0.1:8090",
	RequestTimeout: 60,
	DefaultModel:   "Llama-3.2-1B-Instruct-q4f32_1-MLC",
	DatabasePath:   "~/.localchat/chat.db",
	Temperature:    0.7,
	MaxTokens:      500,
}

// Config holds configuration for the localchat tool.
type Config struct {
	RuntimeHost    string  `json:"runtime_host"`
	RequestTimeout int     `json:"request_timeout"`
	DefaultModel   string  `json:"default_model"`
	DatabasePath   string  `json:"database_path"`
	Temperature    float32 `json:"temperature"`
	MaxTokens      int     `json:"max_tokens"`
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}

	expandedDatabasePath, err := file.ExpandPath(config.DatabasePath)
	if err != nil {
		return nil, errors.Wrap(err, "expanding database path")
	}
	config.DatabasePath = expandedDatabasePath
	return config, nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
