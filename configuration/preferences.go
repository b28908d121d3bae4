package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"localchat/file"
)

// Preferences are per-user settings that change during normal use, kept
// apart from the config file so saving them never clobbers hand edits.
type Preferences struct {
	SelectedModel string `json:"selected_model"`
}

// LoadPreferences reads the preferences file. A missing file yields
// empty preferences rather than an error.
func LoadPreferences(path string) (*Preferences, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	bytes, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Preferences{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	preferences := &Preferences{}
	if err := json.Unmarshal(bytes, preferences); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into preferences")
	}
	return preferences, nil
}

// Save writes the preferences file, creating its directory if needed.
func (p *Preferences) Save(path string) error {
	path, err := file.ExpandPath(path)
	if err != nil {
		return errors.Wrap(err, "expanding path")
	}

	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	bytes, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling preferences")
	}
	if err := os.WriteFile(path, bytes, 0644); err != nil {
		return errors.Wrap(err, "writing file")
	}
	return nil
}
