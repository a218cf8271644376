package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gametimer/internal/core/model"
)

// LaunchFileName is the default name of the launch preference file.
const LaunchFileName = "settings.json"

type launchPreference struct {
	LastGame *string `json:"lastGame"`
}

// LaunchFile stores the most recently started activity.
type LaunchFile struct {
	path string
}

// NewLaunchFile returns a store for the JSON file at path.
func NewLaunchFile(path string) *LaunchFile {
	return &LaunchFile{path: path}
}

// LoadLastActivity returns the stored name, or "" when none is stored.
// A malformed file yields "" and ErrCorruptData.
func (store *LaunchFile) LoadLastActivity() (string, error) {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("%w: read launch file: %w", model.ErrPersistenceFailure, err)
	}

	var preference launchPreference
	if err := json.Unmarshal(rawData, &preference); err != nil {
		return "", fmt.Errorf("%w: parse launch file: %w", model.ErrCorruptData, err)
	}
	if preference.LastGame == nil {
		return "", nil
	}
	return *preference.LastGame, nil
}

// SaveLastActivity writes name; an empty name is stored as null.
func (store *LaunchFile) SaveLastActivity(name string) error {
	var preference launchPreference
	if name != "" {
		preference.LastGame = &name
	}

	serialized, err := json.Marshal(preference)
	if err != nil {
		return fmt.Errorf("%w: marshal launch file: %w", model.ErrPersistenceFailure, err)
	}
	if err := writeFileAtomic(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("%w: write launch file: %w", model.ErrPersistenceFailure, err)
	}
	return nil
}
