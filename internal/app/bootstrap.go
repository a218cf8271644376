package app

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"gametimer/internal/config"
	"gametimer/internal/platform"
	"gametimer/internal/storage"
)

// LoadSettings layers defaults, the YAML config file and environment overrides.
// The data directory defaults to the per-user config directory of appName.
func LoadSettings(appName string) (config.Settings, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return config.DefaultSettings(), err
	}
	return LoadSettingsFrom(configDir)
}

// LoadSettingsFrom is LoadSettings with an explicit config directory.
func LoadSettingsFrom(configDir string) (config.Settings, error) {
	configPath := filepath.Join(configDir, storage.ConfigFileName)
	if _, err := storage.EnsureSettings(configPath); err != nil {
		return config.DefaultSettings(), err
	}

	settings, err := storage.LoadSettings(configPath)
	if err != nil {
		return settings, err
	}
	if err := config.ParseEnv(&settings); err != nil {
		return settings, err
	}
	if settings.DataDir == "" {
		settings.DataDir = configDir
	}
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// SaveEditableSettings writes the settings editable from the desktop UI into
// the config file in configDir. Other file values, including ones currently
// overridden by the environment, are kept as they are on disk.
func SaveEditableSettings(configDir string, edited config.Settings) error {
	configPath := filepath.Join(configDir, storage.ConfigFileName)
	onDisk, err := storage.LoadSettings(configPath)
	if err != nil {
		return err
	}
	onDisk.Backend = edited.Backend
	onDisk.SaveEvery = edited.SaveEvery
	onDisk.TickInterval = edited.TickInterval
	onDisk.LogLevel = edited.LogLevel
	if err := onDisk.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return storage.SaveSettings(configPath, onDisk)
}

// NewLogger builds the text logger used by both frontends.
func NewLogger(output io.Writer, settings config.Settings, verbose bool) *slog.Logger {
	level := settings.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
