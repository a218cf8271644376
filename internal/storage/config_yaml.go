package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gametimer/internal/config"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the YAML configuration file.
const ConfigFileName = "config.yaml"

type yamlSettings struct {
	DataDir           string  `yaml:"data_dir"`
	TotalsFile        string  `yaml:"totals_file"`
	LaunchFile        string  `yaml:"launch_file"`
	Backend           string  `yaml:"backend"`
	SaveEveryTicks    int     `yaml:"save_every_ticks"`
	TickIntervalMilli int     `yaml:"tick_interval_ms"`
	LogLevel          string  `yaml:"log_level"`
	WindowWidth       float32 `yaml:"window_width"`
	WindowHeight      float32 `yaml:"window_height"`
}

// LoadSettings reads configuration from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (config.Settings, error) {
	settings := config.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes configuration to YAML.
func SaveSettings(path string, settings config.Settings) error {
	fileData := yamlSettings{
		DataDir:           settings.DataDir,
		TotalsFile:        settings.TotalsFile,
		LaunchFile:        settings.LaunchFile,
		Backend:           string(settings.Backend),
		SaveEveryTicks:    settings.SaveEvery,
		TickIntervalMilli: int(settings.TickInterval / time.Millisecond),
		LogLevel:          settings.LogLevel,
		WindowWidth:       settings.WindowWidth,
		WindowHeight:      settings.WindowHeight,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := writeFileAtomic(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// EnsureSettings writes defaults to path when no config file exists yet.
func EnsureSettings(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}
	if err := SaveSettings(path, config.DefaultSettings()); err != nil {
		return false, err
	}
	return true, nil
}

func applyYamlSettings(settings *config.Settings, fileData yamlSettings) {
	if fileData.DataDir != "" {
		settings.DataDir = fileData.DataDir
	}
	if fileData.TotalsFile != "" {
		settings.TotalsFile = fileData.TotalsFile
	}
	if fileData.LaunchFile != "" {
		settings.LaunchFile = fileData.LaunchFile
	}
	switch config.Backend(fileData.Backend) {
	case config.BackendJSON, config.BackendSQLite:
		settings.Backend = config.Backend(fileData.Backend)
	}
	if fileData.SaveEveryTicks > 0 {
		settings.SaveEvery = fileData.SaveEveryTicks
	}
	if fileData.TickIntervalMilli > 0 {
		settings.TickInterval = time.Duration(fileData.TickIntervalMilli) * time.Millisecond
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
	if fileData.WindowWidth >= 200 && fileData.WindowWidth <= 4000 {
		settings.WindowWidth = fileData.WindowWidth
	}
	if fileData.WindowHeight >= 200 && fileData.WindowHeight <= 4000 {
		settings.WindowHeight = fileData.WindowHeight
	}
}
