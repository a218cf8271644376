package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"gametimer/internal/core/model"
)

// Backend selects where activity totals are stored.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

const (
	defaultJSONTotals   = "games.json"
	defaultSQLiteTotals = "games.db"
	defaultLaunchFile   = "settings.json"
)

// Settings defines user-adjustable configuration.
type Settings struct {
	DataDir      string        `env:"GAMETIMER_DATA_DIR"`
	TotalsFile   string        `env:"GAMETIMER_TOTALS_FILE"`
	LaunchFile   string        `env:"GAMETIMER_LAUNCH_FILE"`
	Backend      Backend       `env:"GAMETIMER_BACKEND"`
	SaveEvery    int           `env:"GAMETIMER_SAVE_EVERY"`
	TickInterval time.Duration `env:"GAMETIMER_TICK_INTERVAL"`
	LogLevel     string        `env:"GAMETIMER_LOG_LEVEL"`

	WindowWidth  float32
	WindowHeight float32
}

// DefaultSettings returns default settings for GameTimer.
func DefaultSettings() Settings {
	return Settings{
		Backend:      BackendJSON,
		LaunchFile:   defaultLaunchFile,
		SaveEvery:    model.DefaultSaveEvery,
		TickInterval: model.DefaultTickInterval,
		LogLevel:     "info",
		WindowWidth:  500,
		WindowHeight: 500,
	}
}

// Validate reports settings that cannot be used.
func (settings Settings) Validate() error {
	switch settings.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", settings.Backend)
	}
	if settings.SaveEvery <= 0 {
		return fmt.Errorf("save every must be positive, got %d", settings.SaveEvery)
	}
	if settings.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", settings.TickInterval)
	}
	return nil
}

// EngineConfig converts settings to the timer engine configuration.
func (settings Settings) EngineConfig() model.EngineConfig {
	return model.EngineConfig{
		TickInterval: settings.TickInterval,
		SaveEvery:    settings.SaveEvery,
	}.Normalized()
}

// TotalsPath returns the totals file location for the selected backend.
func (settings Settings) TotalsPath() string {
	name := settings.TotalsFile
	if name == "" {
		name = defaultJSONTotals
		if settings.Backend == BackendSQLite {
			name = defaultSQLiteTotals
		}
	}
	return settings.resolve(name)
}

// LaunchPath returns the launch preference file location.
func (settings Settings) LaunchPath() string {
	name := settings.LaunchFile
	if name == "" {
		name = defaultLaunchFile
	}
	return settings.resolve(name)
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (settings Settings) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(settings.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (settings Settings) resolve(name string) string {
	if filepath.IsAbs(name) || settings.DataDir == "" {
		return name
	}
	return filepath.Join(settings.DataDir, name)
}
