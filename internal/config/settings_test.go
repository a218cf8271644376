package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	settings := DefaultSettings()
	require.NoError(t, settings.Validate())

	engine := settings.EngineConfig()
	require.Equal(t, time.Second, engine.TickInterval)
	require.Equal(t, 10, engine.SaveEvery)
}

func TestValidateRejectsBadValues(t *testing.T) {
	settings := DefaultSettings()
	settings.Backend = "redis"
	require.Error(t, settings.Validate())

	settings = DefaultSettings()
	settings.SaveEvery = 0
	require.Error(t, settings.Validate())

	settings = DefaultSettings()
	settings.TickInterval = -time.Second
	require.Error(t, settings.Validate())
}

func TestPathsFollowBackendAndDataDir(t *testing.T) {
	settings := DefaultSettings()
	settings.DataDir = filepath.Join("home", "games")

	require.Equal(t, filepath.Join("home", "games", "games.json"), settings.TotalsPath())
	require.Equal(t, filepath.Join("home", "games", "settings.json"), settings.LaunchPath())

	settings.Backend = BackendSQLite
	require.Equal(t, filepath.Join("home", "games", "games.db"), settings.TotalsPath())

	settings.TotalsFile = "custom.json"
	require.Equal(t, filepath.Join("home", "games", "custom.json"), settings.TotalsPath())

	settings.DataDir = ""
	require.Equal(t, "custom.json", settings.TotalsPath())
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for value, want := range cases {
		settings := Settings{LogLevel: value}
		require.Equal(t, want, settings.SlogLevel(), "level %q", value)
	}
}
