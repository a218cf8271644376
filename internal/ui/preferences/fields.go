package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gametimer/internal/config"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// fields holds the editable text form of the settings.
type fields struct {
	Backend      string
	SaveEvery    string
	TickInterval string
	LogLevel     string
}

func fieldsFrom(settings config.Settings) fields {
	return fields{
		Backend:      string(settings.Backend),
		SaveEvery:    strconv.Itoa(settings.SaveEvery),
		TickInterval: strconv.FormatInt(settings.TickInterval.Milliseconds(), 10),
		LogLevel:     settings.LogLevel,
	}
}

// apply returns base updated with the form values.
func (values fields) apply(base config.Settings) (config.Settings, error) {
	settings := base

	switch backend := config.Backend(values.Backend); backend {
	case config.BackendJSON, config.BackendSQLite:
		settings.Backend = backend
	default:
		return base, fmt.Errorf("unknown storage backend %q", values.Backend)
	}

	saveEvery, ok := parsePositiveInt(values.SaveEvery)
	if !ok {
		return base, fmt.Errorf("save every must be a positive number of ticks")
	}
	settings.SaveEvery = saveEvery

	millis, ok := parsePositiveInt(values.TickInterval)
	if !ok {
		return base, fmt.Errorf("tick interval must be a positive number of milliseconds")
	}
	settings.TickInterval = time.Duration(millis) * time.Millisecond

	level := strings.ToLower(strings.TrimSpace(values.LogLevel))
	if level != "" {
		settings.LogLevel = level
	}

	return settings, settings.Validate()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
