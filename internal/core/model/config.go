package model

import "time"

const (
	// DefaultTickInterval is the accumulation step of a running timer.
	DefaultTickInterval = time.Second
	// DefaultSaveEvery is the number of ticks between throttled saves.
	DefaultSaveEvery = 10
)

// EngineConfig contains runtime settings for the timer engine.
type EngineConfig struct {
	TickInterval time.Duration
	SaveEvery    int
}

// DefaultEngineConfig returns the one-second, save-every-ten-ticks setup.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TickInterval: DefaultTickInterval,
		SaveEvery:    DefaultSaveEvery,
	}
}

// Normalized replaces non-positive values with defaults.
func (config EngineConfig) Normalized() EngineConfig {
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTickInterval
	}
	if config.SaveEvery <= 0 {
		config.SaveEvery = DefaultSaveEvery
	}
	return config
}
