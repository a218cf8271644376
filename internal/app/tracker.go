package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gametimer/internal/config"
	"gametimer/internal/core/registry"
	"gametimer/internal/core/timekeeper"
	"gametimer/internal/storage"
	"gametimer/internal/storage/sqlite"
)

// Options configures a Tracker.
type Options struct {
	Settings config.Settings
	Logger   *slog.Logger
	// Dispatch re-enters the caller's control goroutine for each tick.
	Dispatch timekeeper.Dispatcher
	// Scheduler overrides the ticker-based scheduler.
	Scheduler timekeeper.Scheduler
}

// Tracker owns the registry and timer engine for one process run.
// Presentation layers construct it once and drive it from a single goroutine.
type Tracker struct {
	settings config.Settings
	logger   *slog.Logger
	registry *registry.Registry
	keeper   *timekeeper.TimeKeeper
	closeFn  func() error
	warnings []error

	closeOnce sync.Once
	closeErr  error
}

// New opens storage, loads totals and restores the last started activity.
// Corrupt or unreadable totals are not fatal; they are reported by Warnings.
func New(options Options) (*Tracker, error) {
	settings := options.Settings
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	totals, closeFn, err := openTotals(settings)
	if err != nil {
		return nil, err
	}

	scheduler := options.Scheduler
	if scheduler == nil {
		scheduler = timekeeper.NewTickerScheduler(options.Dispatch)
	}

	launch := storage.NewLaunchFile(settings.LaunchPath())
	activities := registry.New(totals, logger)
	keeper := timekeeper.New(activities, settings.EngineConfig(), timekeeper.Options{
		Scheduler: scheduler,
		Launch:    launch,
		Logger:    logger,
	})

	tracker := &Tracker{
		settings: settings,
		logger:   logger,
		registry: activities,
		keeper:   keeper,
		closeFn:  closeFn,
	}

	if err := activities.Load(); err != nil {
		tracker.warnings = append(tracker.warnings, err)
	}

	lastName, err := launch.LoadLastActivity()
	if err != nil {
		logger.Warn("launch preference ignored", slog.String("error", err.Error()))
	}
	if keeper.Restore(lastName) {
		logger.Info("restored last activity", slog.String("activity", lastName))
	}

	logger.Info("tracker ready",
		slog.String("backend", string(settings.Backend)),
		slog.String("totals", settings.TotalsPath()),
		slog.Int("activities", activities.Len()),
	)
	return tracker, nil
}

// Engine returns the timer engine collaborators call into.
func (tracker *Tracker) Engine() *timekeeper.TimeKeeper {
	return tracker.keeper
}

// Settings returns the settings the tracker was built with.
func (tracker *Tracker) Settings() config.Settings {
	return tracker.settings
}

// Warnings returns non-fatal problems found while loading.
func (tracker *Tracker) Warnings() []error {
	return append([]error(nil), tracker.warnings...)
}

// Close saves a running timer and releases storage. Later calls return the
// first result.
func (tracker *Tracker) Close() error {
	tracker.closeOnce.Do(func() {
		shutdownErr := tracker.keeper.Shutdown()
		var storeErr error
		if tracker.closeFn != nil {
			storeErr = tracker.closeFn()
		}
		tracker.closeErr = errors.Join(shutdownErr, storeErr)
	})
	return tracker.closeErr
}

func openTotals(settings config.Settings) (registry.TotalsStore, func() error, error) {
	switch settings.Backend {
	case config.BackendSQLite:
		store, err := sqlite.Open(settings.TotalsPath())
		if err != nil {
			return nil, nil, fmt.Errorf("open totals database: %w", err)
		}
		return store, store.Close, nil
	default:
		return storage.NewTotalsFile(settings.TotalsPath()), nil, nil
	}
}
