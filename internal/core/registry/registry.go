package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"gametimer/internal/core/model"
)

// TotalsStore persists the name to lifetime-seconds mapping.
// Load returns an empty slice without error when nothing was stored yet.
type TotalsStore interface {
	Load() ([]model.Activity, error)
	Save(activities []model.Activity) error
}

// Registry owns the lifetime totals and is the only thing that gets serialized.
// It is not safe for concurrent use.
type Registry struct {
	store  TotalsStore
	logger *slog.Logger
	order  []string
	totals map[string]int64
}

// New creates an empty registry backed by store.
func New(store TotalsStore, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		store:  store,
		logger: logger,
		totals: make(map[string]int64),
	}
}

// Load replaces the in-memory totals with the stored ones.
// On any error the registry is left empty.
func (registry *Registry) Load() error {
	registry.clear()

	activities, err := registry.store.Load()
	if err != nil {
		if !errors.Is(err, model.ErrCorruptData) && !errors.Is(err, model.ErrPersistenceFailure) {
			err = fmt.Errorf("%w: load totals: %w", model.ErrPersistenceFailure, err)
		}
		registry.logger.Warn("totals not loaded, starting empty", slog.String("error", err.Error()))
		return err
	}

	for _, activity := range activities {
		if _, exists := registry.totals[activity.Name]; !exists {
			registry.order = append(registry.order, activity.Name)
		}
		registry.totals[activity.Name] = activity.TotalSeconds
	}
	registry.logger.Debug("totals loaded", slog.Int("activities", len(registry.order)))
	return nil
}

// Save writes every total to the store.
func (registry *Registry) Save() error {
	if err := registry.store.Save(registry.Activities()); err != nil {
		if !errors.Is(err, model.ErrPersistenceFailure) {
			err = fmt.Errorf("%w: save totals: %w", model.ErrPersistenceFailure, err)
		}
		registry.logger.Warn("totals not saved", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Add registers a new activity with a zero total and saves.
func (registry *Registry) Add(name string) (string, error) {
	name, err := model.NormalizeName(name)
	if err != nil {
		return "", err
	}
	if _, exists := registry.totals[name]; exists {
		return "", fmt.Errorf("add %q: %w", name, model.ErrDuplicateActivity)
	}
	registry.order = append(registry.order, name)
	registry.totals[name] = 0
	return name, registry.Save()
}

// Remove deletes an activity if present and saves.
func (registry *Registry) Remove(name string) error {
	if _, exists := registry.totals[name]; exists {
		delete(registry.totals, name)
		for index, current := range registry.order {
			if current == name {
				registry.order = append(registry.order[:index], registry.order[index+1:]...)
				break
			}
		}
	}
	return registry.Save()
}

// SetTotal overwrites the total of an existing activity and saves.
func (registry *Registry) SetTotal(name string, seconds int64) error {
	if err := model.ValidateSeconds(seconds); err != nil {
		return err
	}
	if _, exists := registry.totals[name]; !exists {
		return fmt.Errorf("set total %q: %w", name, model.ErrUnknownActivity)
	}
	registry.totals[name] = seconds
	return registry.Save()
}

// Total returns the stored total for name.
func (registry *Registry) Total(name string) (int64, bool) {
	seconds, ok := registry.totals[name]
	return seconds, ok
}

// Has reports whether name is registered.
func (registry *Registry) Has(name string) bool {
	_, ok := registry.totals[name]
	return ok
}

// Len returns the number of registered activities.
func (registry *Registry) Len() int {
	return len(registry.order)
}

// Activities returns all activities in insertion order.
func (registry *Registry) Activities() []model.Activity {
	activities := make([]model.Activity, 0, len(registry.order))
	for _, name := range registry.order {
		activities = append(activities, model.Activity{Name: name, TotalSeconds: registry.totals[name]})
	}
	return activities
}

// SortedDescending returns activities ordered by total, largest first.
// Equal totals keep insertion order.
func (registry *Registry) SortedDescending() []model.Activity {
	return SortDescending(registry.Activities())
}

// SortDescending sorts activities in place by total, largest first, and returns them.
func SortDescending(activities []model.Activity) []model.Activity {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].TotalSeconds > activities[j].TotalSeconds
	})
	return activities
}

func (registry *Registry) clear() {
	registry.order = nil
	registry.totals = make(map[string]int64)
}
