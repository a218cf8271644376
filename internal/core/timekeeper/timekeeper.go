package timekeeper

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gametimer/internal/core/model"
	"gametimer/internal/core/registry"
)

// LaunchStore persists the name of the most recently started activity.
// An empty name clears it.
type LaunchStore interface {
	SaveLastActivity(name string) error
}

// Options contains collaborators for TimeKeeper.
type Options struct {
	Scheduler Scheduler
	Launch    LaunchStore
	Logger    *slog.Logger
	Now       func() time.Time
}

// Snapshot is the presentation view of the engine.
type Snapshot struct {
	State       State
	Selected    string
	Running     bool
	Total       int64
	Session     int64
	LastStarted string
	Activities  []model.Activity
}

// TimeKeeper is the start/pause/tick state machine over a registry.
// It is not safe for concurrent use: every call, including scheduled ticks,
// must come from the same goroutine.
type TimeKeeper struct {
	registry  *registry.Registry
	config    model.EngineConfig
	scheduler Scheduler
	launch    LaunchStore
	logger    *slog.Logger
	now       func() time.Time

	selected    string
	current     int64
	sessions    map[string]int64
	running     bool
	saveCounter int
	lastStarted string
	cancelTick  func()
	generation  uint64
	events      []chan Event
}

// New creates a TimeKeeper in the idle state.
func New(activities *registry.Registry, config model.EngineConfig, options Options) *TimeKeeper {
	if options.Scheduler == nil {
		options.Scheduler = NewTickerScheduler(nil)
	}
	if options.Launch == nil {
		options.Launch = discardLaunch{}
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	return &TimeKeeper{
		registry:  activities,
		config:    config.Normalized(),
		scheduler: options.Scheduler,
		launch:    options.Launch,
		logger:    options.Logger,
		now:       options.Now,
		sessions:  make(map[string]int64),
	}
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.events = append(keeper.events, ch)
	return ch
}

// State returns the current mode.
func (keeper *TimeKeeper) State() State {
	switch {
	case keeper.selected == "":
		return StateIdle
	case keeper.running:
		return StateRunning
	default:
		return StateSelected
	}
}

// Selected returns the selected activity name.
func (keeper *TimeKeeper) Selected() (string, bool) {
	return keeper.selected, keeper.selected != ""
}

// Running reports whether the selected activity is ticking.
func (keeper *TimeKeeper) Running() bool {
	return keeper.running
}

// Total returns the live total of the selected activity.
func (keeper *TimeKeeper) Total() int64 {
	return keeper.current
}

// Session returns the session seconds of name in this process run.
func (keeper *TimeKeeper) Session(name string) int64 {
	return keeper.sessions[name]
}

// LastStarted returns the most recently started activity name.
func (keeper *TimeKeeper) LastStarted() string {
	return keeper.lastStarted
}

// Snapshot returns everything a presentation layer renders.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	activities := keeper.registry.Activities()
	if keeper.selected != "" {
		for index := range activities {
			if activities[index].Name == keeper.selected {
				activities[index].TotalSeconds = keeper.current
			}
		}
	}

	return Snapshot{
		State:       keeper.State(),
		Selected:    keeper.selected,
		Running:     keeper.running,
		Total:       keeper.current,
		Session:     keeper.sessions[keeper.selected],
		LastStarted: keeper.lastStarted,
		Activities:  registry.SortDescending(activities),
	}
}

// Select focuses an activity. Its session counter starts at zero the first
// time it is selected and is kept on later selections.
func (keeper *TimeKeeper) Select(name string) error {
	if keeper.running {
		return fmt.Errorf("select %q while running: %w", name, model.ErrInvalidTransition)
	}
	total, ok := keeper.registry.Total(name)
	if !ok {
		return fmt.Errorf("select %q: %w", name, model.ErrUnknownActivity)
	}

	keeper.selected = name
	keeper.current = total
	if _, seen := keeper.sessions[name]; !seen {
		keeper.sessions[name] = 0
	}

	keeper.emitState()
	return nil
}

// Start begins ticking the selected activity and records it as the last started.
// A returned ErrPersistenceFailure means the timer is running but the launch
// preference was not written.
func (keeper *TimeKeeper) Start() error {
	if keeper.running {
		return fmt.Errorf("start while running: %w", model.ErrInvalidTransition)
	}
	if keeper.selected == "" {
		return fmt.Errorf("start with no activity selected: %w", model.ErrInvalidTransition)
	}

	keeper.running = true
	keeper.lastStarted = keeper.selected
	persistErr := keeper.saveLastStarted()
	keeper.scheduleTicks()

	keeper.logger.Info("timer started", slog.String("activity", keeper.selected), slog.Int64("total", keeper.current))
	keeper.emitState()
	return persistErr
}

// Pause stops ticking and saves the selected total regardless of the throttle.
func (keeper *TimeKeeper) Pause() error {
	if !keeper.running {
		return fmt.Errorf("pause while not running: %w", model.ErrInvalidTransition)
	}

	keeper.cancelTicks()
	err := keeper.flush()
	keeper.running = false
	keeper.saveCounter = 0

	keeper.logger.Info("timer paused", slog.String("activity", keeper.selected), slog.Int64("total", keeper.current))
	keeper.emitState()
	return err
}

// Tick accumulates one second on the selected activity. Every SaveEvery ticks
// the total is written through to the registry and saved.
func (keeper *TimeKeeper) Tick() {
	if !keeper.running {
		return
	}

	keeper.current++
	keeper.sessions[keeper.selected]++
	keeper.saveCounter++
	if keeper.saveCounter >= keeper.config.SaveEvery {
		keeper.saveCounter = 0
		_ = keeper.flush()
	}

	keeper.emit(Event{
		Type:     EventProgress,
		State:    StateRunning,
		Activity: keeper.selected,
		Total:    keeper.current,
		Session:  keeper.sessions[keeper.selected],
		At:       keeper.now(),
	})
}

// Reset returns to idle. Seconds not yet saved are discarded.
func (keeper *TimeKeeper) Reset() {
	keeper.cancelTicks()
	keeper.running = false
	keeper.saveCounter = 0
	keeper.selected = ""
	keeper.current = 0
	keeper.emitState()
}

// EditTotal overwrites the lifetime total of name. The running activity must
// be paused first.
func (keeper *TimeKeeper) EditTotal(name string, seconds int64) error {
	if keeper.running && name == keeper.selected {
		return fmt.Errorf("edit %q while running: %w", name, model.ErrInvalidTransition)
	}

	err := keeper.registry.SetTotal(name, seconds)
	if err != nil && !errors.Is(err, model.ErrPersistenceFailure) {
		return err
	}
	if name == keeper.selected {
		keeper.current = seconds
	}

	keeper.emitActivitiesChanged(name)
	return err
}

// AddActivity registers a new activity and selects it when the timer is not
// running. It returns the trimmed name.
func (keeper *TimeKeeper) AddActivity(name string) (string, error) {
	added, err := keeper.registry.Add(name)
	if added == "" {
		return "", err
	}

	keeper.emitActivitiesChanged(added)
	if !keeper.running {
		if selectErr := keeper.Select(added); selectErr != nil {
			return added, errors.Join(err, selectErr)
		}
	}
	return added, err
}

// RemoveActivity deletes an activity. Removing the selected one stops its
// timer without saving pending seconds and returns to idle.
func (keeper *TimeKeeper) RemoveActivity(name string) error {
	if name != "" && name == keeper.selected {
		keeper.Reset()
	}
	delete(keeper.sessions, name)

	var launchErr error
	if name != "" && name == keeper.lastStarted {
		keeper.lastStarted = ""
		launchErr = keeper.saveLastStarted()
	}

	removeErr := keeper.registry.Remove(name)
	keeper.emitActivitiesChanged(name)
	return errors.Join(launchErr, removeErr)
}

// Restore selects the activity started in a previous run, if it still exists.
// It never starts the timer.
func (keeper *TimeKeeper) Restore(name string) bool {
	if name == "" || !keeper.registry.Has(name) {
		return false
	}
	if err := keeper.Select(name); err != nil {
		return false
	}
	keeper.lastStarted = name
	return true
}

// Shutdown saves a running timer and closes observers.
func (keeper *TimeKeeper) Shutdown() error {
	var err error
	if keeper.running {
		err = keeper.Pause()
	}

	events := keeper.events
	keeper.events = nil
	for _, ch := range events {
		close(ch)
	}
	return err
}

func (keeper *TimeKeeper) scheduleTicks() {
	keeper.cancelTicks()
	generation := keeper.generation
	keeper.cancelTick = keeper.scheduler.Every(keeper.config.TickInterval, func() {
		if generation != keeper.generation {
			return
		}
		keeper.Tick()
	})
}

func (keeper *TimeKeeper) cancelTicks() {
	if keeper.cancelTick != nil {
		keeper.cancelTick()
		keeper.cancelTick = nil
	}
	keeper.generation++
}

func (keeper *TimeKeeper) flush() error {
	if err := keeper.registry.SetTotal(keeper.selected, keeper.current); err != nil {
		keeper.emit(Event{
			Type:     EventWarning,
			State:    keeper.State(),
			Activity: keeper.selected,
			Message:  err.Error(),
			Err:      err,
			At:       keeper.now(),
		})
		return err
	}

	keeper.emit(Event{
		Type:     EventSaved,
		State:    keeper.State(),
		Activity: keeper.selected,
		Total:    keeper.current,
		At:       keeper.now(),
	})
	return nil
}

func (keeper *TimeKeeper) saveLastStarted() error {
	if err := keeper.launch.SaveLastActivity(keeper.lastStarted); err != nil {
		if !errors.Is(err, model.ErrPersistenceFailure) {
			err = fmt.Errorf("%w: save last activity: %w", model.ErrPersistenceFailure, err)
		}
		keeper.logger.Warn("last activity not saved", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (keeper *TimeKeeper) emitState() {
	keeper.emit(Event{
		Type:     EventStateChange,
		State:    keeper.State(),
		Activity: keeper.selected,
		Total:    keeper.current,
		Session:  keeper.sessions[keeper.selected],
		At:       keeper.now(),
	})
}

func (keeper *TimeKeeper) emitActivitiesChanged(name string) {
	keeper.emit(Event{
		Type:     EventActivitiesChanged,
		State:    keeper.State(),
		Activity: name,
		At:       keeper.now(),
	})
}

func (keeper *TimeKeeper) emit(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

type discardLaunch struct{}

func (discardLaunch) SaveLastActivity(string) error { return nil }
