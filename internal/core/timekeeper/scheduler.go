package timekeeper

import (
	"sync"
	"time"
)

// Scheduler runs tick every interval until the returned cancel func is called.
type Scheduler interface {
	Every(interval time.Duration, tick func()) (cancel func())
}

// Dispatcher hands a callback to the goroutine that owns the engine.
type Dispatcher func(func())

// TickerScheduler drives ticks from a time.Ticker and passes each one to a
// Dispatcher, so the engine itself is only touched from its control goroutine.
type TickerScheduler struct {
	dispatch Dispatcher
}

// NewTickerScheduler creates a scheduler. A nil dispatch calls tick directly
// on the ticker goroutine, which is only correct when nothing else touches the engine.
func NewTickerScheduler(dispatch Dispatcher) *TickerScheduler {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &TickerScheduler{dispatch: dispatch}
}

// Every implements Scheduler.
func (scheduler *TickerScheduler) Every(interval time.Duration, tick func()) func() {
	stopCh := make(chan struct{})
	go scheduler.run(interval, tick, stopCh)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stopCh)
		})
	}
}

func (scheduler *TickerScheduler) run(interval time.Duration, tick func(), stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			scheduler.dispatch(tick)
		}
	}
}
