package timekeeper

import "time"

// State represents the current engine mode.
type State string

const (
	StateIdle     State = "idle"
	StateSelected State = "selected"
	StateRunning  State = "running"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange       EventType = "state_change"
	EventProgress          EventType = "progress"
	EventSaved             EventType = "saved"
	EventWarning           EventType = "warning"
	EventActivitiesChanged EventType = "activities_changed"
)

// Event represents an engine update for observers.
type Event struct {
	Type     EventType
	State    State
	Activity string
	Total    int64
	Session  int64
	Message  string
	Err      error
	At       time.Time
}
