package mainwindow

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"gametimer/internal/core/model"
	"gametimer/internal/core/registry"
	"gametimer/internal/core/timekeeper"
)

type memoryStore struct{}

func (memoryStore) Load() ([]model.Activity, error) { return nil, nil }

func (memoryStore) Save([]model.Activity) error { return nil }

type manualScheduler struct {
	tick func()
}

func (scheduler *manualScheduler) Every(_ time.Duration, tick func()) func() {
	scheduler.tick = tick
	return func() { scheduler.tick = nil }
}

func newTestWindow(t *testing.T) (*Window, *timekeeper.TimeKeeper, *manualScheduler) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	scheduler := &manualScheduler{}
	activities := registry.New(memoryStore{}, nil)
	keeper := timekeeper.New(activities, model.DefaultEngineConfig(), timekeeper.Options{Scheduler: scheduler})
	return New(app, keeper, Config{}), keeper, scheduler
}

func TestIdleWindowDisablesTimerControls(t *testing.T) {
	view, _, _ := newTestWindow(t)

	require.Equal(t, idleTitle, view.nameLabel.Text)
	require.Equal(t, "0:00:00", view.totalText.Text)
	require.True(t, view.startButton.Disabled())
	require.True(t, view.pauseButton.Disabled())
	require.True(t, view.removeButton.Disabled())
	require.True(t, view.editButton.Disabled())
	require.False(t, view.addButton.Disabled())
}

func TestStartAndPauseFromButtons(t *testing.T) {
	view, keeper, scheduler := newTestWindow(t)
	_, err := keeper.AddActivity("Chess")
	require.NoError(t, err)
	view.Render()
	require.Equal(t, "Chess", view.nameLabel.Text)
	require.False(t, view.startButton.Disabled())

	test.Tap(view.startButton)
	require.True(t, keeper.Running())
	require.True(t, view.startButton.Disabled())
	require.True(t, view.addButton.Disabled())
	require.True(t, view.editButton.Disabled())
	require.False(t, view.pauseButton.Disabled())

	for i := 0; i < 61; i++ {
		scheduler.tick()
	}
	view.HandleEvent(timekeeper.Event{Type: timekeeper.EventProgress})
	require.Equal(t, "0:01:01", view.totalText.Text)
	require.Equal(t, "Session: 0:01:01", view.sessionLabel.Text)

	test.Tap(view.pauseButton)
	require.False(t, keeper.Running())
	require.False(t, view.startButton.Disabled())
}

func TestListSelectionSelectsActivity(t *testing.T) {
	view, keeper, _ := newTestWindow(t)
	_, err := keeper.AddActivity("Chess")
	require.NoError(t, err)
	_, err = keeper.AddActivity("Go")
	require.NoError(t, err)
	require.NoError(t, keeper.EditTotal("Go", 3600))
	view.Render()

	require.Equal(t, "Go", view.rows[0].Name)
	view.list.Select(1)
	selected, _ := keeper.Selected()
	require.Equal(t, "Chess", selected)
	require.Equal(t, "Chess", view.nameLabel.Text)
}

func TestListSelectionWhileRunningIsRejected(t *testing.T) {
	view, keeper, _ := newTestWindow(t)
	_, err := keeper.AddActivity("Chess")
	require.NoError(t, err)
	_, err = keeper.AddActivity("Go")
	require.NoError(t, err)
	require.NoError(t, keeper.Start())
	view.Render()

	require.Equal(t, "Chess", view.rows[0].Name)
	view.list.Select(0)
	selected, _ := keeper.Selected()
	require.Equal(t, "Go", selected)
	require.Equal(t, "Go", view.nameLabel.Text)
}

func TestParseSeconds(t *testing.T) {
	seconds, err := parseSeconds(" 120 ")
	require.NoError(t, err)
	require.EqualValues(t, 120, seconds)

	_, err = parseSeconds("-1")
	require.Error(t, err)
	_, err = parseSeconds("1:00")
	require.Error(t, err)
}
