package mainwindow

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"gametimer/internal/core/model"
	"gametimer/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const idleTitle = "!!!pick a game!!!"

// Engine is the part of the timer engine the window drives.
type Engine interface {
	Snapshot() timekeeper.Snapshot
	Select(name string) error
	Start() error
	Pause() error
	AddActivity(name string) (string, error)
	RemoveActivity(name string) error
	EditTotal(name string, seconds int64) error
}

// Config defines window geometry.
type Config struct {
	Width  float32
	Height float32
	Logger *slog.Logger
}

// Window is the main game timer window.
type Window struct {
	window fyne.Window
	engine Engine
	logger *slog.Logger

	nameLabel    *widget.Label
	totalText    *canvas.Text
	sessionLabel *widget.Label
	startButton  *widget.Button
	pauseButton  *widget.Button
	addButton    *widget.Button
	removeButton *widget.Button
	editButton   *widget.Button
	list         *widget.List

	rows      []model.Activity
	selecting bool
	onRender  func(timekeeper.Snapshot)
}

// New creates the main window.
func New(app fyne.App, engine Engine, config Config) *Window {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Width <= 0 || config.Height <= 0 {
		config.Width, config.Height = 500, 500
	}

	window := app.NewWindow("Game Timer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window: window,
		engine: engine,
		logger: config.Logger,
	}

	view.nameLabel = widget.NewLabelWithStyle(idleTitle, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	view.totalText = canvas.NewText(model.FormatElapsed(0), theme.Color(theme.ColorNameForeground))
	view.totalText.Alignment = fyne.TextAlignCenter
	view.totalText.TextSize = 72

	view.sessionLabel = widget.NewLabelWithStyle(sessionText(0), fyne.TextAlignCenter, fyne.TextStyle{})

	view.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), view.handleStart)
	view.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), view.handlePause)
	view.addButton = widget.NewButtonWithIcon("Add New Game", theme.ContentAddIcon(), view.handleAdd)
	view.removeButton = widget.NewButtonWithIcon("Remove Game", theme.DeleteIcon(), view.handleRemove)
	view.editButton = widget.NewButtonWithIcon("Edit Time", theme.DocumentCreateIcon(), view.handleEdit)

	view.list = widget.NewList(
		func() int {
			return len(view.rows)
		},
		func() fyne.CanvasObject {
			name := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
			total := widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true})
			return container.NewBorder(nil, nil, nil, total, name)
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < 0 || id >= len(view.rows) {
				return
			}
			row := item.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(view.rows[id].Name)
			row.Objects[1].(*widget.Label).SetText(model.FormatElapsed(view.rows[id].TotalSeconds))
		},
	)
	view.list.OnSelected = view.handleSelected

	timerControls := container.NewGridWithColumns(2, view.startButton, view.pauseButton)
	gameControls := container.NewGridWithColumns(3, view.addButton, view.removeButton, view.editButton)
	header := container.NewVBox(
		view.nameLabel,
		view.totalText,
		view.sessionLabel,
		timerControls,
		gameControls,
	)
	window.SetContent(container.NewBorder(header, nil, nil, nil, view.list))
	window.Resize(fyne.NewSize(config.Width, config.Height))
	window.CenterOnScreen()

	view.Render()
	return view
}

// Window returns the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// SetOnRender registers a hook called with every rendered snapshot.
func (view *Window) SetOnRender(handler func(timekeeper.Snapshot)) {
	view.onRender = handler
}

// HandleEvent reacts to an engine event. It must run on the fyne main goroutine.
func (view *Window) HandleEvent(event timekeeper.Event) {
	if event.Type == timekeeper.EventWarning && event.Err != nil {
		view.showError("Failed to save games", event.Err)
	}
	view.Render()
}

// ShowWarnings reports problems found while loading.
func (view *Window) ShowWarnings(warnings []error) {
	for _, warning := range warnings {
		view.showError("Failed to load games", warning)
	}
}

// Render redraws the window from the engine state.
func (view *Window) Render() {
	snapshot := view.engine.Snapshot()
	view.rows = snapshot.Activities

	if snapshot.Selected == "" {
		view.nameLabel.SetText(idleTitle)
	} else {
		view.nameLabel.SetText(snapshot.Selected)
	}
	view.totalText.Text = model.FormatElapsed(snapshot.Total)
	if snapshot.Running {
		view.totalText.Color = theme.Color(theme.ColorNamePrimary)
	} else {
		view.totalText.Color = theme.Color(theme.ColorNameForeground)
	}
	view.totalText.Refresh()
	view.sessionLabel.SetText(sessionText(snapshot.Session))

	hasSelection := snapshot.Selected != ""
	setEnabled(view.startButton, hasSelection && !snapshot.Running)
	setEnabled(view.pauseButton, snapshot.Running)
	setEnabled(view.addButton, !snapshot.Running)
	setEnabled(view.removeButton, hasSelection && !snapshot.Running)
	setEnabled(view.editButton, hasSelection && !snapshot.Running)

	view.list.Refresh()
	view.syncSelection(snapshot.Selected)

	if view.onRender != nil {
		view.onRender(snapshot)
	}
}

func (view *Window) syncSelection(selected string) {
	view.selecting = true
	defer func() {
		view.selecting = false
	}()

	for index, row := range view.rows {
		if row.Name == selected {
			view.list.Select(index)
			return
		}
	}
	view.list.UnselectAll()
}

func (view *Window) handleSelected(id widget.ListItemID) {
	if view.selecting || id < 0 || id >= len(view.rows) {
		return
	}
	if err := view.engine.Select(view.rows[id].Name); err != nil {
		view.logger.Debug("selection rejected", slog.String("error", err.Error()))
	}
	view.Render()
}

func (view *Window) handleStart() {
	view.report(view.engine.Start())
	view.Render()
}

func (view *Window) handlePause() {
	view.report(view.engine.Pause())
	view.Render()
}

func (view *Window) handleAdd() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Enter game name")
	entry.Validator = func(value string) error {
		if strings.TrimSpace(value) == "" {
			return errors.New("game name cannot be empty")
		}
		return nil
	}

	items := []*widget.FormItem{widget.NewFormItem("Name", entry)}
	dialog.ShowForm("Add Game", "Add", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		_, err := view.engine.AddActivity(strings.TrimSpace(entry.Text))
		view.report(err)
		view.Render()
	}, view.window)
}

func (view *Window) handleRemove() {
	name := view.engine.Snapshot().Selected
	if name == "" {
		return
	}
	message := fmt.Sprintf("Are you sure you want to remove %s?", name)
	dialog.ShowConfirm("Confirm Remove", message, func(confirmed bool) {
		if !confirmed {
			return
		}
		view.report(view.engine.RemoveActivity(name))
		view.Render()
	}, view.window)
}

func (view *Window) handleEdit() {
	snapshot := view.engine.Snapshot()
	if snapshot.Selected == "" {
		return
	}
	name := snapshot.Selected

	entry := widget.NewEntry()
	entry.SetText(strconv.FormatInt(snapshot.Total, 10))
	entry.Validator = func(value string) error {
		_, err := parseSeconds(value)
		return err
	}

	items := []*widget.FormItem{widget.NewFormItem("Seconds", entry)}
	dialog.ShowForm("Edit Time", "Save", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		seconds, err := parseSeconds(entry.Text)
		if err != nil {
			view.report(err)
			return
		}
		view.report(view.engine.EditTotal(name, seconds))
		view.Render()
	}, view.window)
}

func (view *Window) report(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, model.ErrDuplicateActivity):
		dialog.ShowInformation("Warning", "Game already exists.", view.window)
	case errors.Is(err, model.ErrPersistenceFailure):
		view.showError("Failed to save games", err)
	default:
		view.logger.Debug("operation rejected", slog.String("error", err.Error()))
		dialog.ShowError(err, view.window)
	}
}

func (view *Window) showError(title string, err error) {
	view.logger.Warn(strings.ToLower(title), slog.String("error", err.Error()))
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), view.window)
}

func parseSeconds(value string) (int64, error) {
	seconds, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, errors.New("enter a whole number of seconds")
	}
	if seconds < 0 {
		return 0, errors.New("time cannot be negative")
	}
	return seconds, nil
}

func sessionText(seconds int64) string {
	return "Session: " + model.FormatElapsed(seconds)
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}
