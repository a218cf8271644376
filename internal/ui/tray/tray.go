package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"gametimer/internal/core/model"
	"gametimer/internal/core/timekeeper"
)

// MenuSetter is the part of desktop.App the tray needs.
type MenuSetter interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        MenuSetter
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	callbacks  Callbacks
	status     string
}

// New creates a tray manager with the provided callbacks.
func New(app MenuSetter, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: no game selected", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})
	manager.toggleItem.Disabled = true

	manager.refreshMenu()
	return manager
}

// Update reflects the engine snapshot in the menu.
func (manager *Manager) Update(snapshot timekeeper.Snapshot) {
	status := statusLine(snapshot)
	label := "Start"
	if snapshot.Running {
		label = "Pause"
	}
	disabled := snapshot.Selected == ""
	if status == manager.status && label == manager.toggleItem.Label && disabled == manager.toggleItem.Disabled {
		return
	}

	manager.status = status
	manager.statusItem.Label = status
	manager.toggleItem.Label = label
	manager.toggleItem.Disabled = disabled
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// ToggleLabel returns the label of the start/pause item.
func (manager *Manager) ToggleLabel() string {
	return manager.toggleItem.Label
}

func statusLine(snapshot timekeeper.Snapshot) string {
	switch {
	case snapshot.Selected == "":
		return "Status: no game selected"
	case snapshot.Running:
		return fmt.Sprintf("Status: %s %s", snapshot.Selected, model.FormatElapsed(snapshot.Total))
	default:
		return fmt.Sprintf("Status: %s %s (paused)", snapshot.Selected, model.FormatElapsed(snapshot.Total))
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Game Timer",
		manager.statusItem,
		manager.toggleItem,
		fyne.NewMenuItem("Show", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItem("Settings", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
