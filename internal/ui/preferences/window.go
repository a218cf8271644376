package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"gametimer/internal/config"
)

// Window handles the settings UI. Saved settings apply on the next launch.
type Window struct {
	window   fyne.Window
	settings config.Settings
	onSave   func(config.Settings) error

	backend      *widget.Select
	saveEvery    *widget.Entry
	tickInterval *widget.Entry
	logLevel     *widget.Select
}

// New creates a settings window. onSave persists the edited settings.
func New(app fyne.App, settings config.Settings, onSave func(config.Settings) error) *Window {
	window := app.NewWindow("Game Timer Settings")

	backend := widget.NewSelect([]string{string(config.BackendJSON), string(config.BackendSQLite)}, nil)
	saveEvery := widget.NewEntry()
	tickInterval := widget.NewEntry()
	logLevel := widget.NewSelect(logLevels, nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Storage", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Backend"), backend),
		container.NewHBox(widget.NewLabel("Save every"), saveEvery, widget.NewLabel("ticks")),
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Tick interval"), tickInterval, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Log level"), logLevel),
		widget.NewLabel("Changes take effect after restart."),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 300))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		backend:      backend,
		saveEvery:    saveEvery,
		tickInterval: tickInterval,
		logLevel:     logLevel,
	}
	saveButton.OnTapped = prefs.handleSave
	prefs.UpdateSettings(settings)

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() config.Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings config.Settings) {
	prefs.settings = settings
	values := fieldsFrom(settings)
	prefs.backend.SetSelected(values.Backend)
	prefs.saveEvery.SetText(values.SaveEvery)
	prefs.tickInterval.SetText(values.TickInterval)
	prefs.logLevel.SetSelected(values.LogLevel)
}

func (prefs *Window) handleSave() {
	values := fields{
		Backend:      prefs.backend.Selected,
		SaveEvery:    prefs.saveEvery.Text,
		TickInterval: prefs.tickInterval.Text,
		LogLevel:     prefs.logLevel.Selected,
	}
	settings, err := values.apply(prefs.settings)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.settings = settings
	prefs.window.Hide()
}
