package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"gametimer/internal/app"
	"gametimer/internal/config"
	"gametimer/internal/core/timekeeper"
	"gametimer/internal/platform"
	"gametimer/internal/ui/mainwindow"
	"gametimer/internal/ui/preferences"
	"gametimer/internal/ui/tray"
	"gametimer/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "GameTimer"

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	settings, err := app.LoadSettings(appName)
	logger := app.NewLogger(os.Stderr, settings, *verbose)
	slog.SetDefault(logger)
	if err != nil {
		logger.Error("load settings", slog.String("error", err.Error()))
		os.Exit(1)
	}

	guard, err := platform.AcquireSingleInstance(appName + ":" + settings.DataDir)
	if err != nil {
		logger.Error("single instance", slog.String("error", err.Error()))
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID("com.gametimer.app")
	appIcon := resources.MustIcon(resources.AppIcon)
	runningIcon := resources.MustIcon(resources.RunningIcon)
	fyneApp.SetIcon(appIcon)

	tracker, err := app.New(app.Options{
		Settings: settings,
		Logger:   logger,
		Dispatch: func(fn func()) { fyne.Do(fn) },
	})
	if err != nil {
		logger.Error("start tracker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := tracker.Close(); err != nil {
			logger.Error("shutdown", slog.String("error", err.Error()))
		}
	}()
	keeper := tracker.Engine()

	window := mainwindow.New(fyneApp, keeper, mainwindow.Config{
		Width:  settings.WindowWidth,
		Height: settings.WindowHeight,
		Logger: logger,
	})

	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		logger.Warn("settings window disabled", slog.String("error", err.Error()))
	}
	prefsWindow := preferences.New(fyneApp, settings, func(updated config.Settings) error {
		if configDir == "" {
			return errors.New("no config directory")
		}
		if err := app.SaveEditableSettings(configDir, updated); err != nil {
			return err
		}
		logger.Info("settings saved", slog.String("backend", string(updated.Backend)))
		return nil
	})

	quit := func() {
		if err := tracker.Close(); err != nil {
			logger.Error("shutdown", slog.String("error", err.Error()))
		}
		fyneApp.Quit()
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow: window.Show,
			OnToggle: func() {
				toggle(keeper, logger)
				window.Render()
			},
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(appIcon)

		running := false
		window.SetOnRender(func(snapshot timekeeper.Snapshot) {
			trayManager.Update(snapshot)
			if snapshot.Running != running {
				running = snapshot.Running
				if running {
					desktopApp.SetSystemTrayIcon(runningIcon)
				} else {
					desktopApp.SetSystemTrayIcon(appIcon)
				}
			}
		})
		window.Window().SetCloseIntercept(func() {
			window.Window().Hide()
		})
	} else {
		window.Window().SetCloseIntercept(quit)
	}
	window.Window().SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("Game Timer",
		fyne.NewMenuItem("Settings", prefsWindow.Show),
	)))

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			fyne.Do(func() {
				window.HandleEvent(event)
			})
		}
	}()

	window.Render()
	window.ShowWarnings(tracker.Warnings())
	window.Show()
	fyneApp.Run()
}

func toggle(keeper *timekeeper.TimeKeeper, logger *slog.Logger) {
	var err error
	if keeper.Running() {
		err = keeper.Pause()
	} else {
		err = keeper.Start()
	}
	if err != nil {
		logger.Warn("tray toggle", slog.String("error", err.Error()))
	}
}
