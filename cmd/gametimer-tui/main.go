package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gametimer/internal/app"
	"gametimer/internal/platform"
	"gametimer/internal/ui/terminal"
)

const appName = "GameTimer"

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	logFile := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	settings, err := app.LoadSettings(appName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load settings:", err)
		os.Exit(1)
	}

	// stderr belongs to the UI while it runs.
	logOutput, closeLog, err := openLog(*logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open log:", err)
		os.Exit(1)
	}
	defer closeLog()
	logger := app.NewLogger(logOutput, settings, *verbose)
	slog.SetDefault(logger)

	guard, err := platform.AcquireSingleInstance(appName + ":" + settings.DataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "single instance:", err)
		os.Exit(1)
	}
	defer func() {
		_ = guard.Release()
	}()

	var program *tea.Program
	tracker, err := app.New(app.Options{
		Settings: settings,
		Logger:   logger,
		Dispatch: terminal.Dispatcher(func(msg tea.Msg) { program.Send(msg) }),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "start tracker:", err)
		os.Exit(1)
	}

	keeper := tracker.Engine()
	model := terminal.New(keeper, keeper.Subscribe(16), tracker.Warnings())
	program = tea.NewProgram(model, tea.WithAltScreen())

	_, runErr := program.Run()
	if err := tracker.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "save games:", err)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "run terminal ui:", runErr)
		os.Exit(1)
	}
}

func openLog(path string) (*os.File, func(), error) {
	if path == "" {
		devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			return nil, nil, err
		}
		return devNull, func() { _ = devNull.Close() }, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { _ = file.Close() }, nil
}
