package resources

import (
	"embed"
	"fmt"
	"path"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	iconDir = "icons/"

	// AppIcon is shown on the window and on an idle tray.
	AppIcon = "gametimer.svg"
	// RunningIcon is shown on the tray while a timer ticks.
	RunningIcon = "gametimer_running.svg"
)

//go:embed icons/*.svg
var iconFS embed.FS

var iconCache sync.Map

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	return loadResource(iconFS, iconDir+fileName, &iconCache)
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

func loadResource(fs embed.FS, location string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(location); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", location, err)
	}

	resource := fyne.NewStaticResource(path.Base(location), data)
	cache.Store(location, resource)
	return resource, nil
}
