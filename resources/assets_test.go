package resources

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIconsAreEmbedded(t *testing.T) {
	for _, name := range []string{AppIcon, RunningIcon} {
		resource, err := Icon(name)
		require.NoError(t, err)
		require.Equal(t, name, resource.Name())
		require.Contains(t, string(resource.Content()), "<svg")
	}
}

func TestIconIsCached(t *testing.T) {
	first := MustIcon(AppIcon)
	second := MustIcon(AppIcon)
	require.Same(t, first, second)
}

func TestMissingIcon(t *testing.T) {
	_, err := Icon("missing.svg")
	require.Error(t, err)
	require.Panics(t, func() { MustIcon("missing.svg") })
}
