package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatElapsedBoundaries(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0:00:00"},
		{59, "0:00:59"},
		{60, "0:01:00"},
		{61, "0:01:01"},
		{3599, "0:59:59"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
		{86399, "23:59:59"},
		{360000, "100:00:00"},
		{45296, "12:34:56"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatElapsed(tc.seconds), "seconds=%d", tc.seconds)
	}
}

func TestFormatElapsedMatchesComponents(t *testing.T) {
	for seconds := int64(0); seconds < 20000; seconds += 37 {
		want := fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
		require.Equal(t, want, FormatElapsed(seconds))
	}
}

func TestFormatElapsedClampsNegative(t *testing.T) {
	require.Equal(t, "0:00:00", FormatElapsed(-5))
}

func TestNormalizeName(t *testing.T) {
	name, err := NormalizeName("  Chess \t")
	require.NoError(t, err)
	require.Equal(t, "Chess", name)

	_, err = NormalizeName("   ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestEngineConfigNormalized(t *testing.T) {
	config := EngineConfig{}.Normalized()
	require.Equal(t, DefaultEngineConfig(), config)

	custom := EngineConfig{TickInterval: 5, SaveEvery: 3}.Normalized()
	require.Equal(t, 3, custom.SaveEvery)
}
