package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gametimer/internal/core/model"
)

func TestTotalsFileMissingIsEmpty(t *testing.T) {
	store := NewTotalsFile(filepath.Join(t.TempDir(), TotalsFileName))

	activities, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, activities)
}

func TestTotalsFileRoundTripKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", TotalsFileName)
	store := NewTotalsFile(path)
	activities := []model.Activity{
		{Name: "Zelda", TotalSeconds: 12},
		{Name: "Chess", TotalSeconds: 0},
		{Name: "Civ \"VI\"", TotalSeconds: 86400},
	}

	require.NoError(t, store.Save(activities))
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, activities, loaded)
}

func TestTotalsFileIndentedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), TotalsFileName)
	store := NewTotalsFile(path)
	require.NoError(t, store.Save([]model.Activity{{Name: "Chess", TotalSeconds: 15}, {Name: "Go", TotalSeconds: 3}}))

	rawData, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{\n    \"Chess\": 15,\n    \"Go\": 3\n}\n", string(rawData))

	require.NoError(t, store.Save(nil))
	rawData, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{}\n", string(rawData))
}

func TestTotalsFileSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewTotalsFile(filepath.Join(dir, TotalsFileName))
	require.NoError(t, store.Save([]model.Activity{{Name: "Chess", TotalSeconds: 1}}))
	require.NoError(t, store.Save([]model.Activity{{Name: "Chess", TotalSeconds: 2}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, TotalsFileName, entries[0].Name())
}

func TestTotalsFileRejectsCorruptContent(t *testing.T) {
	cases := map[string]string{
		"not json":         "this is not json",
		"empty file":       "",
		"array":            `[1, 2, 3]`,
		"number":           `42`,
		"string value":     `{"Chess": "15"}`,
		"float value":      `{"Chess": 1.5}`,
		"exponent value":   `{"Chess": 1e3}`,
		"negative value":   `{"Chess": 10, "Go": -1}`,
		"bool value":       `{"Chess": true}`,
		"null value":       `{"Chess": null}`,
		"nested value":     `{"Chess": {"total": 1}}`,
		"empty name":       `{"  ": 4}`,
		"truncated":        `{"Chess": 15`,
		"trailing garbage": `{"Chess": 15} {}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), TotalsFileName)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			activities, err := NewTotalsFile(path).Load()
			require.ErrorIs(t, err, model.ErrCorruptData)
			require.Nil(t, activities)
		})
	}
}

func TestTotalsFileDuplicateKeyLastWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), TotalsFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"Chess": 1, "Go": 2, "Chess": 3}`), 0o644))

	activities, err := NewTotalsFile(path).Load()
	require.NoError(t, err)
	require.Equal(t, []model.Activity{{Name: "Chess", TotalSeconds: 3}, {Name: "Go", TotalSeconds: 2}}, activities)
}

func TestTotalsFileSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := NewTotalsFile(filepath.Join(blocker, TotalsFileName))
	err := store.Save([]model.Activity{{Name: "Chess"}})
	require.ErrorIs(t, err, model.ErrPersistenceFailure)
}
