package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gametimer/internal/core/model"
)

func openInMemory(t *testing.T) *TotalsStore {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestEmptyDatabaseLoadsNothing(t *testing.T) {
	store := openInMemory(t)
	activities, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, activities)
}

func TestSaveReplacesAndKeepsOrder(t *testing.T) {
	store := openInMemory(t)
	require.NoError(t, store.Save([]model.Activity{{Name: "Old", TotalSeconds: 1}}))

	activities := []model.Activity{
		{Name: "Zelda", TotalSeconds: 40},
		{Name: "Chess", TotalSeconds: 0},
	}
	require.NoError(t, store.Save(activities))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, activities, loaded)
}

func TestLoadRejectsCorruptRows(t *testing.T) {
	cases := map[string]string{
		"negative": `INSERT INTO activity_totals (name, seconds, position) VALUES ('Chess', -3, 0)`,
		"text":     `INSERT INTO activity_totals (name, seconds, position) VALUES ('Chess', 'lots', 0)`,
		"real":     `INSERT INTO activity_totals (name, seconds, position) VALUES ('Chess', 1.5, 0)`,
	}
	for name, statement := range cases {
		t.Run(name, func(t *testing.T) {
			store := openInMemory(t)
			_, err := store.db.Exec(`INSERT INTO activity_totals (name, seconds, position) VALUES ('Go', 5, 1)`)
			require.NoError(t, err)
			_, err = store.db.Exec(statement)
			require.NoError(t, err)

			activities, err := store.Load()
			require.ErrorIs(t, err, model.ErrCorruptData)
			require.Nil(t, activities)
		})
	}
}

func TestFileDatabasePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "games.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save([]model.Activity{{Name: "Chess", TotalSeconds: 15}}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	activities, err := reopened.Load()
	require.NoError(t, err)
	require.Equal(t, []model.Activity{{Name: "Chess", TotalSeconds: 15}}, activities)
}
