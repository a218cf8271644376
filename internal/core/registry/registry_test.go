package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"gametimer/internal/core/model"
)

type memoryStore struct {
	loaded  []model.Activity
	loadErr error
	saveErr error
	saves   [][]model.Activity
}

func (store *memoryStore) Load() ([]model.Activity, error) {
	return store.loaded, store.loadErr
}

func (store *memoryStore) Save(activities []model.Activity) error {
	if store.saveErr != nil {
		return store.saveErr
	}
	store.saves = append(store.saves, append([]model.Activity(nil), activities...))
	return nil
}

func TestAddInsertsZeroAndSaves(t *testing.T) {
	store := &memoryStore{}
	registry := New(store, nil)

	name, err := registry.Add("  Chess ")
	require.NoError(t, err)
	require.Equal(t, "Chess", name)

	total, ok := registry.Total("Chess")
	require.True(t, ok)
	require.Zero(t, total)
	require.Len(t, store.saves, 1)
	require.Equal(t, []model.Activity{{Name: "Chess"}}, store.saves[0])
}

func TestAddRejectsDuplicateWithoutSaving(t *testing.T) {
	store := &memoryStore{}
	registry := New(store, nil)
	_, err := registry.Add("Chess")
	require.NoError(t, err)

	_, err = registry.Add(" Chess")
	require.ErrorIs(t, err, model.ErrDuplicateActivity)
	require.Equal(t, 1, registry.Len())
	require.Len(t, store.saves, 1)
}

func TestAddRejectsEmptyName(t *testing.T) {
	registry := New(&memoryStore{}, nil)
	_, err := registry.Add("  ")
	require.ErrorIs(t, err, model.ErrInvalidInput)
	require.Zero(t, registry.Len())
}

func TestAddThenRemoveRestoresPriorState(t *testing.T) {
	store := &memoryStore{loaded: []model.Activity{{Name: "Go", TotalSeconds: 30}, {Name: "Chess", TotalSeconds: 5}}}
	registry := New(store, nil)
	require.NoError(t, registry.Load())
	before := registry.Activities()

	_, err := registry.Add("Poker")
	require.NoError(t, err)
	require.NoError(t, registry.Remove("Poker"))

	require.Equal(t, before, registry.Activities())
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := &memoryStore{}
	registry := New(store, nil)
	require.NoError(t, registry.Remove("missing"))
	require.NoError(t, registry.Remove("missing"))
	require.Len(t, store.saves, 2)
}

func TestSetTotalValidates(t *testing.T) {
	registry := New(&memoryStore{}, nil)
	_, err := registry.Add("Chess")
	require.NoError(t, err)

	require.ErrorIs(t, registry.SetTotal("Chess", -1), model.ErrInvalidInput)
	require.ErrorIs(t, registry.SetTotal("Go", 10), model.ErrUnknownActivity)

	require.NoError(t, registry.SetTotal("Chess", 100))
	total, _ := registry.Total("Chess")
	require.EqualValues(t, 100, total)

	require.NoError(t, registry.SetTotal("Chess", 3))
	total, _ = registry.Total("Chess")
	require.EqualValues(t, 3, total)
}

func TestSortedDescendingKeepsInsertionOrderForTies(t *testing.T) {
	store := &memoryStore{loaded: []model.Activity{
		{Name: "A", TotalSeconds: 10},
		{Name: "B", TotalSeconds: 50},
		{Name: "C", TotalSeconds: 10},
		{Name: "D", TotalSeconds: 0},
	}}
	registry := New(store, nil)
	require.NoError(t, registry.Load())

	sorted := registry.SortedDescending()
	names := make([]string, 0, len(sorted))
	for _, activity := range sorted {
		names = append(names, activity.Name)
	}
	require.Equal(t, []string{"B", "A", "C", "D"}, names)
}

func TestLoadCorruptLeavesRegistryEmpty(t *testing.T) {
	store := &memoryStore{loaded: []model.Activity{{Name: "Chess", TotalSeconds: 1}}, loadErr: model.ErrCorruptData}
	registry := New(store, nil)

	err := registry.Load()
	require.ErrorIs(t, err, model.ErrCorruptData)
	require.Zero(t, registry.Len())
}

func TestLoadReplacesPreviousContent(t *testing.T) {
	store := &memoryStore{}
	registry := New(store, nil)
	_, err := registry.Add("Old")
	require.NoError(t, err)

	store.loaded = []model.Activity{{Name: "New", TotalSeconds: 9}}
	require.NoError(t, registry.Load())
	require.False(t, registry.Has("Old"))
	require.True(t, registry.Has("New"))
}

func TestLoadReadErrorIsPersistenceFailure(t *testing.T) {
	registry := New(&memoryStore{loadErr: errors.New("disk gone")}, nil)
	err := registry.Load()
	require.ErrorIs(t, err, model.ErrPersistenceFailure)
	require.Zero(t, registry.Len())
}

func TestSaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	store := &memoryStore{saveErr: errors.New("read-only filesystem")}
	registry := New(store, nil)

	_, err := registry.Add("Chess")
	require.ErrorIs(t, err, model.ErrPersistenceFailure)
	require.True(t, registry.Has("Chess"))

	store.saveErr = nil
	require.NoError(t, registry.SetTotal("Chess", 7))
	require.Equal(t, []model.Activity{{Name: "Chess", TotalSeconds: 7}}, store.saves[len(store.saves)-1])
}
