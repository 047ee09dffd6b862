package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ankidash/internal/domain"
)

func TestSQLiteStorage_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "ankidash.db")
	storage, err := OpenSQLite(path)
	require.NoError(t, err)
	defer storage.Close()

	_, ok, err := storage.Load("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.Save("k", []byte(`{"a":1}`)))
	blob, ok, err := storage.Load("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(blob))

	// Overwrite replaces the previous value.
	require.NoError(t, storage.Save("k", []byte(`{"a":2}`)))
	blob, ok, err = storage.Load("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":2}`, string(blob))
}

func TestSQLiteStorage_SurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ankidash.db")
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)

	storage, err := OpenSQLite(path)
	require.NoError(t, err)

	store := NewStore(testLogger(), storage, "", now)
	store.SetTheme(domain.ThemeLight)
	store.ToggleGroup("Suomi::Ruoka")
	require.NoError(t, storage.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	reloaded := NewStore(testLogger(), reopened, "", now)
	st := reloaded.State()
	assert.Equal(t, domain.ThemeLight, st.Theme)
	assert.Equal(t, []string{"Suomi::Ruoka"}, st.Filters.SelectedGroups)
}
