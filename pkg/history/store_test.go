package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListRevisions(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.RecordRevision(Revision{
		Dir: "dashboard", Name: "dashboard", Version: "1.0.14",
		ScriptsCount: 1, Requires: []string{"coloredlogs", "pyyaml"},
		Action: ActionSnapshot,
	}))
	require.NoError(t, store.RecordRevision(Revision{
		Dir: "dashboard", Name: "dashboard", Version: "1.0.15",
		ScriptsCount: 1, Requires: []string{"coloredlogs", "pyyaml", "gevent"},
		Action: ActionBump,
	}))
	require.NoError(t, store.RecordRevision(Revision{
		Dir: "notifications", Name: "notifications", Version: "0.13",
		ScriptsCount: 1, Action: ActionNew,
	}))

	revs, err := store.Revisions("dashboard")
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, "1.0.14", revs[0].Version)
	assert.Equal(t, ActionBump, revs[1].Action)
	assert.Equal(t, []string{"coloredlogs", "pyyaml"}, revs[0].Requires)
	assert.Equal(t, []string{"coloredlogs", "pyyaml", "gevent"}, revs[1].Requires)
	assert.False(t, revs[0].CreatedAt.IsZero())

	dirs, err := store.Dirs()
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard", "notifications"}, dirs)
}

func TestRevisions_EmptyForUnknownDir(t *testing.T) {
	store := openStore(t)

	revs, err := store.Revisions("nope")
	require.NoError(t, err)
	assert.Empty(t, revs)
}

func TestRecordAndListBuilds(t *testing.T) {
	store := openStore(t)

	first := Build{
		ID: uuid.NewString(), Name: "dashboard", Version: "1.0.14",
		Artifact: "/ws/dist/dashboard-1.0.14.tar.xz", SHA256: "abc",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	second := Build{
		ID: uuid.NewString(), Name: "dashboard", Version: "1.0.15",
		Artifact: "/ws/dist/dashboard-1.0.15.tar.xz", SHA256: "def",
		CreatedAt: time.Date(2026, 2, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, store.RecordBuild(first))
	require.NoError(t, store.RecordBuild(second))

	builds, err := store.Builds("dashboard")
	require.NoError(t, err)
	require.Len(t, builds, 2)
	assert.Equal(t, first.ID, builds[0].ID)
	assert.Equal(t, "def", builds[1].SHA256)
	assert.True(t, builds[0].CreatedAt.Equal(first.CreatedAt))
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.RecordRevision(Revision{
		Dir: "x", Name: "x", Version: "0.1.0", ScriptsCount: 1, Action: ActionNew,
	}))
}
