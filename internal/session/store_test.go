package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadEmpty(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestStore_SaveLoad(t *testing.T) {
	t.Run("round trips all four keys", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		err = store.Save(&Record{
			Token:       "t1",
			Username:    "u1",
			DisplayName: "User One",
			Role:        "ADMIN",
		})
		require.NoError(t, err)

		rec, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "t1", rec.Token)
		assert.Equal(t, "u1", rec.Username)
		assert.Equal(t, "User One", rec.DisplayName)
		assert.Equal(t, "ADMIN", rec.Role)
	})

	t.Run("session file is private", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, store.Save(&Record{Token: "t1"}))

		info, err := os.Stat(filepath.Join(tmpDir, sessionFileName))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("record without token reads as no session", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(tmpDir, sessionFileName), []byte(`{"username":"u1"}`), 0600)
		require.NoError(t, err)

		_, err = store.Load()
		require.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("corrupt file is an error, not a session", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(tmpDir, sessionFileName), []byte("{not json"), 0600)
		require.NoError(t, err)

		_, err = store.Load()
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNoSession)
	})
}

func TestStore_Clear(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(&Record{Token: "t1", Username: "u1"}))
	require.NoError(t, store.Clear())

	_, err = store.Load()
	require.ErrorIs(t, err, ErrNoSession)

	// Clearing an already empty store is a no-op.
	require.NoError(t, store.Clear())
}
