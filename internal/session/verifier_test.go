package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	err   error
	calls int
}

func (s *stubValidator) ValidateToken(ctx context.Context, token string) error {
	s.calls++
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.err
}

func newTestGate(t *testing.T, validator TokenValidator) (*Gate, *Store) {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return NewGate(store, validator, "", ""), store
}

func TestVerify(t *testing.T) {
	t.Run("no persisted token means unauthenticated", func(t *testing.T) {
		validator := &stubValidator{}
		gate, _ := newTestGate(t, validator)

		assert.True(t, gate.Loading())
		gate.Verify(context.Background())

		assert.False(t, gate.Loading())
		assert.False(t, gate.Authenticated())
		assert.Equal(t, 0, validator.calls, "no token, no validation call")
	})

	t.Run("valid unexpired token authenticates", func(t *testing.T) {
		gate, store := newTestGate(t, &stubValidator{})
		require.NoError(t, store.Save(&Record{
			Token:       makeToken(t, time.Now().Add(time.Hour)),
			Username:    "u1",
			DisplayName: "User One",
			Role:        "COMPLEX_OWNER",
		}))

		gate.Verify(context.Background())

		assert.False(t, gate.Loading())
		assert.True(t, gate.Authenticated())
		assert.Equal(t, "User One", gate.Current().DisplayName)
		assert.Equal(t, RoleComplexOwner, gate.Current().Role)
	})

	t.Run("expired token forces logout", func(t *testing.T) {
		gate, store := newTestGate(t, &stubValidator{})
		require.NoError(t, store.Save(&Record{
			Token:    makeToken(t, time.Now().Add(-time.Second)),
			Username: "u1",
		}))

		gate.Verify(context.Background())

		assert.False(t, gate.Loading())
		assert.False(t, gate.Authenticated())

		_, err := store.Load()
		assert.ErrorIs(t, err, ErrNoSession, "persisted session must be gone")
	})

	t.Run("backend rejection forces logout", func(t *testing.T) {
		gate, store := newTestGate(t, &stubValidator{err: errors.New("401 unauthorized")})
		require.NoError(t, store.Save(&Record{
			Token:    makeToken(t, time.Now().Add(time.Hour)),
			Username: "u1",
		}))

		gate.Verify(context.Background())

		assert.False(t, gate.Authenticated())
		_, err := store.Load()
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("undecodable token forces logout", func(t *testing.T) {
		gate, store := newTestGate(t, &stubValidator{})
		require.NoError(t, store.Save(&Record{Token: "garbage", Username: "u1"}))

		gate.Verify(context.Background())

		assert.False(t, gate.Authenticated())
		_, err := store.Load()
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("unreadable store treated as logged out", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		// Corrupt the file behind the store's back.
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, sessionFileName), []byte("{not json"), 0600))
		gate := NewGate(store, &stubValidator{}, "", "")

		gate.Verify(context.Background())
		assert.False(t, gate.Loading())
		assert.False(t, gate.Authenticated())

		_, err = store.Load()
		assert.ErrorIs(t, err, ErrNoSession, "corrupt session is cleared")
	})

	t.Run("cancelled context leaves the gate untouched", func(t *testing.T) {
		gate, store := newTestGate(t, &stubValidator{})
		require.NoError(t, store.Save(&Record{
			Token:    makeToken(t, time.Now().Add(time.Hour)),
			Username: "u1",
		}))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		gate.Verify(ctx)

		// The owner was discarded mid-flight: no state flip, and the
		// persisted session is preserved for the next start.
		assert.True(t, gate.Loading())
		assert.False(t, gate.Authenticated())
		_, err := store.Load()
		assert.NoError(t, err)
	})
}
