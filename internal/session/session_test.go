package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleUser, ParseRole("USER"))
	assert.Equal(t, RoleAdmin, ParseRole("ADMIN"))
	assert.Equal(t, RoleComplexOwner, ParseRole("COMPLEX_OWNER"))

	// Outside the closed set, including case variants.
	assert.Equal(t, RoleUnknown, ParseRole("SUPERUSER"))
	assert.Equal(t, RoleUnknown, ParseRole("admin"))
	assert.Equal(t, RoleUnknown, ParseRole(""))
}

func TestGate_LoginSuccess(t *testing.T) {
	t.Run("commits persisted and in-memory state together", func(t *testing.T) {
		gate, store := newTestGate(t, &stubValidator{})

		gate.LoginSuccess("t1", "u1", "N", []string{"ADMIN"})

		assert.True(t, gate.Authenticated())
		assert.False(t, gate.Loading())
		assert.Equal(t, RoleAdmin, gate.Current().Role)
		assert.Equal(t, "t1", gate.Current().Token)

		rec, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "t1", rec.Token)
		assert.Equal(t, "u1", rec.Username)
		assert.Equal(t, "N", rec.DisplayName)
		assert.Equal(t, "ADMIN", rec.Role)
	})

	t.Run("first role wins", func(t *testing.T) {
		gate, _ := newTestGate(t, &stubValidator{})

		gate.LoginSuccess("t1", "u1", "N", []string{"COMPLEX_OWNER", "USER"})
		assert.Equal(t, RoleComplexOwner, gate.Current().Role)
	})

	t.Run("unknown role normalizes without crashing", func(t *testing.T) {
		gate, _ := newTestGate(t, &stubValidator{})

		gate.LoginSuccess("t1", "u1", "N", []string{"SUPERUSER"})
		assert.True(t, gate.Authenticated())
		assert.Equal(t, RoleUnknown, gate.Current().Role)
	})

	t.Run("no roles at all", func(t *testing.T) {
		gate, _ := newTestGate(t, &stubValidator{})

		gate.LoginSuccess("t1", "u1", "N", nil)
		assert.True(t, gate.Authenticated())
		assert.Equal(t, RoleUnknown, gate.Current().Role)
	})
}

func TestGate_Logout(t *testing.T) {
	gate, store := newTestGate(t, &stubValidator{})
	gate.LoginSuccess("t1", "u1", "N", []string{"USER"})

	gate.Logout()

	assert.False(t, gate.Authenticated())
	assert.Equal(t, Session{}, gate.Current(), "no partial session survives")
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// Idempotent: a second logout changes nothing and does not error.
	gate.Logout()
	assert.False(t, gate.Authenticated())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}
