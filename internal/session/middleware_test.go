package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := FromContext(r.Context())
		require.True(t, ok, "session must be in context")
		assert.NotEmpty(t, sess.Token)
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireAuthMiddleware(t *testing.T) {
	t.Run("anonymous request redirects to login with return_to", func(t *testing.T) {
		gate := anonGate(t)
		handler := gate.RequireAuth()(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login?return_to=%2Fadmin%2Fstats", rec.Header().Get("Location"))
	})

	t.Run("captured location keeps the query string", func(t *testing.T) {
		gate := anonGate(t)
		handler := gate.RequireAuth()(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/venues?city=Rosario", nil))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login?return_to=%2Fvenues%3Fcity%3DRosario", rec.Header().Get("Location"))
	})

	t.Run("wrong role redirects home", func(t *testing.T) {
		gate := authedGate(t, "USER")
		handler := gate.RequireAuth(RoleAdmin)(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, DefaultHomePath, rec.Header().Get("Location"))
	})

	t.Run("authorized request reaches the handler with session in context", func(t *testing.T) {
		gate := authedGate(t, "ADMIN")
		handler := gate.RequireAuth(RoleAdmin)(okHandler(t))

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unresolved session gets a neutral 503, not a redirect", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)
		gate := NewGate(store, &stubValidator{}, "", "")
		// Verify never ran: the gate is still loading.

		handler := gate.RequireAuth()(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/bookings", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Empty(t, rec.Header().Get("Location"))
	})
}

func TestRedirectIfAuthenticatedMiddleware(t *testing.T) {
	t.Run("anonymous user sees the login screen", func(t *testing.T) {
		gate := anonGate(t)
		called := false
		handler := gate.RedirectIfAuthenticated()(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

		assert.True(t, called)
	})

	t.Run("authenticated user returns to the captured location", func(t *testing.T) {
		gate := authedGate(t, "ADMIN")
		handler := gate.RedirectIfAuthenticated()(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/login?return_to=%2Fadmin", nil))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get("Location"))
	})

	t.Run("authenticated user without return-to goes home", func(t *testing.T) {
		gate := authedGate(t, "USER")
		handler := gate.RedirectIfAuthenticated()(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, DefaultHomePath, rec.Header().Get("Location"))
	})
}
