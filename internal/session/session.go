// Package session owns the client's authentication state: the persisted
// token, the identity decoded from it, and the route-guard decisions the
// rest of the application consumes. All mutation goes through the Gate so
// no caller can observe a half-updated session.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Role is the authorization tier assigned to an account by the booking
// backend. The set is closed; comparison is exact and there is no
// hierarchy between roles.
type Role string

const (
	RoleUser         Role = "USER"
	RoleAdmin        Role = "ADMIN"
	RoleComplexOwner Role = "COMPLEX_OWNER"

	// RoleUnknown is the result of normalizing a role value outside the
	// closed set. It satisfies no role check.
	RoleUnknown Role = ""
)

// ParseRole normalizes a raw role string at the deserialization boundary.
// Anything outside the closed set maps to RoleUnknown.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleComplexOwner:
		return Role(s)
	}
	return RoleUnknown
}

// Session is a point-in-time snapshot of the authenticated identity.
type Session struct {
	Token       string
	Username    string
	DisplayName string
	Role        Role
}

// TokenValidator checks a bearer token against the booking backend.
// Any non-nil error means the token must not be trusted.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) error
}

const (
	// DefaultLoginPath is where unauthenticated users are sent by Require.
	DefaultLoginPath = "/login"

	// DefaultHomePath is the fallback destination for authenticated users
	// bounced away from a screen they should not see.
	DefaultHomePath = "/"
)

// Gate is the single owner of session state for a process. Create one per
// process (or per test) and share it by reference; there is no package
// level instance.
type Gate struct {
	store     *Store
	validator TokenValidator
	loginPath string
	homePath  string

	mu            sync.RWMutex
	loading       bool
	authenticated bool
	current       Session
}

// NewGate creates a gate over the given persisted store and validator.
// Empty loginPath/homePath select the defaults. The gate starts in the
// loading state; call Verify once before evaluating any guard.
func NewGate(store *Store, validator TokenValidator, loginPath, homePath string) *Gate {
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	if homePath == "" {
		homePath = DefaultHomePath
	}

	return &Gate{
		store:     store,
		validator: validator,
		loginPath: loginPath,
		homePath:  homePath,
		loading:   true,
	}
}

// Loading reports whether the startup verification is still in flight.
// Guards must not be evaluated while this is true.
func (g *Gate) Loading() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loading
}

// Authenticated reports whether a verified session is present. It is never
// true while Loading is true.
func (g *Gate) Authenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authenticated
}

// Current returns a snapshot of the session. The zero Session is returned
// when logged out.
func (g *Gate) Current() Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}

// LoginSuccess commits a newly issued session in one step: all four values
// are persisted together and the in-memory state flips to authenticated
// atomically. The effective role is the first element of roles; token must
// be non-empty (that is the caller's contract, not a recoverable error
// here). A persistence failure is logged but does not invalidate the
// in-memory session for this process.
func (g *Gate) LoginSuccess(token, username, displayName string, roles []string) {
	rawRole := ""
	if len(roles) > 0 {
		rawRole = roles[0]
	}

	if err := g.store.Save(&Record{
		Token:       token,
		Username:    username,
		DisplayName: displayName,
		Role:        rawRole,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to persist session")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = Session{
		Token:       token,
		Username:    username,
		DisplayName: displayName,
		Role:        ParseRole(rawRole),
	}
	g.authenticated = true
	g.loading = false

	log.Debug().Str("username", username).Str("role", rawRole).Msg("session established")
}

// Logout tears the session down: every persisted key is removed and every
// in-memory field reset. Calling it while already logged out is a no-op.
func (g *Gate) Logout() {
	if err := g.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear persisted session")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = Session{}
	g.authenticated = false
	g.loading = false
}
