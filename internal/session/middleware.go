package session

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

type contextKey string

const sessionContextKey contextKey = "session"

// returnToParam carries the captured location through the login redirect.
const returnToParam = "return_to"

// FromContext extracts the session placed in the request context by
// RequireAuth.
func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(Session)
	return sess, ok
}

// RequireAuth is a middleware that protects routes by requiring a verified
// session and, when roles are given, one of the listed roles. Unauthorized
// requests are redirected per Require; authorized ones proceed with the
// session stored in the request context. If the startup verification has
// not resolved yet, a neutral 503 is served instead of a redirect decision
// made on stale state.
func (g *Gate) RequireAuth(roles ...Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if g.Loading() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session check in progress", http.StatusServiceUnavailable)
				return
			}

			// RequestURI keeps the query string so login returns the
			// user to the exact location they asked for.
			decision := g.Require(r.URL.RequestURI(), roles...)
			if !decision.Allowed {
				target := decision.RedirectTo
				if decision.ReturnTo != "" {
					target += "?" + returnToParam + "=" + url.QueryEscape(decision.ReturnTo)
					log.Debug().Str("path", r.URL.Path).Msg("no session, redirecting to login")
				} else {
					log.Debug().
						Str("path", r.URL.Path).
						Str("role", string(g.Current().Role)).
						Msg("role not permitted, redirecting home")
				}
				http.Redirect(w, r, target, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, g.Current())
			next(w, r.WithContext(ctx))
		}
	}
}

// RedirectIfAuthenticated wraps login and register screens: an already
// authenticated user is sent to the captured return_to location when
// present, otherwise to the default authenticated destination.
func (g *Gate) RedirectIfAuthenticated() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if g.Loading() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session check in progress", http.StatusServiceUnavailable)
				return
			}

			decision := g.RedirectAuthenticated(r.URL.Query().Get(returnToParam))
			if !decision.Allowed {
				log.Debug().Str("target", decision.RedirectTo).Msg("already authenticated, redirecting")
				http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
				return
			}

			next(w, r)
		}
	}
}
