package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// Verify decides, once per process start, whether a persisted session is
// still usable. It resolves the loading state in every path: either the
// session is authenticated, or every trace of it is gone. Any failure
// along the way (backend rejection, network error, undecodable or expired
// token) forces a logout rather than leaving the gate half-authenticated.
//
// If ctx is cancelled before the check resolves, the gate is left
// untouched so a discarded owner never sees a late state flip.
func (g *Gate) Verify(ctx context.Context) {
	rec, err := g.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			log.Debug().Err(err).Msg("persisted session unreadable, treating as logged out")
			g.Logout()
			return
		}

		g.mu.Lock()
		g.loading = false
		g.mu.Unlock()
		return
	}

	if err := g.validator.ValidateToken(ctx, rec.Token); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Debug().Err(err).Msg("token rejected by backend, logging out")
		g.Logout()
		return
	}

	expiry, err := ExtractExpiry(rec.Token)
	if err != nil {
		log.Debug().Err(err).Msg("token undecodable, logging out")
		g.Logout()
		return
	}

	if !time.Now().Before(expiry) {
		log.Debug().Time("expiry", expiry).Msg("token expired, logging out")
		g.Logout()
		return
	}

	g.mu.Lock()
	g.current = Session{
		Token:       rec.Token,
		Username:    rec.Username,
		DisplayName: rec.DisplayName,
		Role:        ParseRole(rec.Role),
	}
	g.authenticated = true
	g.loading = false
	g.mu.Unlock()

	log.Debug().Str("username", rec.Username).Msg("persisted session verified")
}
