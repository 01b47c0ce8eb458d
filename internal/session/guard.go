package session

import "slices"

// Decision is the outcome of evaluating a route guard: either the guarded
// content may be shown, or the caller must redirect.
type Decision struct {
	// Allowed is true when the guarded content should be rendered.
	Allowed bool

	// RedirectTo is the destination when Allowed is false.
	RedirectTo string

	// ReturnTo is set when redirecting to the login screen, so the login
	// flow can send the user back to the page they originally asked for.
	ReturnTo string
}

func allow() Decision {
	return Decision{Allowed: true}
}

// RedirectAuthenticated guards screens that only make sense while logged
// out (login, register). An authenticated user is sent back to returnTo
// when one was captured, otherwise to the default authenticated
// destination. Must not be called while Loading is true.
func (g *Gate) RedirectAuthenticated(returnTo string) Decision {
	if !g.Authenticated() {
		return allow()
	}

	target := g.homePath
	if returnTo != "" {
		target = returnTo
	}
	return Decision{RedirectTo: target}
}

// Require guards content that needs an authenticated session and,
// optionally, one of the listed roles. path is the location being guarded;
// it is captured as the return-to target when bouncing to the login
// screen. An authenticated user with the wrong role is sent to the default
// authenticated destination, never back to login. Must not be called while
// Loading is true.
func (g *Gate) Require(path string, roles ...Role) Decision {
	if !g.Authenticated() {
		return Decision{RedirectTo: g.loginPath, ReturnTo: path}
	}

	if len(roles) == 0 {
		return allow()
	}

	// RoleUnknown fails every check, even if a caller lists it.
	role := g.Current().Role
	if role != RoleUnknown && slices.Contains(roles, role) {
		return allow()
	}

	return Decision{RedirectTo: g.homePath}
}
