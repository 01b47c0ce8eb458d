package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/canchaclub/cancha/internal/api"
	"github.com/canchaclub/cancha/internal/config"
	"github.com/canchaclub/cancha/internal/logger"
	"github.com/canchaclub/cancha/internal/session"
)

type Globals struct {
	Debug   bool
	Version string
}

// ServerFlags are shared by every command that talks to the backend.
type ServerFlags struct {
	Server string `help:"Backend URL (overrides config file)" env:"CANCHA_SERVER" default:""`
}

// app bundles the pieces a command needs once the session gate has
// resolved: the config, the API client (with the bearer token attached
// when a session survived verification) and the gate itself.
type app struct {
	cfg    *config.Config
	client *api.Client
	gate   *session.Gate
}

// setup wires the client and runs the startup verification. Every command
// goes through here, so guards are never evaluated against an unresolved
// session.
func setup(ctx context.Context, globals *Globals, flags ServerFlags) (*app, error) {
	logger.Setup(globals.Debug)

	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	if flags.Server != "" {
		cfg.ServerURL = flags.Server
	}

	client, err := api.New(api.Config{
		BaseURL:  cfg.ServerURL,
		Timeout:  cfg.Timeout(),
		CacheDir: cfg.CacheDir,
	})
	if err != nil {
		return nil, err
	}

	store, err := session.NewStore("")
	if err != nil {
		return nil, err
	}

	gate := session.NewGate(store, client, "", "")
	gate.Verify(ctx)

	if gate.Authenticated() {
		client.SetToken(gate.Current().Token)
	}

	return &app{cfg: cfg, client: client, gate: gate}, nil
}

// require maps a guard decision onto CLI errors: a bounce to the login
// screen becomes "log in first", a role bounce becomes a quiet refusal.
func (a *app) require(command string, roles ...session.Role) error {
	decision := a.gate.Require(command, roles...)
	if decision.Allowed {
		return nil
	}
	if decision.ReturnTo != "" {
		return fmt.Errorf("not logged in: run `cancha login` first")
	}
	return fmt.Errorf("this command is not available for your account")
}

// commitLogin records a successful auth flow in the session gate and on
// the API client.
func (a *app) commitLogin(result *api.AuthResult) {
	a.gate.LoginSuccess(result.Token, result.Username, result.DisplayName, result.Roles)
	a.client.SetToken(result.Token)
}

// parseWhen accepts RFC 3339 or a local "2006-01-02 15:04" timestamp.
func parseWhen(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (use RFC 3339 or \"2006-01-02 15:04\")", value)
	}
	return t, nil
}
