package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/canchaclub/cancha/internal/api"
	"github.com/canchaclub/cancha/internal/googleauth"
	"github.com/canchaclub/cancha/internal/session"
)

type LoginCmd struct {
	ServerFlags `embed:""`

	Email    string `help:"Account email" short:"e"`
	Password string `help:"Account password (prompted when omitted)" short:"p"`
	Google   bool   `help:"Sign in with Google instead of a password"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, l.ServerFlags)
	if err != nil {
		return err
	}

	// Login is a logged-out screen: an authenticated user gets bounced.
	if decision := a.gate.RedirectAuthenticated(""); !decision.Allowed {
		fmt.Printf("Already logged in as %s. Run `cancha logout` to switch accounts.\n", a.gate.Current().DisplayName)
		return nil
	}

	var result *api.AuthResult
	if l.Google {
		result, err = l.loginWithGoogle(ctx, a)
	} else {
		result, err = l.loginWithPassword(ctx, a)
	}
	if err != nil {
		return err
	}

	a.commitLogin(result)

	fmt.Printf("Logged in as %s (%s)\n", result.DisplayName, strings.Join(result.Roles, ", "))
	return nil
}

func (l *LoginCmd) loginWithPassword(ctx context.Context, a *app) (*api.AuthResult, error) {
	if l.Email == "" {
		return nil, fmt.Errorf("email is required (use --email)")
	}

	password := l.Password
	if password == "" {
		fmt.Print("Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	result, err := a.client.Login(ctx, l.Email, password)
	if err != nil {
		if api.IsUnauthorized(err) {
			return nil, fmt.Errorf("invalid email or password")
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return result, nil
}

func (l *LoginCmd) loginWithGoogle(ctx context.Context, a *app) (*api.AuthResult, error) {
	flow, err := googleauth.New(a.cfg.GoogleClientID, a.cfg.GoogleClientSecret)
	if err != nil {
		return nil, fmt.Errorf("google sign-in not configured: %w", err)
	}

	idToken, err := flow.Authorize(ctx)
	if err != nil {
		return nil, fmt.Errorf("google sign-in failed: %w", err)
	}

	result, err := a.client.LoginWithGoogle(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return result, nil
}

type LogoutCmd struct {
	ServerFlags `embed:""`
}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, l.ServerFlags)
	if err != nil {
		return err
	}

	a.gate.Logout()
	fmt.Println("Logged out.")
	return nil
}

type WhoamiCmd struct {
	ServerFlags `embed:""`
}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, w.ServerFlags)
	if err != nil {
		return err
	}

	if !a.gate.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}

	current := a.gate.Current()
	fmt.Printf("Username: %s\n", current.Username)
	fmt.Printf("Name:     %s\n", current.DisplayName)
	fmt.Printf("Role:     %s\n", current.Role)

	if expiry, err := session.ExtractExpiry(current.Token); err == nil {
		fmt.Printf("Expires:  %s\n", expiry.Local().Format("2006-01-02 15:04:05"))
	}

	return nil
}

type RegisterCmd struct {
	ServerFlags `embed:""`

	Username string `help:"Username" required:""`
	Email    string `help:"Email address" required:""`
	Password string `help:"Password" required:""`
	Name     string `help:"Display name" required:""`
	Phone    string `help:"Phone number"`
}

func (r *RegisterCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, r.ServerFlags)
	if err != nil {
		return err
	}

	if decision := a.gate.RedirectAuthenticated(""); !decision.Allowed {
		fmt.Printf("Already logged in as %s. Run `cancha logout` first.\n", a.gate.Current().DisplayName)
		return nil
	}

	result, err := a.client.Register(ctx, api.RegisterRequest{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		DisplayName: r.Name,
		Phone:       r.Phone,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	a.commitLogin(result)

	fmt.Printf("Account created. Logged in as %s\n", result.DisplayName)
	return nil
}
