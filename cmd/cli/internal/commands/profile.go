package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/canchaclub/cancha/internal/api"
)

type ProfileCmd struct {
	Show     ShowProfileCmd   `cmd:"" help:"Show your profile"`
	Update   UpdateProfileCmd `cmd:"" help:"Update your profile"`
	Password PasswordCmd      `cmd:"" help:"Change your password"`
	Reset    ResetCmd         `cmd:"" help:"Password reset for a locked-out account"`
}

type ShowProfileCmd struct {
	ServerFlags `embed:""`
}

func (s *ShowProfileCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, s.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("profile show"); err != nil {
		return err
	}

	profile, err := a.client.GetProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	fmt.Printf("Username: %s\n", profile.Username)
	fmt.Printf("Name:     %s\n", profile.DisplayName)
	fmt.Printf("Email:    %s\n", profile.Email)
	if profile.Phone != "" {
		fmt.Printf("Phone:    %s\n", profile.Phone)
	}
	fmt.Printf("Roles:    %s\n", strings.Join(profile.Roles, ", "))
	return nil
}

type UpdateProfileCmd struct {
	ServerFlags `embed:""`

	Name  string `help:"Display name"`
	Email string `help:"Email address"`
	Phone string `help:"Phone number"`
}

func (u *UpdateProfileCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, u.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("profile update"); err != nil {
		return err
	}

	if u.Name == "" && u.Email == "" && u.Phone == "" {
		return fmt.Errorf("nothing to update (use --name, --email or --phone)")
	}

	if _, err := a.client.UpdateProfile(ctx, api.ProfileUpdate{
		DisplayName: u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
	}); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	fmt.Println("Profile updated.")
	return nil
}

type PasswordCmd struct {
	ServerFlags `embed:""`

	Current string `help:"Current password" required:""`
	New     string `help:"New password" required:""`
}

func (p *PasswordCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, p.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("profile password"); err != nil {
		return err
	}

	if err := a.client.ChangePassword(ctx, p.Current, p.New); err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("current password is incorrect")
		}
		return fmt.Errorf("failed to change password: %w", err)
	}

	fmt.Println("Password changed.")
	return nil
}

type ResetCmd struct {
	Request ResetRequestCmd `cmd:"" help:"Mail a reset token to an account"`
	Confirm ResetConfirmCmd `cmd:"" help:"Set a new password with a reset token"`
}

type ResetRequestCmd struct {
	ServerFlags `embed:""`

	Email string `arg:"" help:"Account email"`
}

func (r *ResetRequestCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, r.ServerFlags)
	if err != nil {
		return err
	}

	if err := a.client.RequestPasswordReset(ctx, r.Email); err != nil {
		return fmt.Errorf("failed to request reset: %w", err)
	}

	fmt.Println("If the account exists, a reset token has been mailed.")
	return nil
}

type ResetConfirmCmd struct {
	ServerFlags `embed:""`

	Token    string `arg:"" help:"Reset token from the email"`
	Password string `help:"New password" required:""`
}

func (r *ResetConfirmCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, r.ServerFlags)
	if err != nil {
		return err
	}

	if err := a.client.ResetPassword(ctx, r.Token, r.Password); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	fmt.Println("Password reset. Log in with your new password.")
	return nil
}
