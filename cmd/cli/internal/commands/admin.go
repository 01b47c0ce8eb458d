package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/canchaclub/cancha/internal/session"
)

type AdminCmd struct {
	Users UsersCmd         `cmd:"" help:"List accounts"`
	Role  SetRoleCmd       `cmd:"" help:"Set a user's roles"`
	Stats PlatformStatsCmd `cmd:"" help:"Platform statistics"`
}

type UsersCmd struct {
	ServerFlags `embed:""`
}

func (u *UsersCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, u.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("admin users", session.RoleAdmin); err != nil {
		return err
	}

	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, user := range users {
		fmt.Printf("%-20s %-30s %s\n", user.Username, user.Email, strings.Join(user.Roles, ","))
	}
	return nil
}

type SetRoleCmd struct {
	ServerFlags `embed:""`

	Username string   `arg:"" help:"Account to change"`
	Roles    []string `arg:"" help:"New roles (USER, ADMIN, COMPLEX_OWNER)"`
}

func (s *SetRoleCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, s.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("admin role", session.RoleAdmin); err != nil {
		return err
	}

	for _, role := range s.Roles {
		if session.ParseRole(role) == session.RoleUnknown {
			return fmt.Errorf("unknown role %q", role)
		}
	}

	if err := a.client.SetUserRole(ctx, s.Username, s.Roles); err != nil {
		return fmt.Errorf("failed to set roles: %w", err)
	}

	fmt.Println("Roles updated.")
	return nil
}

type PlatformStatsCmd struct {
	ServerFlags `embed:""`

	From string `help:"Window start (YYYY-MM-DD)"`
	To   string `help:"Window end (YYYY-MM-DD)"`
}

func (p *PlatformStatsCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, p.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("admin stats", session.RoleAdmin); err != nil {
		return err
	}

	stats, err := a.client.GetPlatformStats(ctx, p.From, p.To)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	fmt.Printf("Users:    %d\n", stats.TotalUsers)
	fmt.Printf("Venues:   %d\n", stats.TotalVenues)
	fmt.Printf("Bookings: %d\n", stats.TotalBookings)
	fmt.Printf("Revenue:  $%.2f\n", stats.Revenue)
	for _, day := range stats.BookingsByDay {
		fmt.Printf("  %s  %d\n", day.Date, day.Count)
	}
	return nil
}
