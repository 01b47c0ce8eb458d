package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/canchaclub/cancha/cmd/cli/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login    commands.LoginCmd    `cmd:"" help:"Log in to the booking platform"`
		Logout   commands.LogoutCmd   `cmd:"" help:"Log out and clear the stored session"`
		Whoami   commands.WhoamiCmd   `cmd:"" help:"Show the current session"`
		Register commands.RegisterCmd `cmd:"" help:"Create an account"`
		Venues   commands.VenuesCmd   `cmd:"" help:"Browse and manage venues"`
		Bookings commands.BookingsCmd `cmd:"" help:"Create and manage bookings"`
		Profile  commands.ProfileCmd  `cmd:"" help:"Manage your profile"`
		Admin    commands.AdminCmd    `cmd:"" help:"Platform administration"`
		Owner    commands.OwnerCmd    `cmd:"" help:"Venue owner tools"`
		Debug    bool                 `help:"Enable debug mode."`
		Version  kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
