package commands

import (
	"context"
	"fmt"

	"github.com/canchaclub/cancha/internal/session"
)

// Owner tools are open to venue owners and admins; both roles are listed
// explicitly since roles carry no hierarchy.

type OwnerCmd struct {
	Stats    VenueStatsCmd    `cmd:"" help:"Statistics for one of your venues"`
	Bookings VenueBookingsCmd `cmd:"" help:"Bookings for one of your venues"`
}

type VenueStatsCmd struct {
	ServerFlags `embed:""`

	Venue int64  `arg:"" help:"Venue ID"`
	From  string `help:"Window start (YYYY-MM-DD)"`
	To    string `help:"Window end (YYYY-MM-DD)"`
}

func (v *VenueStatsCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, v.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("owner stats", session.RoleComplexOwner, session.RoleAdmin); err != nil {
		return err
	}

	stats, err := a.client.GetVenueStats(ctx, v.Venue, v.From, v.To)
	if err != nil {
		return fmt.Errorf("failed to load venue stats: %w", err)
	}

	fmt.Printf("Bookings:  %d\n", stats.TotalBookings)
	fmt.Printf("Occupancy: %.0f%%\n", stats.Occupancy*100)
	fmt.Printf("Revenue:   $%.2f\n", stats.Revenue)
	for _, day := range stats.BookingsByDay {
		fmt.Printf("  %s  %d\n", day.Date, day.Count)
	}
	return nil
}

type VenueBookingsCmd struct {
	ServerFlags `embed:""`

	Venue int64 `arg:"" help:"Venue ID"`
}

func (v *VenueBookingsCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, v.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("owner bookings", session.RoleComplexOwner, session.RoleAdmin); err != nil {
		return err
	}

	bookings, err := a.client.ListVenueBookings(ctx, v.Venue)
	if err != nil {
		return fmt.Errorf("failed to list venue bookings: %w", err)
	}

	if len(bookings) == 0 {
		fmt.Println("No bookings.")
		return nil
	}

	for _, b := range bookings {
		fmt.Printf("%-6d court %-4d %-20s %s  %s-%s  %-10s %s\n",
			b.ID,
			b.CourtID,
			b.Username,
			b.Start.Local().Format("2006-01-02"),
			b.Start.Local().Format("15:04"),
			b.End.Local().Format("15:04"),
			b.Status,
			b.PaymentStatus)
	}
	return nil
}
