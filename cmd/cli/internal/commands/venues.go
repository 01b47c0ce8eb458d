package commands

import (
	"context"
	"fmt"

	"github.com/canchaclub/cancha/internal/api"
	"github.com/canchaclub/cancha/internal/session"
)

type VenuesCmd struct {
	List         ListVenuesCmd   `cmd:"" help:"List venues"`
	Show         ShowVenueCmd    `cmd:"" help:"Show one venue"`
	Courts       ListCourtsCmd   `cmd:"" help:"List a venue's courts"`
	Availability AvailabilityCmd `cmd:"" help:"Show a venue's free slots for a day"`
	Create       CreateVenueCmd  `cmd:"" help:"Register a venue (owners and admins)"`
	Update       UpdateVenueCmd  `cmd:"" help:"Update a venue (owners and admins)"`
	Delete       DeleteVenueCmd  `cmd:"" help:"Delete a venue (admins)"`
}

type ListVenuesCmd struct {
	ServerFlags `embed:""`

	City string `help:"Filter by city"`
}

func (l *ListVenuesCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, l.ServerFlags)
	if err != nil {
		return err
	}

	venues, err := a.client.ListVenues(ctx, l.City)
	if err != nil {
		return fmt.Errorf("failed to list venues: %w", err)
	}

	if len(venues) == 0 {
		fmt.Println("No venues found.")
		return nil
	}

	for _, v := range venues {
		fmt.Printf("%-6d %-30s %s, %s\n", v.ID, v.Name, v.Address, v.City)
	}
	return nil
}

type ShowVenueCmd struct {
	ServerFlags `embed:""`

	ID int64 `arg:"" help:"Venue ID"`
}

func (s *ShowVenueCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, s.ServerFlags)
	if err != nil {
		return err
	}

	venue, err := a.client.GetVenue(ctx, s.ID)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("venue %d not found", s.ID)
		}
		return fmt.Errorf("failed to load venue: %w", err)
	}

	fmt.Printf("Name:    %s\n", venue.Name)
	fmt.Printf("Address: %s, %s\n", venue.Address, venue.City)
	if venue.Phone != "" {
		fmt.Printf("Phone:   %s\n", venue.Phone)
	}
	if venue.Description != "" {
		fmt.Printf("\n%s\n", venue.Description)
	}
	return nil
}

type ListCourtsCmd struct {
	ServerFlags `embed:""`

	Venue int64 `arg:"" help:"Venue ID"`
}

func (l *ListCourtsCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, l.ServerFlags)
	if err != nil {
		return err
	}

	courts, err := a.client.ListCourts(ctx, l.Venue)
	if err != nil {
		return fmt.Errorf("failed to list courts: %w", err)
	}

	for _, c := range courts {
		kind := "outdoor"
		if c.Indoor {
			kind = "indoor"
		}
		fmt.Printf("%-6d %-20s %-10s %-8s $%.2f/h\n", c.ID, c.Name, c.Sport, kind, c.PricePerHour)
	}
	return nil
}

type AvailabilityCmd struct {
	ServerFlags `embed:""`

	Venue int64  `arg:"" help:"Venue ID"`
	Date  string `help:"Day to check (YYYY-MM-DD, default today)"`
}

func (av *AvailabilityCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, av.ServerFlags)
	if err != nil {
		return err
	}

	slots, err := a.client.Availability(ctx, av.Venue, av.Date)
	if err != nil {
		return fmt.Errorf("failed to load availability: %w", err)
	}

	free := 0
	for _, s := range slots {
		if !s.Available {
			continue
		}
		free++
		fmt.Printf("court %-4d %s - %s  $%.2f\n",
			s.CourtID,
			s.Start.Local().Format("15:04"),
			s.End.Local().Format("15:04"),
			s.Price)
	}
	if free == 0 {
		fmt.Println("No free slots.")
	}
	return nil
}

type CreateVenueCmd struct {
	ServerFlags `embed:""`

	Name        string `help:"Venue name" required:""`
	Address     string `help:"Street address" required:""`
	City        string `help:"City" required:""`
	Phone       string `help:"Contact phone"`
	Description string `help:"Description"`
}

func (c *CreateVenueCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, c.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("venues create", session.RoleAdmin, session.RoleComplexOwner); err != nil {
		return err
	}

	venue, err := a.client.CreateVenue(ctx, api.VenueRequest{
		Name:        c.Name,
		Address:     c.Address,
		City:        c.City,
		Phone:       c.Phone,
		Description: c.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}

	fmt.Printf("Venue created with ID %d\n", venue.ID)
	return nil
}

type UpdateVenueCmd struct {
	ServerFlags `embed:""`

	ID          int64  `arg:"" help:"Venue ID"`
	Name        string `help:"Venue name"`
	Address     string `help:"Street address"`
	City        string `help:"City"`
	Phone       string `help:"Contact phone"`
	Description string `help:"Description"`
}

func (u *UpdateVenueCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, u.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("venues update", session.RoleAdmin, session.RoleComplexOwner); err != nil {
		return err
	}

	if _, err := a.client.UpdateVenue(ctx, u.ID, api.VenueRequest{
		Name:        u.Name,
		Address:     u.Address,
		City:        u.City,
		Phone:       u.Phone,
		Description: u.Description,
	}); err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}

	fmt.Println("Venue updated.")
	return nil
}

type DeleteVenueCmd struct {
	ServerFlags `embed:""`

	ID int64 `arg:"" help:"Venue ID"`
}

func (d *DeleteVenueCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := setup(ctx, globals, d.ServerFlags)
	if err != nil {
		return err
	}
	if err := a.require("venues delete", session.RoleAdmin); err != nil {
		return err
	}

	if err := a.client.DeleteVenue(ctx, d.ID); err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}

	fmt.Println("Venue deleted.")
	return nil
}
